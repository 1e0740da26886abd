package invoice

// xlsx.go — spreadsheet → Invoice using the excelize library.
// Columns are located by header name, never by position, so the source may
// order or spell its headers freely within the accepted aliases.

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const headerRow = 1 // 1-based sheet row holding the column headers

// ExtractXLSX reads the invoice spreadsheet at filePath. sheet selects the
// worksheet by name; an empty sheet means the first one in the workbook.
func ExtractXLSX(filePath, sheet string) (*Invoice, error) {
	number, date, err := ParseFilename(filePath)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open xlsx %s: %w", filePath, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx %s has no sheets", filePath)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q in %s: %w", sheet, filePath, err)
	}
	if len(rows) == 0 {
		return nil, rowErr(headerRow, "", "sheet %q has no header row", sheet)
	}

	layout, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		Number:  number,
		Date:    date,
		Columns: layout.titles,
	}
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		item, err := layout.lineItem(row, headerRow+1+i)
		if err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, item)
	}
	inv.TotalDue = sumTotals(inv.Items)

	return inv, nil
}

// headerLayout records where each table column lives in the source sheet.
type headerLayout struct {
	index  [numColumns]int
	header [numColumns]string // raw header text, for error messages
	titles ColumnTitles
}

func mapHeader(cells []string) (*headerLayout, error) {
	l := &headerLayout{}
	for c := range l.index {
		l.index[c] = -1
	}

	for i, raw := range cells {
		name := normalizeHeader(raw)
		for c, col := range columns {
			if l.index[c] < 0 && slices.Contains(col.aliases, name) {
				l.index[c] = i
				l.header[c] = strings.TrimSpace(raw)
				l.titles[c] = columnTitle(raw)
				break
			}
		}
	}

	for c, i := range l.index {
		if i < 0 {
			return nil, rowErr(headerRow, columns[c].aliases[0], "required column not found")
		}
	}
	return l, nil
}

func (l *headerLayout) cell(row []string, c int) string {
	if i := l.index[c]; i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func (l *headerLayout) lineItem(row []string, sheetRow int) (LineItem, error) {
	item := LineItem{
		ProductID:   l.cell(row, colProductID),
		ProductName: l.cell(row, colProductName),
	}
	if item.ProductID == "" {
		return LineItem{}, rowErr(sheetRow, l.header[colProductID], "empty value")
	}

	amounts := []struct {
		col int
		dst *decimal.Decimal
	}{
		{colQuantity, &item.Quantity},
		{colUnitPrice, &item.UnitPrice},
		{colLineTotal, &item.LineTotal},
	}
	for _, a := range amounts {
		d, err := parseAmount(l.cell(row, a.col))
		if err != nil {
			return LineItem{}, rowErr(sheetRow, l.header[a.col], "%v", err)
		}
		*a.dst = d
	}
	return item, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
