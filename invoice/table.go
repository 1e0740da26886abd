package invoice

// table.go — the invoice table grid shared by the extractor (which columns
// to look for) and the renderer (how wide and how aligned each cell is).

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const numColumns = 5

const (
	colProductID = iota
	colProductName
	colQuantity
	colUnitPrice
	colLineTotal
)

// column describes one cell of the fixed table grid.
type column struct {
	aliases []string // normalized header names accepted for this column
	width   float64  // mm
	align   string   // fpdf alignment: "L" or "R"
}

var columns = [numColumns]column{
	colProductID:   {aliases: []string{"product_id", "id"}, width: 30, align: "L"},
	colProductName: {aliases: []string{"product_name", "name", "product"}, width: 60, align: "L"},
	colQuantity:    {aliases: []string{"amount_purchased", "units_purchased", "quantity", "qty"}, width: 40, align: "R"},
	colUnitPrice:   {aliases: []string{"price_per_unit", "unit_price", "price"}, width: 30, align: "R"},
	colLineTotal:   {aliases: []string{"total_price", "line_total", "total"}, width: 30, align: "R"},
}

// normalizeHeader folds a header cell to the alias form: trimmed,
// lower-case, spaces as underscores.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

// columnTitle turns a raw header cell such as "price_per_unit" into the
// displayed title "Price Per Unit".
func columnTitle(h string) string {
	return cases.Title(language.English).String(strings.Join(strings.Fields(strings.ReplaceAll(h, "_", " ")), " "))
}

// TableRows lays out the cell text of the invoice table: an optional header
// row of column titles, one row per line item in source order, and a final
// total row whose only non-blank cell is the total due.
func TableRows(inv *Invoice, withHeader bool) [][]string {
	rows := make([][]string, 0, len(inv.Items)+2)
	if withHeader {
		header := make([]string, numColumns)
		for i, title := range inv.Columns {
			if title == "" {
				title = columnTitle(columns[i].aliases[0])
			}
			header[i] = title
		}
		rows = append(rows, header)
	}
	for _, it := range inv.Items {
		rows = append(rows, []string{
			it.ProductID,
			it.ProductName,
			it.Quantity.String(),
			it.UnitPrice.String(),
			it.LineTotal.String(),
		})
	}
	total := make([]string, numColumns)
	total[colLineTotal] = inv.TotalDue.String()
	return append(rows, total)
}
