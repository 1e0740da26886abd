// Package invoice turns invoice spreadsheets into PDF documents.
//
// A spreadsheet named "{number}-{date}.xlsx" holds one sheet whose first row
// is a header and whose remaining rows are line items. The extractor maps
// those rows into an Invoice, the renderer lays the Invoice out on an A4
// page, and the inspector reads a rendered PDF back for verification.
package invoice

import "github.com/shopspring/decimal"

// LineItem is one purchased product row.
type LineItem struct {
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// ColumnTitles are the header titles echoed in the rendered table, in
// table column order.
type ColumnTitles [numColumns]string

// Invoice is the normalized record extracted from one spreadsheet.
type Invoice struct {
	Number   string
	Date     string
	Items    []LineItem
	TotalDue decimal.Decimal
	Columns  ColumnTitles
}

// FileBase returns the "{number}-{date}" stem shared by the source
// spreadsheet and the rendered document.
func (inv *Invoice) FileBase() string {
	return inv.Number + filenameDelimiter + inv.Date
}

// sumTotals adds up the line totals of items. An empty slice sums to zero.
func sumTotals(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	return total
}
