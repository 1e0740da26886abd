package invoice

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney renders d with a thousands separator and two decimal places,
// e.g. 1234.5 → "1,234.50". No currency symbol is added. The value is never
// converted to a float, so totals of any size keep their cents.
func FormatMoney(d decimal.Decimal) string {
	d = d.Round(2)
	intPart, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	n, _ := new(big.Int).SetString(intPart, 10)
	s := humanize.BigComma(n) + "." + frac
	if d.IsNegative() {
		s = "-" + s
	}
	return s
}

// SummaryLine is the sentence printed below the table.
func SummaryLine(total decimal.Decimal) string {
	return fmt.Sprintf("The total due is $%s.", FormatMoney(total))
}

// parseAmount coerces a raw cell value to a decimal. Surrounding spaces, a
// leading "$" and thousands separators are tolerated.
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty value")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", raw)
	}
	return d, nil
}
