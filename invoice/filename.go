package invoice

import (
	"fmt"
	"path/filepath"
	"strings"
)

// filenameDelimiter separates the invoice number from the invoice date in
// source and output file names.
const filenameDelimiter = "-"

// knownExts are stripped before splitting. Any other suffix is part of the
// date, so "10001-2023.1.18" keeps its full date.
var knownExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	pdfExt:  true,
}

// ParseFilename derives the invoice number and date from a file path of the
// form "{number}-{date}.ext". Only the first delimiter splits, so
// "10001-2023-1-18.xlsx" yields ("10001", "2023-1-18").
func ParseFilename(path string) (number, date string, err error) {
	base := filepath.Base(path)
	stem := base
	if ext := filepath.Ext(base); knownExts[strings.ToLower(ext)] {
		stem = strings.TrimSuffix(base, ext)
	}

	number, date, ok := strings.Cut(stem, filenameDelimiter)
	if !ok {
		return "", "", fmt.Errorf("%w: %q has no %q delimiter", ErrMalformedFilename, base, filenameDelimiter)
	}
	if number == "" || date == "" {
		return "", "", fmt.Errorf("%w: %q has an empty invoice number or date", ErrMalformedFilename, base)
	}
	return number, date, nil
}
