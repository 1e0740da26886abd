package invoice

// pdf.go — reads rendered invoices back via pure-Go text-layer extraction.
//
// Uses github.com/ledongthuc/pdf for parsing. Only the embedded text layer
// is read, which is all the renderer produces besides the logo.

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Summary is what Inspect recovers from a rendered invoice.
type Summary struct {
	Number   string
	Date     string
	TotalDue string // as printed, e.g. "1,234.50"
}

var summaryRe = regexp.MustCompile(`^The total due is \$(-?[0-9,]+\.[0-9]{2})\.$`)

// ReadText returns the text layer of every page of the PDF at filePath,
// pages separated by blank lines.
func ReadText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", filePath, err)
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	var parts []string

	for i := 1; i <= numPages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f2 := p.Font(name)
				fonts[name] = &f2
			}
		}

		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, pageErr)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}

// Inspect checks that the rendered invoice at filePath carries the number
// and date encoded in its file name, and returns the printed total due.
func Inspect(filePath string) (*Summary, error) {
	number, date, err := ParseFilename(filePath)
	if err != nil {
		return nil, err
	}
	text, err := ReadText(filePath)
	if err != nil {
		return nil, err
	}

	lines := textLines(text)
	for _, want := range []string{"Invoice nr. " + number, "Date " + date} {
		if !lines[want] {
			return nil, fmt.Errorf("%w: %s has no line %q", ErrInspect, filePath, want)
		}
	}

	var total string
	for line := range lines {
		if m := summaryRe.FindStringSubmatch(line); m != nil {
			total = m[1]
			break
		}
	}
	if total == "" {
		return nil, fmt.Errorf("%w: %s has no total due line", ErrInspect, filePath)
	}

	return &Summary{Number: number, Date: date, TotalDue: total}, nil
}

// textLines indexes the trimmed non-blank lines of a text layer. Lines are
// matched whole so that "Invoice nr. 1000" never matches "Invoice nr. 10001".
func textLines(text string) map[string]bool {
	lines := make(map[string]bool)
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines[l] = true
		}
	}
	return lines
}
