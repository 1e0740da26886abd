package invoice

// render.go — Invoice → PDF using github.com/go-pdf/fpdf.
// The layout is fixed: header block, bordered item table with a trailing
// total row, summary sentence, then the branding label and logo.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

const (
	fontFamily = "Times"

	headerFontSize  = 16
	tableFontSize   = 12
	summaryFontSize = 14

	lineHeight    = 8.0  // mm, header and summary lines
	rowHeight     = 10.0 // mm, table rows
	sectionGap    = 6.0  // mm
	brandingWidth = 25.0 // mm, label cell before the logo
	logoX         = 52.0 // mm from the left page edge
	logoWidth     = 10.0 // mm; height follows the image aspect ratio

	pdfExt = ".pdf"
)

// Renderer draws invoices onto A4 pages.
type Renderer struct {
	// LogoPath is the branding image placed next to CompanyName.
	LogoPath    string
	CompanyName string
	// HeaderRow emits the column titles as the first table row.
	HeaderRow bool
}

// OutputPath returns where Render writes inv inside outDir.
func OutputPath(outDir string, inv *Invoice) string {
	return filepath.Join(outDir, inv.FileBase()+pdfExt)
}

// Render writes inv to "{outDir}/{number}-{date}.pdf" and returns that path.
// outDir must already exist.
func (r *Renderer) Render(inv *Invoice, outDir string) (string, error) {
	info, err := os.Stat(outDir)
	if err != nil {
		return "", fmt.Errorf("%w: output directory: %v", ErrRenderIO, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: output path %s is not a directory", ErrRenderIO, outDir)
	}

	pdf, err := r.layout(inv)
	if err != nil {
		return "", err
	}

	path := OutputPath(outDir, inv)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", ErrRenderIO, path, err)
	}
	return path, nil
}

// Write renders inv to w.
func (r *Renderer) Write(w io.Writer, inv *Invoice) error {
	pdf, err := r.layout(inv)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRenderIO, err)
	}
	return nil
}

func (r *Renderer) layout(inv *Invoice) (*fpdf.Fpdf, error) {
	if _, err := os.Stat(r.LogoPath); err != nil {
		return nil, fmt.Errorf("%w: logo: %v", ErrMissingAsset, err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice nr. "+inv.Number, true)
	pdf.SetCreator("invoicegen", true)
	// Core fonts are cp1252. Text outside it fails the render instead of
	// being replaced.
	enc := charmap.Windows1252.NewEncoder()
	var textErr error
	tr := func(s string) string {
		out, err := enc.String(s)
		if err != nil && textErr == nil {
			textErr = fmt.Errorf("%w: %q cannot be encoded as cp1252", ErrUnsupportedText, s)
		}
		return out
	}

	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", headerFontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, lineHeight, tr("Invoice nr. "+inv.Number), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, tr("Date "+inv.Date), "", 1, "L", false, 0, "")
	pdf.Ln(sectionGap)

	pdf.SetTextColor(30, 30, 30)
	for i, row := range TableRows(inv, r.HeaderRow) {
		style := ""
		if r.HeaderRow && i == 0 {
			style = "B"
		}
		pdf.SetFont(fontFamily, style, tableFontSize)
		for c, text := range row {
			ln := 0
			if c == numColumns-1 {
				ln = 1
			}
			pdf.CellFormat(columns[c].width, rowHeight, tr(text), "1", ln, columns[c].align, false, 0, "")
		}
	}
	pdf.Ln(sectionGap)

	pdf.SetFont(fontFamily, "B", summaryFontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, lineHeight, SummaryLine(inv.TotalDue), "", 1, "L", false, 0, "")

	pdf.CellFormat(brandingWidth, lineHeight, tr(r.CompanyName), "", 0, "L", false, 0, "")
	if textErr != nil {
		return nil, textErr
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout invoice %s: %w", inv.FileBase(), err)
	}

	pdf.ImageOptions(r.LogoPath, logoX, pdf.GetY(), logoWidth, 0, false,
		fpdf.ImageOptions{ReadDpi: true}, 0, "")
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: logo %s: %v", ErrMissingAsset, r.LogoPath, err)
	}

	return pdf, nil
}
