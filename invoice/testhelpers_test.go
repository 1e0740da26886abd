package invoice

// Shared test helpers for the invoice package.

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Cortexa-LLC/mcp/src/invoicegen/config"
)

//go:embed testdata/logo.png
var logoPNG []byte

// ---- assertion helpers -----------------------------------------------------

func assertNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertErr(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
}

func assertErrIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected error matching %v, got %v", target, err)
	}
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("expected output to contain %q\ngot: %s", want, got)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ---- file factories --------------------------------------------------------

// writeTempFile writes content to a temp file with the given name and returns
// its path. The file is cleaned up automatically when the test ends.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writeTempFile: %v", err)
	}
	return path
}

// writeLogo copies the embedded test logo into dir and returns its path.
func writeLogo(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(path, logoPNG, 0o600); err != nil {
		t.Fatalf("writeLogo: %v", err)
	}
	return path
}

// makeXLSX builds a one-sheet .xlsx file called name inside dir and returns
// its path. Values keep their Go type, so numbers become numeric cells.
func makeXLSX(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, val := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue("Sheet1", cell, val); err != nil {
				t.Fatalf("makeXLSX SetCellValue: %v", err)
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("makeXLSX SaveAs: %v", err)
	}
	return path
}

// sampleHeader is the header row used by the reference spreadsheets.
var sampleHeader = []any{"product_id", "product_name", "amount_purchased", "price_per_unit", "total_price"}

// widgetRows is a header plus two line items totalling 30.
func widgetRows() [][]any {
	return [][]any{
		sampleHeader,
		{"A1", "Widget", 2, 5.0, 10.0},
		{"A2", "Gadget", 1, 20.0, 20.0},
	}
}

// newTestGenerator returns a Generator rooted at a fresh base directory
// containing an empty PDF_Invoices output directory and a logo.
func newTestGenerator(t *testing.T) (*Generator, string) {
	t.Helper()
	base := t.TempDir()
	if err := os.Mkdir(filepath.Join(base, config.DefaultOutputDir), 0o755); err != nil {
		t.Fatalf("mkdir output: %v", err)
	}
	if err := os.Mkdir(filepath.Join(base, "Excel_Files"), 0o755); err != nil {
		t.Fatalf("mkdir input: %v", err)
	}
	writeLogo(t, base)

	cfg := &config.Config{
		BaseDir:          base,
		InputGlob:        config.DefaultInputGlob,
		OutputDir:        config.DefaultOutputDir,
		LogoPath:         "logo.png",
		CompanyName:      config.DefaultCompanyName,
		HeaderRow:        true,
		Workers:          1,
		MaxFileSizeBytes: config.DefaultMaxFileBytes,
	}
	return NewGenerator(cfg, nil), base
}
