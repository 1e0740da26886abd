package invoice

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInspect_RenderedInvoice(t *testing.T) {
	path, err := newTestRenderer(t).Render(widgetInvoice(), t.TempDir())
	assertNoErr(t, err)

	got, err := Inspect(path)
	assertNoErr(t, err)
	want := Summary{Number: "10001", Date: "2023.1.18", TotalDue: "30.00"}
	if *got != want {
		t.Errorf("Inspect = %+v, want %+v", *got, want)
	}
}

func TestInspect_ThousandsSeparator(t *testing.T) {
	inv := widgetInvoice()
	inv.Items[1].LineTotal = dec("1224.5")
	inv.TotalDue = sumTotals(inv.Items)

	path, err := newTestRenderer(t).Render(inv, t.TempDir())
	assertNoErr(t, err)

	got, err := Inspect(path)
	assertNoErr(t, err)
	if got.TotalDue != "1,234.50" {
		t.Errorf("TotalDue = %q, want %q", got.TotalDue, "1,234.50")
	}
}

func TestInspect_NameMismatch(t *testing.T) {
	path, err := newTestRenderer(t).Render(widgetInvoice(), t.TempDir())
	assertNoErr(t, err)

	renamed := filepath.Join(filepath.Dir(path), "10002-2023.1.18.pdf")
	assertNoErr(t, os.Rename(path, renamed))

	_, err = Inspect(renamed)
	assertErrIs(t, err, ErrInspect)
}

func TestInspect_PrefixRename(t *testing.T) {
	path, err := newTestRenderer(t).Render(widgetInvoice(), t.TempDir())
	assertNoErr(t, err)

	// Number and date are both prefixes of the rendered 10001 / 2023.1.18.
	renamed := filepath.Join(filepath.Dir(path), "1000-2023.1.1.pdf")
	assertNoErr(t, os.Rename(path, renamed))

	_, err = Inspect(renamed)
	assertErrIs(t, err, ErrInspect)
}

func TestTextLines(t *testing.T) {
	lines := textLines("Invoice nr. 10001\r\n  Date 2023.1.18 \n\nThe total due is $30.00.")
	for _, want := range []string{"Invoice nr. 10001", "Date 2023.1.18", "The total due is $30.00."} {
		if !lines[want] {
			t.Errorf("textLines missing %q", want)
		}
	}
	if lines["Invoice nr. 1000"] {
		t.Error("textLines matched a prefix of a line")
	}
}

func TestInspect_MalformedName(t *testing.T) {
	_, err := Inspect("/tmp/report.pdf")
	assertErrIs(t, err, ErrMalformedFilename)
}

func TestReadText_FileNotFound(t *testing.T) {
	_, err := ReadText("/no/such/file.pdf")
	assertErr(t, err)
}

func TestReadText_NotAPDF(t *testing.T) {
	path := writeTempFile(t, "10001-2023.1.18.pdf", "this is not a PDF")
	_, err := ReadText(path)
	assertErr(t, err)
}
