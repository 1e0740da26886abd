package invoice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// seedBatch writes two good spreadsheets around two broken ones and
// returns their paths in batch order.
func seedBatch(t *testing.T, base string) []string {
	t.Helper()
	dir := filepath.Join(base, "Excel_Files")
	return []string{
		makeXLSX(t, dir, "10001-2023.1.18.xlsx", widgetRows()),
		makeXLSX(t, dir, "broken.xlsx", widgetRows()),
		makeXLSX(t, dir, "10003-2023.1.18.xlsx", [][]any{sampleHeader, {"A1", "Widget", "two", 5, 10}}),
		makeXLSX(t, dir, "10004-2023.1.18.xlsx", widgetRows()),
	}
}

func TestBatch_SkipsFailuresAndContinues(t *testing.T) {
	gen, base := newTestGenerator(t)
	paths := seedBatch(t, base)

	res := gen.Batch(context.Background(), paths)

	if res.Generated != 2 || res.Failed != 2 || res.Total() != 4 {
		t.Fatalf("BatchResult = %d generated, %d failed, want 2 and 2", res.Generated, res.Failed)
	}
	if !res.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}

	wantKinds := []string{"", "MalformedFilename", "MalformedRow", ""}
	for i, r := range res.Results {
		if r.Source != paths[i] {
			t.Errorf("Results[%d].Source = %q, want %q", i, r.Source, paths[i])
		}
		if wantKinds[i] == "" {
			assertNoErr(t, r.Err)
			if _, err := os.Stat(r.Output); err != nil {
				t.Errorf("missing output for %s: %v", r.Source, err)
			}
			continue
		}
		if got := Kind(r.Err); got != wantKinds[i] {
			t.Errorf("Results[%d] kind = %q, want %q", i, got, wantKinds[i])
		}
	}

	err := res.Err()
	assertErr(t, err)
	assertErrIs(t, err, ErrMalformedFilename)
	assertErrIs(t, err, ErrMalformedRow)
	assertContains(t, err.Error(), "broken.xlsx")
}

func TestBatch_ParallelKeepsInputOrder(t *testing.T) {
	gen, base := newTestGenerator(t)
	gen.cfg.Workers = 4
	paths := seedBatch(t, base)

	res := gen.Batch(context.Background(), paths)

	if res.Generated != 2 || res.Failed != 2 {
		t.Fatalf("BatchResult = %d generated, %d failed, want 2 and 2", res.Generated, res.Failed)
	}
	for i, r := range res.Results {
		if r.Source != paths[i] {
			t.Errorf("Results[%d].Source = %q, want %q", i, r.Source, paths[i])
		}
	}
}

func TestBatch_MissingOutputDirFailsEveryFile(t *testing.T) {
	gen, base := newTestGenerator(t)
	assertNoErr(t, os.Remove(filepath.Join(base, "PDF_Invoices")))
	path := makeXLSX(t, filepath.Join(base, "Excel_Files"), "10001-2023.1.18.xlsx", widgetRows())

	res := gen.Batch(context.Background(), []string{path})
	if res.Failed != 1 {
		t.Fatalf("Failed = %d, want 1", res.Failed)
	}
	assertErrIs(t, res.Results[0].Err, ErrRenderIO)
}

func TestBatch_CancelledContext(t *testing.T) {
	gen, base := newTestGenerator(t)
	path := makeXLSX(t, filepath.Join(base, "Excel_Files"), "10001-2023.1.18.xlsx", widgetRows())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := gen.Batch(ctx, []string{path})
	if res.Failed != 1 || !errors.Is(res.Results[0].Err, context.Canceled) {
		t.Errorf("cancelled batch result = %+v", res.Results)
	}
}

func TestBatch_Empty(t *testing.T) {
	gen, _ := newTestGenerator(t)
	res := gen.Batch(context.Background(), nil)
	if res.Total() != 0 || res.Err() != nil {
		t.Errorf("empty batch = %+v", res)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrMalformedFilename, "MalformedFilename"},
		{rowErr(2, "qty", "bad"), "MalformedRow"},
		{ErrRenderIO, "RenderIOError"},
		{ErrMissingAsset, "MissingAsset"},
		{errors.New("other"), "Error"},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
