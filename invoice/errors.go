package invoice

import (
	"errors"
	"fmt"
)

// Error kinds reported per file by the batch driver. Match with errors.Is.
var (
	ErrMalformedFilename = errors.New("malformed filename")
	ErrMalformedRow      = errors.New("malformed row")
	ErrRenderIO          = errors.New("render io error")
	ErrMissingAsset      = errors.New("missing asset")
	ErrInspect           = errors.New("inspect mismatch")
	ErrUnsupportedText   = errors.New("unsupported text")
)

var errorKinds = []struct {
	err  error
	name string
}{
	{ErrMalformedFilename, "MalformedFilename"},
	{ErrMalformedRow, "MalformedRow"},
	{ErrRenderIO, "RenderIOError"},
	{ErrMissingAsset, "MissingAsset"},
	{ErrInspect, "InspectMismatch"},
	{ErrUnsupportedText, "UnsupportedText"},
}

// Kind names the error kind of err for user-facing reports. Errors that
// match no known kind are reported as "Error".
func Kind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Error"
}

// RowError locates a malformed cell in the source sheet. Row is 1-based
// and counts the header row.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

func rowErr(row int, column, format string, args ...any) error {
	return &RowError{
		Row:    row,
		Column: column,
		Err:    fmt.Errorf("%w: "+format, append([]any{ErrMalformedRow}, args...)...),
	}
}
