package youtube

import (
	"errors"
	"fmt"
)

var (
	// ErrInitialDataNotFound is returned when a page carries no embedded
	// ytInitialData assignment.
	ErrInitialDataNotFound = errors.New("ytInitialData not found in page")

	// ErrInitialDataInvalid is returned when the captured span is not valid JSON.
	ErrInitialDataInvalid = errors.New("ytInitialData is not valid JSON")

	// ErrSchemaMismatch is returned when a required structural path is absent
	// from the document. It aborts the whole list parse, unlike individual
	// items of unknown shape, which are merely skipped.
	ErrSchemaMismatch = errors.New("expected content path not present")
)

// FieldError reports a field that was present in the document but unparsable.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: unparsable value %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
