package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when no codec is registered for a format name
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrInvalidDirection is returned for a type token other than Income or Expense
	ErrInvalidDirection = errors.New("invalid direction")
)

// NotFoundError indicates a missing source file or an identifier that does not
// resolve in the ledger store
type NotFoundError struct {
	Kind RecordKind
	ID   string
}

func (e NotFoundError) Error() string {
	return string(e.Kind) + " not found: " + e.ID
}

// Is implements the errors.Is interface for NotFoundError
func (e NotFoundError) Is(target error) bool {
	t, ok := target.(NotFoundError)
	if !ok {
		return false
	}
	// An empty target kind matches any NotFoundError
	if t.Kind == "" {
		return true
	}
	return e.Kind == t.Kind && (t.ID == "" || e.ID == t.ID)
}

// FormatError reports malformed or unparseable import content
type FormatError struct {
	Format string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s format error: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError wraps err as a FormatError for the named format
func NewFormatError(format string, err error) *FormatError {
	return &FormatError{Format: format, Err: err}
}

// ValidationError indicates an entity invariant violated at construction time
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}
