package loader

import (
	"errors"
	"fmt"

	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

var (
	ErrMissingColumn  = errors.New("missing required column")
	ErrInvalidValue   = errors.New("invalid value")
	ErrNegativeValue  = errors.New("value must not be negative")
	ErrWaitOnOutgoing = errors.New("incoming wait time set on an outgoing call")
	ErrEmptyHeader    = errors.New("file has no header row")
)

// ParseError reports a malformed row or a missing column. Loading stops at the
// first ParseError of a file.
type ParseError struct {
	Path   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Column == "" {
		return fmt.Sprintf("%s:%d: %v", path, e.Line, e.Err)
	}
	if errors.Is(e.Err, ErrMissingColumn) {
		return fmt.Sprintf("%s:%d: %v %q", path, e.Line, e.Err, e.Column)
	}
	return fmt.Sprintf("%s:%d: column %q: %v %q", path, e.Line, e.Column, e.Err, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EmptyInputError is returned by RequireRecords when a file held a header but
// no data rows
type EmptyInputError struct {
	Name string
	Path string
}

func (e *EmptyInputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("branch %s: no records loaded", e.Name)
	}
	return fmt.Sprintf("branch %s (%s): no records loaded", e.Name, e.Path)
}

// RequireRecords returns an *EmptyInputError when ds holds no records
func RequireRecords(ds *types.Dataset) error {
	if ds.Len() > 0 {
		return nil
	}
	if ds == nil {
		return &EmptyInputError{}
	}
	return &EmptyInputError{Name: ds.Name, Path: ds.Path}
}
