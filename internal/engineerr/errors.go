// Package engineerr defines the three error categories from the
// error-handling design: parse errors and build errors abort the process,
// not-found errors are caught by the query dispatcher and turned into a
// per-response error_message instead.
package engineerr

import "fmt"

// ParseError wraps an input error: unknown request type, malformed
// number, missing required field. Fatal at parse time.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func NewParseError(field string, err error) *ParseError {
	return &ParseError{Field: field, Err: err}
}

// BuildError wraps a data error discovered while assembling the catalog
// or graph: a missing road distance, a bus referencing an unknown stop.
// Fatal at build time.
type BuildError struct {
	Reason string
}

func (e *BuildError) Error() string { return "build: " + e.Reason }

func NewBuildError(reason string) *BuildError {
	return &BuildError{Reason: reason}
}

// NotFoundError is a query miss: unknown bus/stop, unreachable route. The
// query dispatcher catches these and emits {"error_message": ...}; it
// never aborts the batch.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}
