package read

import (
	"errors"
	"fmt"
)

// StructuralParseError reports a malformed document: invalid syntax,
// unexpected nesting, or a record that does not fit the schema.
type StructuralParseError struct {
	Cause  error
	Format string
}

func (e StructuralParseError) Error() string {
	return fmt.Sprintf("malformed %s document: %v", e.Format, e.Cause)
}

func (e StructuralParseError) Unwrap() error {
	return e.Cause
}

// UnsupportedNestingError reports a nested result inside a column that is
// not declared as a nested result.
type UnsupportedNestingError struct {
	Column string
	Type   string
}

func (e UnsupportedNestingError) Error() string {
	return fmt.Sprintf("nested result in column %q of type %s is not supported", e.Column, e.Type)
}

// DataAccessError is the single error type returned by the read entry
// points. It wraps the structural or nesting failure that aborted the read.
type DataAccessError struct {
	Cause   error
	Message string
}

func (e DataAccessError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e DataAccessError) Unwrap() error {
	return e.Cause
}

func structuralf(format, msg string, args ...any) error {
	return StructuralParseError{Format: format, Cause: fmt.Errorf(msg, args...)}
}

// classify wraps err as a StructuralParseError unless it already carries
// one of the typed read failures.
func classify(format string, err error) error {
	var spErr StructuralParseError
	var unErr UnsupportedNestingError
	if errors.As(err, &spErr) || errors.As(err, &unErr) {
		return err
	}
	return StructuralParseError{Format: format, Cause: err}
}

func boundary(format string, err error) error {
	return DataAccessError{
		Message: fmt.Sprintf("could not read the %s document", format),
		Cause:   classify(format, err),
	}
}
