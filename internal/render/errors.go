package render

import "fmt"

// UnsupportedFeatureError indicates a feature not supported by the dialect
// and for which no fallback exists.
type UnsupportedFeatureError struct {
	Feature string
	Dialect string
	Hint    string
}

func (e UnsupportedFeatureError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s is not supported: %s", e.Dialect, e.Feature, e.Hint)
	}
	return fmt.Sprintf("%s: %s is not supported", e.Dialect, e.Feature)
}

// NewUnsupportedFeatureError creates a new unsupported feature error.
func NewUnsupportedFeatureError(dialect, feature string, hint ...string) error {
	err := UnsupportedFeatureError{Feature: feature, Dialect: dialect}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}

// InvalidStatementError reports a statement that cannot be rendered for any
// dialect, such as one without a target object.
type InvalidStatementError struct {
	Cause     error
	Statement string
}

func (e InvalidStatementError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Statement, e.Cause)
}

func (e InvalidStatementError) Unwrap() error {
	return e.Cause
}
