package types

// ErrorClass names a family of execution failures a guard may suppress.
type ErrorClass string

const (
	ErrAlreadyExists ErrorClass = "already_exists"
)

// Guard describes an execution-time adapter wrapped around a rendered
// statement. It is attached when the dialect has no native syntax for the
// requested behavior.
type Guard struct {
	Statement string     `json:"statement"`
	Suppress  ErrorClass `json:"suppress"`
}

// QueryResult contains the rendered SQL and how it must be executed.
type QueryResult struct {
	Guard   *Guard
	SQL     string
	Dialect Dialect
}
