package render

import "github.com/zoobzio/sqlkit/internal/types"

// Renderer renders statements for one dialect. A Renderer holds no mutable
// state and may be shared between goroutines.
type Renderer struct {
	listener Listener
	caps     Capabilities
	dialect  types.Dialect
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithListener reports clause boundaries to l.
func WithListener(l Listener) Option {
	return func(r *Renderer) {
		r.listener = l
	}
}

// New creates a renderer for dialect d using the capabilities in table.
func New(d types.Dialect, table Table, opts ...Option) (*Renderer, error) {
	caps, err := table.Lookup(d)
	if err != nil {
		return nil, err
	}
	r := &Renderer{dialect: d, caps: caps}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Must panics if err is non-nil. It is meant for built-in dialects whose
// capabilities always exist.
func Must(r *Renderer, err error) *Renderer {
	if err != nil {
		panic(err)
	}
	return r
}

// Dialect returns the target dialect.
func (r *Renderer) Dialect() types.Dialect {
	return r.dialect
}

// Capabilities returns the dialect's capabilities.
func (r *Renderer) Capabilities() Capabilities {
	return r.caps
}

func (r *Renderer) newContext() *renderContext {
	return &renderContext{caps: r.caps, listener: r.listener}
}

func (r *Renderer) unsupported(feature, hint string) error {
	return NewUnsupportedFeatureError(string(r.dialect), feature, hint)
}

func (r *Renderer) invalid(statement string, err error) error {
	return InvalidStatementError{Statement: statement, Cause: err}
}
