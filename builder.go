package sqlkit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zoobzio/sqlkit/internal/types"
)

// errFrozen is returned by setters called after the statement was built.
var errFrozen = errors.New("sequence statement cannot change after it was built")

// Builder provides a fluent API for constructing a CREATE SEQUENCE
// statement. The first error is kept and reported by Build and Render.
// A Builder is not safe for concurrent use.
type Builder struct {
	stmt   *types.CreateSequence
	err    error
	frozen bool
}

// CreateSequence starts a CREATE SEQUENCE statement. The name may be
// qualified as schema.name or catalog.schema.name.
func CreateSequence(name string) *Builder {
	b := &Builder{stmt: &types.CreateSequence{Sequence: types.ParseName(name)}}
	for _, part := range strings.Split(name, ".") {
		if !isValidSQLIdentifier(part) {
			b.err = fmt.Errorf("invalid sequence name %q", name)
			break
		}
	}
	return b
}

// GetStatement returns the statement under construction.
func (b *Builder) GetStatement() *types.CreateSequence {
	return b.stmt
}

// GetError returns the builder's error.
func (b *Builder) GetError() error {
	return b.err
}

// IfNotExists makes creation conditional on the sequence being absent.
func (b *Builder) IfNotExists() *Builder {
	if !b.mutable() {
		return b
	}
	b.stmt.IfNotExists = true
	return b
}

// StartWith sets the first value.
func (b *Builder) StartWith(v any) *Builder {
	return b.value(types.StartWith, v)
}

// IncrementBy sets the step between values.
func (b *Builder) IncrementBy(v any) *Builder {
	return b.value(types.IncrementBy, v)
}

// MinValue sets the lower bound.
func (b *Builder) MinValue(v any) *Builder {
	return b.value(types.MinValue, v)
}

// NoMinValue requests the dialect's default lower bound.
func (b *Builder) NoMinValue() *Builder {
	return b.negate(types.MinValue)
}

// MaxValue sets the upper bound.
func (b *Builder) MaxValue(v any) *Builder {
	return b.value(types.MaxValue, v)
}

// NoMaxValue requests the dialect's default upper bound.
func (b *Builder) NoMaxValue() *Builder {
	return b.negate(types.MaxValue)
}

// Cycle makes the sequence wrap around at its bounds.
func (b *Builder) Cycle() *Builder {
	if !b.mutable() {
		return b
	}
	b.stmt.Slots[types.Cycle] = types.Slot{State: types.SlotValue}
	return b
}

// NoCycle makes the sequence fail at its bounds.
func (b *Builder) NoCycle() *Builder {
	return b.negate(types.Cycle)
}

// Cache sets how many values are preallocated.
func (b *Builder) Cache(v any) *Builder {
	return b.value(types.Cache, v)
}

// NoCache disables preallocation.
func (b *Builder) NoCache() *Builder {
	return b.negate(types.Cache)
}

func (b *Builder) mutable() bool {
	if b.err != nil {
		return false
	}
	if b.frozen {
		b.err = errFrozen
		return false
	}
	return true
}

// value replaces the slot, clearing a previous NO form.
func (b *Builder) value(c types.SequenceClause, v any) *Builder {
	if !b.mutable() {
		return b
	}
	l, err := types.LiteralOf(v)
	if err == nil && l.Kind == types.LiteralString {
		l, err = types.Number(l.Text)
	}
	if err == nil && l.Kind != types.LiteralNumber {
		err = fmt.Errorf("expected a number, got %T", v)
	}
	if err != nil {
		b.err = fmt.Errorf("%s: %w", c.Keyword(), err)
		return b
	}
	b.stmt.Slots[c] = types.Slot{State: types.SlotValue, Value: l}
	return b
}

// negate replaces the slot with its NO form, clearing a previous value.
func (b *Builder) negate(c types.SequenceClause) *Builder {
	if !b.mutable() {
		return b
	}
	b.stmt.Slots[c] = types.Slot{State: types.SlotNegated}
	return b
}

// Build returns the constructed statement or an error. The statement is
// frozen from then on.
func (b *Builder) Build() (*types.CreateSequence, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.stmt.Validate(); err != nil {
		return nil, err
	}
	b.frozen = true
	return b.stmt, nil
}

// MustBuild returns the statement or panics on error.
func (b *Builder) MustBuild() *types.CreateSequence {
	stmt, err := b.Build()
	if err != nil {
		panic(err)
	}
	return stmt
}

// Render builds the statement and renders it with r.
func (b *Builder) Render(r Renderer) (*QueryResult, error) {
	stmt, err := b.Build()
	if err != nil {
		return nil, err
	}
	return r.RenderCreateSequence(stmt)
}

// MustRender builds and renders the statement or panics on error.
func (b *Builder) MustRender(r Renderer) *QueryResult {
	result, err := b.Render(r)
	if err != nil {
		panic(err)
	}
	return result
}

// isValidSQLIdentifier checks if a string is a valid SQL identifier.
func isValidSQLIdentifier(s string) bool {
	if s == "" {
		return false
	}

	// Must start with letter or underscore
	first := s[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z') ||
		first == '_') {
		return false
	}

	// Rest must be alphanumeric or underscore
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '_') {
			return false
		}
	}
	return true
}
