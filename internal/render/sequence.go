package render

import (
	"errors"

	"github.com/zoobzio/sqlkit/internal/types"
)

const createSequence = "CREATE SEQUENCE"

// RenderCreateSequence renders a CREATE SEQUENCE statement.
//
// Conditional creation uses the native IF NOT EXISTS keyword when the
// dialect has it. Otherwise the unconditional statement is returned with a
// Guard that suppresses "already exists" failures at execution time.
func (r *Renderer) RenderCreateSequence(s *types.CreateSequence) (*types.QueryResult, error) {
	if s == nil {
		return nil, r.invalid(createSequence, errors.New("statement is nil"))
	}
	if err := s.Validate(); err != nil {
		return nil, r.invalid(createSequence, err)
	}
	if !r.caps.Sequences {
		return nil, r.unsupported(createSequence, "the dialect has no sequence objects")
	}

	ctx := r.newContext()
	ctx.start(types.ClauseCreateSequence)
	ctx.keyword("CREATE").space().keyword(r.caps.SequenceKeyword).space()
	if s.IfNotExists && r.caps.IfNotExists {
		ctx.keyword("IF NOT EXISTS").space()
	}
	ctx.name(s.Sequence.Parts()...)
	for _, c := range types.SequenceClauses() {
		r.renderSequenceClause(ctx, c, s.Slot(c))
	}
	ctx.end(types.ClauseCreateSequence)

	result := &types.QueryResult{SQL: ctx.String(), Dialect: r.dialect}
	if s.IfNotExists && !r.caps.IfNotExists {
		result.Guard = &types.Guard{Statement: createSequence, Suppress: types.ErrAlreadyExists}
	}
	return result, nil
}

func (r *Renderer) renderSequenceClause(ctx *renderContext, c types.SequenceClause, slot types.Slot) {
	if !r.caps.Supports(c) {
		return
	}
	switch {
	case slot.State == types.SlotValue:
		ctx.space().keyword(c.Keyword())
		if c.Valued() {
			ctx.space().literal(slot.Value)
		}
	case slot.State == types.SlotNegated && !r.caps.OmitsNegated(c):
		ctx.space().keyword("NO")
		if !r.caps.NoKeywordSpace {
			ctx.space()
		}
		ctx.keyword(c.Keyword())
	case c == types.StartWith && r.caps.RequireStartWith:
		// Some databases start sequences at MINVALUE unless told otherwise.
		ctx.space().keyword(c.Keyword()).space().literal(types.Int(1))
	}
}
