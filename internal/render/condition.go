package render

import (
	"errors"
	"fmt"

	"github.com/zoobzio/sqlkit/internal/types"
)

// RenderCondition renders a predicate.
func (r *Renderer) RenderCondition(item types.ConditionItem) (*types.QueryResult, error) {
	if item == nil {
		return nil, r.invalid("condition", errors.New("condition is nil"))
	}
	ctx := r.newContext()
	ctx.start(types.ClauseCondition)
	if err := r.renderCondition(ctx, item); err != nil {
		return nil, err
	}
	ctx.end(types.ClauseCondition)
	return &types.QueryResult{SQL: ctx.String(), Dialect: r.dialect}, nil
}

func (r *Renderer) renderCondition(ctx *renderContext, item types.ConditionItem) error {
	switch c := item.(type) {
	case types.FieldCondition:
		if c.Field.Name == "" {
			return r.invalid("condition", errors.New("field name is required"))
		}
		normalized, err := r.NormalizeBoolean(c.Field)
		if err != nil {
			return err
		}
		if fc, ok := normalized.(types.FieldCondition); ok {
			ctx.name(fc.Field.Qualified()...)
			return nil
		}
		return r.renderCondition(ctx, normalized)
	case types.Condition:
		if c.Field.Name == "" {
			return r.invalid("condition", errors.New("field name is required"))
		}
		ctx.name(c.Field.Qualified()...).space().keyword(string(c.Operator)).space().literal(c.Value)
	case types.ConditionGroup:
		if len(c.Conditions) == 0 {
			return r.invalid("condition", errors.New("empty condition group"))
		}
		ctx.keyword("(")
		for i, sub := range c.Conditions {
			if i > 0 {
				ctx.space().keyword(string(c.Logic)).space()
			}
			if err := r.renderCondition(ctx, sub); err != nil {
				return err
			}
		}
		ctx.keyword(")")
	default:
		return fmt.Errorf("unknown condition type: %T", c)
	}
	return nil
}

// NormalizeBoolean rewrites a boolean column used as a predicate.
//
// Dialects without boolean predicates always compare against TRUE. So do
// fields with a converter, whose stored form may not be boolean; the TRUE
// literal is passed through the converter to its stored form. Otherwise the
// bare column is kept.
func (r *Renderer) NormalizeBoolean(f types.Field) (types.ConditionItem, error) {
	if r.caps.BooleanPredicate && !f.HasConverter() {
		return types.FieldCondition{Field: f}, nil
	}
	value := types.Bool(true)
	if f.HasConverter() {
		stored, err := f.Converter.To(true)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		if value, err = types.LiteralOf(stored); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return types.Condition{Field: f, Operator: types.EQ, Value: value}, nil
}
