package sqlkit

import (
	"fmt"

	"github.com/zoobzio/sqlkit/internal/types"
)

// BoolField uses a boolean column as a predicate. Dialects without boolean
// predicates, and fields with a converter, render it as an equality test.
func BoolField(f types.Field) types.FieldCondition {
	return types.FieldCondition{Field: f}
}

// TryC creates a comparison against a constant, returning an error if the
// value has no literal form.
func TryC(f types.Field, op types.Operator, v any) (types.Condition, error) {
	if f.Name == "" {
		return types.Condition{}, fmt.Errorf("condition requires a field name")
	}
	value, err := types.LiteralOf(v)
	if err != nil {
		return types.Condition{}, fmt.Errorf("condition on %s: %w", f.Name, err)
	}
	return types.Condition{
		Field:    f,
		Operator: op,
		Value:    value,
	}, nil
}

// C creates a comparison against a constant.
func C(f types.Field, op types.Operator, v any) types.Condition {
	c, err := TryC(f, op, v)
	if err != nil {
		panic(err)
	}
	return c
}

// TryAnd creates a ConditionGroup with AND logic, returning an error if invalid.
func TryAnd(conditions ...types.ConditionItem) (types.ConditionGroup, error) {
	if len(conditions) == 0 {
		return types.ConditionGroup{}, fmt.Errorf("AND requires at least one condition")
	}
	return types.ConditionGroup{
		Logic:      types.AND,
		Conditions: conditions,
	}, nil
}

// And creates a ConditionGroup with AND logic.
func And(conditions ...types.ConditionItem) types.ConditionGroup {
	g, err := TryAnd(conditions...)
	if err != nil {
		panic(err)
	}
	return g
}

// TryOr creates a ConditionGroup with OR logic, returning an error if invalid.
func TryOr(conditions ...types.ConditionItem) (types.ConditionGroup, error) {
	if len(conditions) == 0 {
		return types.ConditionGroup{}, fmt.Errorf("OR requires at least one condition")
	}
	return types.ConditionGroup{
		Logic:      types.OR,
		Conditions: conditions,
	}, nil
}

// Or creates a ConditionGroup with OR logic.
func Or(conditions ...types.ConditionItem) types.ConditionGroup {
	g, err := TryOr(conditions...)
	if err != nil {
		panic(err)
	}
	return g
}
