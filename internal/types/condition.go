package types

// ConditionItem represents a predicate or a group of predicates.
type ConditionItem interface {
	IsConditionItem()
}

// FieldCondition uses a boolean column as a predicate.
type FieldCondition struct {
	Field Field
}

// Condition compares a field against an inline literal.
type Condition struct {
	Field    Field
	Operator Operator
	Value    Literal
}

// LogicOperator represents how conditions are combined.
type LogicOperator string

const (
	AND LogicOperator = "AND"
	OR  LogicOperator = "OR"
)

// ConditionGroup represents grouped conditions with AND/OR logic.
type ConditionGroup struct {
	Logic      LogicOperator
	Conditions []ConditionItem
}

// Implement ConditionItem interface.
func (FieldCondition) IsConditionItem() {}
func (Condition) IsConditionItem()      {}
func (ConditionGroup) IsConditionItem() {}
