package types

import "fmt"

// Clause names a region of rendered output. Renderers report the start and
// end of each clause to an optional listener.
type Clause string

const (
	ClauseCreateSequence Clause = "CREATE_SEQUENCE"
	ClauseCondition      Clause = "CONDITION"
)

// SlotState is the state of an optional clause.
type SlotState int

const (
	SlotUnset SlotState = iota
	SlotValue
	SlotNegated
)

// Slot holds one optional clause of a statement. A slot is either unset,
// set to a value, or set to its negated ("NO X") form. Holding a single
// state means the positive and negated forms can never coexist.
type Slot struct {
	Value Literal
	State SlotState
}

// SequenceClause enumerates the optional clauses of CREATE SEQUENCE.
type SequenceClause int

const (
	StartWith SequenceClause = iota
	IncrementBy
	MinValue
	MaxValue
	Cycle
	Cache

	sequenceClauseCount
)

// SequenceClauses returns the clauses in rendering order.
func SequenceClauses() []SequenceClause {
	return []SequenceClause{StartWith, IncrementBy, MinValue, MaxValue, Cycle, Cache}
}

var sequenceKeywords = [...]string{
	StartWith:   "START WITH",
	IncrementBy: "INCREMENT BY",
	MinValue:    "MINVALUE",
	MaxValue:    "MAXVALUE",
	Cycle:       "CYCLE",
	Cache:       "CACHE",
}

// Keyword returns the SQL keyword of the clause.
func (c SequenceClause) Keyword() string {
	if c < 0 || c >= sequenceClauseCount {
		return ""
	}
	return sequenceKeywords[c]
}

// Negatable reports whether the grammar has a "NO" form for the clause.
func (c SequenceClause) Negatable() bool {
	switch c {
	case MinValue, MaxValue, Cycle, Cache:
		return true
	default:
		return false
	}
}

// Valued reports whether the positive form carries a value.
func (c SequenceClause) Valued() bool {
	return c != Cycle
}

// CreateSequence is the statement node for CREATE SEQUENCE.
type CreateSequence struct {
	Sequence    Name
	Slots       [sequenceClauseCount]Slot
	IfNotExists bool
}

// Slot returns the state of a clause.
func (s *CreateSequence) Slot(c SequenceClause) Slot {
	return s.Slots[c]
}

// Validate performs basic validation on the statement.
func (s *CreateSequence) Validate() error {
	if s.Sequence.IsZero() {
		return fmt.Errorf("sequence name is required")
	}
	for _, c := range SequenceClauses() {
		slot := s.Slots[c]
		switch slot.State {
		case SlotUnset:
		case SlotValue:
			if c.Valued() && slot.Value.Kind != LiteralNumber {
				return fmt.Errorf("%s requires a numeric value", c.Keyword())
			}
		case SlotNegated:
			if !c.Negatable() {
				return fmt.Errorf("%s has no negated form", c.Keyword())
			}
		default:
			return fmt.Errorf("invalid state for %s: %d", c.Keyword(), slot.State)
		}
	}
	return nil
}
