package types

// Operator represents comparison operators.
type Operator string

const (
	EQ Operator = "="
	NE Operator = "<>"
	GT Operator = ">"
	GE Operator = ">="
	LT Operator = "<"
	LE Operator = "<="
)
