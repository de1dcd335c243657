package types

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// LiteralKind distinguishes the inline constants a statement can carry.
type LiteralKind int

const (
	LiteralNone LiteralKind = iota
	LiteralNumber
	LiteralBool
	LiteralString
)

// Literal is an inline constant embedded into rendered SQL.
// Numbers keep their exact decimal text.
type Literal struct {
	Text string
	Kind LiteralKind
	Bool bool
}

// Int creates an integer literal.
func Int(v int64) Literal {
	return Literal{Kind: LiteralNumber, Text: strconv.FormatInt(v, 10)}
}

// Number creates an exact numeric literal from its decimal text.
func Number(text string) (Literal, error) {
	text = strings.TrimSpace(text)
	if _, ok := new(big.Rat).SetString(text); !ok || strings.ContainsAny(text, "/eE") {
		return Literal{}, fmt.Errorf("invalid numeric literal: %q", text)
	}
	return Literal{Kind: LiteralNumber, Text: text}, nil
}

// Bool creates a boolean literal.
func Bool(v bool) Literal {
	return Literal{Kind: LiteralBool, Bool: v}
}

// String creates a character literal.
func String(v string) Literal {
	return Literal{Kind: LiteralString, Text: v}
}

// LiteralOf creates a literal from a Go value.
func LiteralOf(v any) (Literal, error) {
	switch x := v.(type) {
	case Literal:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case DecimalString:
		return Number(string(x))
	case float64:
		return Number(strconv.FormatFloat(x, 'f', -1, 64))
	}
	return Literal{}, fmt.Errorf("unsupported literal type %T", v)
}

// IsZero reports whether the literal is unset.
func (l Literal) IsZero() bool {
	return l.Kind == LiteralNone
}
