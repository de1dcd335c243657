package render

import (
	"strings"

	"github.com/zoobzio/sqlkit/internal/types"
)

// Listener receives clause boundaries while a statement renders. Each
// ClauseStart is paired with a ClauseEnd for the same clause.
type Listener interface {
	ClauseStart(clause types.Clause)
	ClauseEnd(clause types.Clause)
}

// ListenerFuncs adapts a pair of functions to Listener.
type ListenerFuncs struct {
	Start func(types.Clause)
	End   func(types.Clause)
}

// ClauseStart calls Start if set.
func (l ListenerFuncs) ClauseStart(c types.Clause) {
	if l.Start != nil {
		l.Start(c)
	}
}

// ClauseEnd calls End if set.
func (l ListenerFuncs) ClauseEnd(c types.Clause) {
	if l.End != nil {
		l.End(c)
	}
}

// renderContext is the output sink for one render call.
type renderContext struct {
	listener Listener
	caps     Capabilities
	sql      strings.Builder
}

func (ctx *renderContext) start(c types.Clause) *renderContext {
	if ctx.listener != nil {
		ctx.listener.ClauseStart(c)
	}
	return ctx
}

func (ctx *renderContext) end(c types.Clause) *renderContext {
	if ctx.listener != nil {
		ctx.listener.ClauseEnd(c)
	}
	return ctx
}

func (ctx *renderContext) keyword(k string) *renderContext {
	ctx.sql.WriteString(k)
	return ctx
}

func (ctx *renderContext) space() *renderContext {
	ctx.sql.WriteByte(' ')
	return ctx
}

func (ctx *renderContext) name(parts ...string) *renderContext {
	for i, p := range parts {
		if i > 0 {
			ctx.sql.WriteByte('.')
		}
		ctx.sql.WriteString(quoteIdentifier(ctx.caps.Quote, p))
	}
	return ctx
}

func (ctx *renderContext) literal(l types.Literal) *renderContext {
	ctx.sql.WriteString(Literal(ctx.caps, l))
	return ctx
}

func (ctx *renderContext) String() string {
	return ctx.sql.String()
}

func quoteIdentifier(style QuoteStyle, name string) string {
	switch style {
	case QuoteBacktick:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	case QuoteBracket:
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// Literal renders an inline constant using the dialect's literal syntax.
func Literal(caps Capabilities, l types.Literal) string {
	switch l.Kind {
	case types.LiteralNumber:
		return l.Text
	case types.LiteralBool:
		if caps.BooleanLiteral == BooleanNumeric {
			if l.Bool {
				return "1"
			}
			return "0"
		}
		if l.Bool {
			return "TRUE"
		}
		return "FALSE"
	case types.LiteralString:
		return "'" + strings.ReplaceAll(l.Text, "'", "''") + "'"
	default:
		return "NULL"
	}
}
