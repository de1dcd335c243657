package render

import (
	"fmt"
	"io"

	"github.com/zoobzio/sqlkit/internal/types"
	"gopkg.in/yaml.v3"
)

// QuoteStyle selects how identifiers are delimited.
type QuoteStyle string

const (
	QuoteDouble   QuoteStyle = "double"   // "name"
	QuoteBacktick QuoteStyle = "backtick" // `name`
	QuoteBracket  QuoteStyle = "bracket"  // [name]
)

// BooleanLiteralStyle selects how inline booleans are written.
type BooleanLiteralStyle string

const (
	BooleanKeyword BooleanLiteralStyle = "keyword" // TRUE / FALSE
	BooleanNumeric BooleanLiteralStyle = "numeric" // 1 / 0
)

// Capabilities describes the SQL features and quirks of a dialect.
type Capabilities struct {
	Quote            QuoteStyle          `yaml:"quote"`
	BooleanLiteral   BooleanLiteralStyle `yaml:"boolean_literal"`
	SequenceKeyword  string              `yaml:"sequence_keyword"`    // SEQUENCE, or SERIAL
	Sequences        bool                `yaml:"sequences"`           // CREATE SEQUENCE at all
	IfNotExists      bool                `yaml:"if_not_exists"`       // CREATE ... IF NOT EXISTS
	RequireStartWith bool                `yaml:"require_start_with"` // default START WITH 1
	SequenceCache    bool                `yaml:"sequence_cache"`      // CACHE / NO CACHE
	NoKeywordSpace   bool                `yaml:"no_keyword_space"`    // NOMAXVALUE, not NO MAXVALUE
	OmitNoCache      bool                `yaml:"omit_no_cache"`       // NO CACHE is the default
	OmitNoCycle      bool                `yaml:"omit_no_cycle"`
	OmitNoMinValue   bool                `yaml:"omit_no_minvalue"`
	OmitNoMaxValue   bool                `yaml:"omit_no_maxvalue"`
	BooleanPredicate bool                `yaml:"boolean_predicate"` // bare boolean column as predicate
}

// OmitsNegated reports whether the dialect leaves out the negated form of a
// clause because it is the default.
func (c Capabilities) OmitsNegated(clause types.SequenceClause) bool {
	switch clause {
	case types.MinValue:
		return c.OmitNoMinValue
	case types.MaxValue:
		return c.OmitNoMaxValue
	case types.Cycle:
		return c.OmitNoCycle
	case types.Cache:
		return c.OmitNoCache
	default:
		return false
	}
}

// Supports reports whether the dialect has the clause at all.
func (c Capabilities) Supports(clause types.SequenceClause) bool {
	if clause == types.Cache {
		return c.SequenceCache
	}
	return true
}

// Table maps each dialect to its capabilities. It is read-only once built.
type Table map[types.Dialect]Capabilities

// standard is the baseline most dialects share.
func standard() Capabilities {
	return Capabilities{
		Quote:            QuoteDouble,
		BooleanLiteral:   BooleanKeyword,
		SequenceKeyword:  "SEQUENCE",
		Sequences:        true,
		IfNotExists:      true,
		SequenceCache:    true,
		BooleanPredicate: true,
	}
}

// DefaultCapabilities returns a fresh copy of the built-in table.
func DefaultCapabilities() Table {
	t := Table{}
	for _, d := range types.Dialects() {
		t[d] = standard()
	}

	cubrid := t[types.Cubrid]
	cubrid.SequenceKeyword = "SERIAL"
	cubrid.NoKeywordSpace = true
	cubrid.BooleanPredicate = false
	cubrid.BooleanLiteral = BooleanNumeric
	t[types.Cubrid] = cubrid

	derby := t[types.Derby]
	derby.IfNotExists = false
	derby.RequireStartWith = true
	derby.SequenceCache = false
	t[types.Derby] = derby

	firebird := t[types.Firebird]
	firebird.IfNotExists = false
	firebird.SequenceCache = false
	firebird.OmitNoCache = true
	firebird.OmitNoCycle = true
	firebird.OmitNoMinValue = true
	firebird.OmitNoMaxValue = true
	firebird.BooleanPredicate = false
	t[types.Firebird] = firebird

	hsqldb := t[types.HSQLDB]
	hsqldb.SequenceCache = false
	t[types.HSQLDB] = hsqldb

	mariadb := t[types.MariaDB]
	mariadb.Quote = QuoteBacktick
	mariadb.NoKeywordSpace = true
	t[types.MariaDB] = mariadb

	mysql := t[types.MySQL]
	mysql.Quote = QuoteBacktick
	mysql.Sequences = false
	t[types.MySQL] = mysql

	oracle := t[types.Oracle]
	oracle.BooleanLiteral = BooleanNumeric
	oracle.BooleanPredicate = false
	t[types.Oracle] = oracle

	postgres := t[types.Postgres]
	postgres.OmitNoCache = true
	t[types.Postgres] = postgres

	yugabyte := t[types.YugabyteDB]
	yugabyte.OmitNoCache = true
	t[types.YugabyteDB] = yugabyte

	sqlite := t[types.SQLite]
	sqlite.Sequences = false
	sqlite.BooleanLiteral = BooleanNumeric
	t[types.SQLite] = sqlite

	sqlserver := t[types.SQLServer]
	sqlserver.Quote = QuoteBracket
	sqlserver.BooleanLiteral = BooleanNumeric
	sqlserver.BooleanPredicate = false
	t[types.SQLServer] = sqlserver

	return t
}

// Lookup returns the capabilities of a dialect.
func (t Table) Lookup(d types.Dialect) (Capabilities, error) {
	c, ok := t[d]
	if !ok {
		return Capabilities{}, fmt.Errorf("no capabilities registered for dialect %q", d)
	}
	return c, nil
}

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for d, c := range t {
		out[d] = c
	}
	return out
}

// LoadCapabilities reads YAML overrides keyed by dialect name and applies
// them on top of a copy of base. Fields absent from a dialect's entry keep
// their base value; unknown dialects start from the standard baseline.
//
//	postgres:
//	  omit_no_cache: false
//	mydb:
//	  if_not_exists: false
func LoadCapabilities(r io.Reader, base Table) (Table, error) {
	var raw map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return base.Clone(), nil
		}
		return nil, fmt.Errorf("failed to decode capabilities: %w", err)
	}

	out := base.Clone()
	for name, node := range raw {
		d, err := types.ParseDialect(name)
		if err != nil {
			d = types.Dialect(name)
		}
		c, ok := out[d]
		if !ok {
			c = standard()
		}
		if err := node.Decode(&c); err != nil {
			return nil, fmt.Errorf("invalid capabilities for %s: %w", name, err)
		}
		out[d] = c
	}
	return out, nil
}
