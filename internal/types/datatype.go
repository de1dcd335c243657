package types

import (
	"regexp"
	"strings"
)

// Kind is the storage class of a data type.
type Kind int

const (
	KindVarchar Kind = iota
	KindChar
	KindClob
	KindSmallint
	KindInteger
	KindBigint
	KindDecimal
	KindDouble
	KindBoolean
	KindDate
	KindTime
	KindTimestamp
	KindBinary
	KindUUID
	KindOther
	KindMultiset
)

// DataType is a column type. Name is the canonical SQL name of the kind.
// A MULTISET type carries the schema of the nested result it holds.
type DataType struct {
	Nested *Multiset
	Name   string
	Kind   Kind
}

// Multiset describes a nested result: its row schema and the name of the
// record type built from it.
type Multiset struct {
	Target string
	Schema RowSchema
}

// Canonical data types.
var (
	Varchar   = DataType{Name: "VARCHAR", Kind: KindVarchar}
	Char      = DataType{Name: "CHAR", Kind: KindChar}
	Clob      = DataType{Name: "CLOB", Kind: KindClob}
	Smallint  = DataType{Name: "SMALLINT", Kind: KindSmallint}
	Integer   = DataType{Name: "INTEGER", Kind: KindInteger}
	Bigint    = DataType{Name: "BIGINT", Kind: KindBigint}
	Decimal   = DataType{Name: "DECIMAL", Kind: KindDecimal}
	Double    = DataType{Name: "DOUBLE", Kind: KindDouble}
	Boolean   = DataType{Name: "BOOLEAN", Kind: KindBoolean}
	Date      = DataType{Name: "DATE", Kind: KindDate}
	Time      = DataType{Name: "TIME", Kind: KindTime}
	Timestamp = DataType{Name: "TIMESTAMP", Kind: KindTimestamp}
	Binary    = DataType{Name: "BINARY", Kind: KindBinary}
	UUID      = DataType{Name: "UUID", Kind: KindUUID}
	Other     = DataType{Name: "OTHER", Kind: KindOther}
)

// MultisetOf creates a nested-result type over a schema.
func MultisetOf(schema RowSchema, target string) DataType {
	return DataType{
		Name:   "MULTISET",
		Kind:   KindMultiset,
		Nested: &Multiset{Schema: schema, Target: target},
	}
}

// IsMultiset reports whether values of this type are nested results.
func (t DataType) IsMultiset() bool {
	return t.Kind == KindMultiset && t.Nested != nil
}

// Equal reports whether two types have the same kind and nested shape.
func (t DataType) Equal(o DataType) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.IsMultiset() != o.IsMultiset() {
		return false
	}
	if t.IsMultiset() {
		return t.Nested.Schema.Equal(o.Nested.Schema)
	}
	return true
}

// TypeResolver maps a declared type name to a data type.
type TypeResolver interface {
	ResolveType(name string) DataType
}

// TypeResolverFunc adapts a function to TypeResolver.
type TypeResolverFunc func(name string) DataType

// ResolveType calls f(name).
func (f TypeResolverFunc) ResolveType(name string) DataType {
	return f(name)
}

var typeNames = map[string]DataType{
	"VARCHAR":                     Varchar,
	"VARCHAR2":                    Varchar,
	"NVARCHAR":                    Varchar,
	"CHARACTER VARYING":           Varchar,
	"STRING":                      Varchar,
	"CHAR":                        Char,
	"CHARACTER":                   Char,
	"NCHAR":                       Char,
	"CLOB":                        Clob,
	"NCLOB":                       Clob,
	"TEXT":                        Clob,
	"LONGVARCHAR":                 Clob,
	"TINYINT":                     Smallint,
	"SMALLINT":                    Smallint,
	"INT":                         Integer,
	"INTEGER":                     Integer,
	"BIGINT":                      Bigint,
	"DECIMAL":                     Decimal,
	"NUMERIC":                     Decimal,
	"NUMBER":                      Decimal,
	"DOUBLE":                      Double,
	"DOUBLE PRECISION":            Double,
	"FLOAT":                       Double,
	"REAL":                        Double,
	"BOOLEAN":                     Boolean,
	"BOOL":                        Boolean,
	"DATE":                        Date,
	"TIME":                        Time,
	"TIMESTAMP":                   Timestamp,
	"DATETIME":                    Timestamp,
	"TIMESTAMP WITH TIME ZONE":    Timestamp,
	"TIMESTAMP WITHOUT TIME ZONE": Timestamp,
	"BINARY":                      Binary,
	"VARBINARY":                   Binary,
	"LONGVARBINARY":               Binary,
	"BLOB":                        Binary,
	"BYTEA":                       Binary,
	"UUID":                        UUID,
	"OTHER":                       Other,
}

var typeSuffix = regexp.MustCompile(`\s*\([^)]*\)`)

// NormalizeTypeName upper-cases a declared type, drops length and precision
// suffixes and collapses whitespace: "varchar(20)" becomes "VARCHAR".
func NormalizeTypeName(name string) string {
	name = typeSuffix.ReplaceAllString(name, "")
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}

// LookupType resolves a standard SQL type name.
func LookupType(name string) (DataType, bool) {
	t, ok := typeNames[NormalizeTypeName(name)]
	return t, ok
}

// ResolveType resolves a standard SQL type name, defaulting to VARCHAR for
// blank or unknown names.
func ResolveType(name string) DataType {
	if t, ok := LookupType(name); ok {
		return t
	}
	return Varchar
}

// DefaultResolver resolves standard SQL type names.
var DefaultResolver TypeResolver = TypeResolverFunc(ResolveType)
