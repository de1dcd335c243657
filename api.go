// Package sqlkit renders dialect-correct DDL and materializes typed results
// from serialized documents.
//
// # Rendering
//
// Statements are built fluently and rendered for a target dialect. Dialect
// differences come from a capability table rather than from the statement:
//
//	r := sqlkit.MustRenderer(sqlkit.Postgres)
//
//	result, err := sqlkit.CreateSequence("public.order_id").
//		IfNotExists().
//		StartWith(1000).
//		NoCycle().
//		Render(r)
//	// result.SQL: CREATE SEQUENCE IF NOT EXISTS "public"."order_id" START WITH 1000 NO CYCLE
//
// Dialects without IF NOT EXISTS get the unconditional statement and a
// non-nil result.Guard; the guard package executes such statements and
// ignores the "already exists" failure.
//
// # Conditions
//
// Boolean columns used as predicates are rewritten per dialect:
//
//	active := sqlkit.Field{Name: "active", Type: sqlkit.Boolean}
//	result, err := r.RenderCondition(sqlkit.BoolField(active))
//	// PostgreSQL: "active"    SQL Server: [active] = 1
//
// # Results
//
// ReadJSON and ReadXML rebuild a Result from the documents FormatJSON and
// FormatXML write. Columns of a MULTISET type hold nested results.
//
//	res, err := sqlkit.ReadJSON(strings.NewReader(
//		`{"fields":[{"name":"A","type":"INTEGER"}],"records":[[1]]}`))
//	// res.Record(0).Get(0) == int32(1)
//
// # Schema-Validated Usage
//
// A Catalog built from a DBML project supplies row schemas and typed fields:
//
//	catalog, err := sqlkit.NewCatalog(project)
//	res, err := sqlkit.ReadJSON(doc, sqlkit.WithSchema(catalog.Schema("users")))
package sqlkit

import (
	"github.com/zoobzio/sqlkit/internal/read"
	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Dialect identifies a target SQL dialect.
type Dialect = types.Dialect

// Re-export dialect constants for public API.
const (
	Cubrid     = types.Cubrid
	Derby      = types.Derby
	DuckDB     = types.DuckDB
	Firebird   = types.Firebird
	H2         = types.H2
	HSQLDB     = types.HSQLDB
	Ignite     = types.Ignite
	MariaDB    = types.MariaDB
	MySQL      = types.MySQL
	Oracle     = types.Oracle
	Postgres   = types.Postgres
	Snowflake  = types.Snowflake
	SQLite     = types.SQLite
	SQLServer  = types.SQLServer
	Trino      = types.Trino
	YugabyteDB = types.YugabyteDB
)

// Dialects returns every supported dialect in a stable order.
func Dialects() []Dialect {
	return types.Dialects()
}

// ParseDialect resolves a dialect name or alias such as "pg" or "mssql".
func ParseDialect(name string) (Dialect, error) {
	return types.ParseDialect(name)
}

// QueryResult contains the rendered SQL and, for emulated conditional
// creation, the guard to execute it with.
type QueryResult = types.QueryResult

// Guard describes an error class to ignore when executing a statement.
type Guard = types.Guard

// ErrorClass names a family of database errors.
type ErrorClass = types.ErrorClass

// ErrAlreadyExists is the error class of creating an object that exists.
const ErrAlreadyExists = types.ErrAlreadyExists

// Name is a possibly qualified object name.
type Name = types.Name

// Statement is a CREATE SEQUENCE statement node.
type Statement = types.CreateSequence

// Clause labels the statement boundaries reported to a Listener.
type Clause = types.Clause

// Re-export clause constants for public API.
const (
	ClauseCreateSequence = types.ClauseCreateSequence
	ClauseCondition      = types.ClauseCondition
)

// Listener receives clause boundaries while a statement renders.
type Listener = render.Listener

// ListenerFuncs adapts a pair of functions to Listener.
type ListenerFuncs = render.ListenerFuncs

// Capabilities describes the SQL features and quirks of a dialect.
type Capabilities = render.Capabilities

// CapabilityTable maps each dialect to its capabilities.
type CapabilityTable = render.Table

// UnsupportedFeatureError indicates a feature not supported by the dialect.
type UnsupportedFeatureError = render.UnsupportedFeatureError

// InvalidStatementError reports a statement that cannot be rendered.
type InvalidStatementError = render.InvalidStatementError

// Operator represents SQL comparison operators.
type Operator = types.Operator

// Re-export operator constants for public API.
const (
	EQ = types.EQ
	NE = types.NE
	GT = types.GT
	GE = types.GE
	LT = types.LT
	LE = types.LE
)

// ConditionItem represents either a single condition or a group of conditions.
type ConditionItem = types.ConditionItem

// Condition compares a field with a constant.
type Condition = types.Condition

// FieldCondition uses a boolean field as a predicate.
type FieldCondition = types.FieldCondition

// ConditionGroup combines conditions with AND or OR.
type ConditionGroup = types.ConditionGroup

// Field is a typed column reference.
type Field = types.Field

// Converter maps between stored and user-facing column values.
type Converter = types.Converter

// ConverterFuncs adapts a pair of functions to Converter.
type ConverterFuncs = types.ConverterFuncs

// RowSchema is an ordered list of fields.
type RowSchema = types.RowSchema

// Record is one row of typed values.
type Record = types.Record

// Result is an ordered list of records sharing one schema.
type Result = types.Result

// DataType is a column type.
type DataType = types.DataType

// Kind is the storage class of a data type.
type Kind = types.Kind

// Multiset describes the nested result held by a MULTISET column.
type Multiset = types.Multiset

// DecimalString is an exact numeric value in decimal text form.
type DecimalString = types.DecimalString

// TypeResolver maps a declared type name to a data type.
type TypeResolver = types.TypeResolver

// TypeResolverFunc adapts a function to TypeResolver.
type TypeResolverFunc = types.TypeResolverFunc

// Canonical data types.
var (
	Varchar   = types.Varchar
	Char      = types.Char
	Clob      = types.Clob
	Smallint  = types.Smallint
	Integer   = types.Integer
	Bigint    = types.Bigint
	Decimal   = types.Decimal
	Double    = types.Double
	Boolean   = types.Boolean
	Date      = types.Date
	Time      = types.Time
	Timestamp = types.Timestamp
	Binary    = types.Binary
	UUID      = types.UUID
	Other     = types.Other
)

// NewRowSchema creates a schema from fields in column order.
func NewRowSchema(fields ...Field) RowSchema {
	return types.NewRowSchema(fields...)
}

// MultisetOf creates a nested-result type whose records are named target.
func MultisetOf(schema RowSchema, target string) DataType {
	return types.MultisetOf(schema, target)
}

// NewRecord converts raw values against schema.
func NewRecord(schema RowSchema, raw ...any) (Record, error) {
	return types.NewRecord(schema, raw)
}

// NewResult creates an empty result.
func NewResult(schema RowSchema) *Result {
	return types.NewResult(schema)
}

// ResolveType resolves a standard SQL type name, defaulting to VARCHAR.
func ResolveType(name string) DataType {
	return types.ResolveType(name)
}

// FieldMeta is a column as declared inside a serialized result.
type FieldMeta = read.FieldMeta

// Metadata describes a schema's columns as they are serialized.
func Metadata(schema RowSchema) []FieldMeta {
	return read.Metadata(schema)
}

// Hardening is a named XML parser setting applied before a read.
type Hardening = read.Hardening

// XMLDecoder is the token source the hardening options configure.
type XMLDecoder = read.Decoder

// DefaultHardening returns the XML hardening applied when none is given.
func DefaultHardening() []Hardening {
	return read.DefaultHardening()
}

// StructuralParseError reports a malformed result document.
type StructuralParseError = read.StructuralParseError

// UnsupportedNestingError reports a nested result in a non-MULTISET column.
type UnsupportedNestingError = read.UnsupportedNestingError

// DataAccessError is the error returned by the read entry points.
type DataAccessError = read.DataAccessError
