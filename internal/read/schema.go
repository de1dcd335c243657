package read

import (
	"io"
	"log/slog"
	"strings"

	"github.com/zoobzio/sqlkit/internal/types"
)

// FieldMeta is a column as declared inside a serialized result.
type FieldMeta struct {
	Catalog string `json:"catalog,omitempty"`
	Schema  string `json:"schema,omitempty"`
	Table   string `json:"table,omitempty"`
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
}

// SchemaBuilder resolves the effective row schema of a result. Resolution
// order is the explicit schema, then declared fields, then synthetic
// columns derived from the width of the first record.
type SchemaBuilder struct {
	Explicit *types.RowSchema
	Resolver types.TypeResolver
}

// Declare turns declared metadata into a field. A blank type is VARCHAR.
func (b SchemaBuilder) Declare(m FieldMeta) types.Field {
	name := strings.TrimSpace(m.Type)
	if name == "" {
		name = types.Varchar.Name
	}
	resolver := b.Resolver
	if resolver == nil {
		resolver = types.DefaultResolver
	}
	return types.Field{
		Catalog: m.Catalog,
		Schema:  m.Schema,
		Table:   m.Table,
		Name:    m.Name,
		Type:    resolver.ResolveType(name),
	}
}

// Resolve returns the schema for a result.
func (b SchemaBuilder) Resolve(declared []types.Field, width int) types.RowSchema {
	switch {
	case b.Explicit != nil:
		return *b.Explicit
	case len(declared) > 0:
		return types.NewRowSchema(declared...)
	default:
		return types.SyntheticSchema(width)
	}
}

// Nested returns the builder for a nested result of type m. A multiset
// with an empty schema lets the nested document declare its own.
func (b SchemaBuilder) Nested(m *types.Multiset) SchemaBuilder {
	child := SchemaBuilder{Resolver: b.Resolver}
	if m.Schema.Len() > 0 {
		schema := m.Schema
		child.Explicit = &schema
	}
	return child
}

// Metadata describes a schema the way documents declare it.
func Metadata(schema types.RowSchema) []FieldMeta {
	metas := make([]FieldMeta, schema.Len())
	for i, f := range schema.Fields() {
		metas[i] = FieldMeta{
			Catalog: f.Catalog,
			Schema:  f.Schema,
			Table:   f.Table,
			Name:    f.Name,
			Type:    f.Type.Name,
		}
	}
	return metas
}

// Options configures a read.
type Options struct {
	Schema    *types.RowSchema
	Resolver  types.TypeResolver
	Logger    *slog.Logger
	Hardening []Hardening
}

func (o Options) builder() SchemaBuilder {
	return SchemaBuilder{Explicit: o.Schema, Resolver: o.Resolver}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o Options) hardening() []Hardening {
	if o.Hardening == nil {
		return DefaultHardening()
	}
	return o.Hardening
}

// Reader parses one serialized result format.
type Reader func(r io.Reader, opts Options) (*types.Result, error)
