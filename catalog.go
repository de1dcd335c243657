package sqlkit

import (
	"fmt"
	"sort"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/sqlkit/internal/types"
)

// Catalog describes the tables of a DBML project as row schemas.
type Catalog struct {
	project  *dbml.Project
	resolver types.TypeResolver
	// Internal indexes for fast lookup
	tables map[string]*dbml.Table
}

// CatalogOption configures NewCatalog.
type CatalogOption func(*Catalog)

// WithCatalogResolver resolves column types with r instead of the standard
// SQL type names.
func WithCatalogResolver(r TypeResolver) CatalogOption {
	return func(c *Catalog) {
		c.resolver = r
	}
}

// NewCatalog creates a catalog from a DBML project.
func NewCatalog(project *dbml.Project, opts ...CatalogOption) (*Catalog, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	c := &Catalog{
		project:  project,
		resolver: types.DefaultResolver,
		tables:   make(map[string]*dbml.Table),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, table := range project.Tables {
		c.tables[table.Name] = table
	}
	return c, nil
}

func (c *Catalog) table(name string) (*dbml.Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("table '%s' not found in schema", name)
	}
	return t, nil
}

// TrySchema returns the row schema of a table, returning an error if the
// table is unknown.
func (c *Catalog) TrySchema(table string) (types.RowSchema, error) {
	t, err := c.table(table)
	if err != nil {
		return types.RowSchema{}, fmt.Errorf("invalid table: %w", err)
	}
	fields := make([]types.Field, 0, len(t.Columns))
	for _, col := range t.Columns {
		fields = append(fields, c.field(t, col))
	}
	return types.NewRowSchema(fields...), nil
}

// Schema returns the row schema of a table.
func (c *Catalog) Schema(table string) types.RowSchema {
	s, err := c.TrySchema(table)
	if err != nil {
		panic(err)
	}
	return s
}

// TryField returns a typed, table-qualified column reference, returning an
// error if the table or column is unknown.
func (c *Catalog) TryField(table, column string) (types.Field, error) {
	t, err := c.table(table)
	if err != nil {
		return types.Field{}, fmt.Errorf("invalid field: %w", err)
	}
	for _, col := range t.Columns {
		if col.Name == column {
			return c.field(t, col), nil
		}
	}
	return types.Field{}, fmt.Errorf("invalid field: column '%s' not found in table '%s'", column, table)
}

// F returns a typed, table-qualified column reference.
func (c *Catalog) F(table, column string) types.Field {
	f, err := c.TryField(table, column)
	if err != nil {
		panic(err)
	}
	return f
}

func (c *Catalog) field(t *dbml.Table, col *dbml.Column) types.Field {
	return types.Field{
		Table: t.Name,
		Name:  col.Name,
		Type:  c.resolver.ResolveType(col.Type),
	}
}

// TrySequence starts a CREATE SEQUENCE statement, returning an error if the
// name is not a valid identifier or collides with a table.
func (c *Catalog) TrySequence(name string) (*Builder, error) {
	b := CreateSequence(name)
	if b.err != nil {
		return nil, b.err
	}
	if _, ok := c.tables[b.stmt.Sequence.Object]; ok {
		return nil, fmt.Errorf("sequence '%s' collides with a table of the same name", name)
	}
	return b, nil
}

// Sequence starts a CREATE SEQUENCE statement.
func (c *Catalog) Sequence(name string) *Builder {
	b, err := c.TrySequence(name)
	if err != nil {
		panic(err)
	}
	return b
}

// Tables returns the names of the catalog's tables in sorted order.
func (c *Catalog) Tables() []string {
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
