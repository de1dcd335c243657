package types

import "fmt"

// Converter maps between the stored representation of a column and the
// value users see. A field with a converter attached may store booleans in
// a non-boolean form.
type Converter interface {
	From(stored any) (any, error)
	To(value any) (any, error)
}

// ConverterFuncs adapts a pair of functions to Converter.
type ConverterFuncs struct {
	FromFunc func(any) (any, error)
	ToFunc   func(any) (any, error)
}

// From converts a stored value.
func (c ConverterFuncs) From(stored any) (any, error) {
	if c.FromFunc == nil {
		return stored, nil
	}
	return c.FromFunc(stored)
}

// To converts a user value back to its stored form.
func (c ConverterFuncs) To(value any) (any, error) {
	if c.ToFunc == nil {
		return value, nil
	}
	return c.ToFunc(value)
}

// Field is a typed column reference.
type Field struct {
	Converter Converter
	Type      DataType
	Catalog   string
	Schema    string
	Table     string
	Name      string
}

// HasConverter reports whether a custom converter is attached.
func (f Field) HasConverter() bool {
	return f.Converter != nil
}

// Qualified returns the column qualifiers in catalog, schema, table, name order,
// omitting empty parts.
func (f Field) Qualified() []string {
	parts := make([]string, 0, 4)
	for _, p := range []string{f.Catalog, f.Schema, f.Table, f.Name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// RowSchema is an ordered list of fields. Names resolve by position; they
// need not be unique.
type RowSchema struct {
	fields []Field
}

// NewRowSchema creates a schema over a copy of fields.
func NewRowSchema(fields ...Field) RowSchema {
	return RowSchema{fields: append([]Field(nil), fields...)}
}

// SyntheticSchema creates n VARCHAR columns named v0, v1, ...
func SyntheticSchema(n int) RowSchema {
	fields := make([]Field, n)
	for i := range fields {
		fields[i] = Field{Name: fmt.Sprintf("v%d", i), Type: Varchar}
	}
	return RowSchema{fields: fields}
}

// Len returns the number of columns.
func (s RowSchema) Len() int {
	return len(s.fields)
}

// Field returns the column at position i.
func (s RowSchema) Field(i int) Field {
	return s.fields[i]
}

// Fields returns a copy of the columns.
func (s RowSchema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Index returns the position of the first column named name, or -1.
func (s RowSchema) Index(name string) int {
	for i, f := range s.fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Equal reports whether both schemas have the same column names and types.
func (s RowSchema) Equal(o RowSchema) bool {
	if len(s.fields) != len(o.fields) {
		return false
	}
	for i := range s.fields {
		if s.fields[i].Name != o.fields[i].Name || !s.fields[i].Type.Equal(o.fields[i].Type) {
			return false
		}
	}
	return true
}

// SameShape reports whether both schemas have the same column count and types.
func (s RowSchema) SameShape(o RowSchema) bool {
	if len(s.fields) != len(o.fields) {
		return false
	}
	for i := range s.fields {
		if !s.fields[i].Type.Equal(o.fields[i].Type) {
			return false
		}
	}
	return true
}
