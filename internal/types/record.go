package types

import (
	"bytes"
	"fmt"
	"reflect"
	"time"
)

// Record is one row of typed values conforming to a RowSchema.
type Record struct {
	schema RowSchema
	values []any
}

// NewRecord converts raw values against schema and returns the finished
// record. No partially built record is ever returned.
func NewRecord(schema RowSchema, raw []any) (Record, error) {
	if len(raw) != schema.Len() {
		return Record{}, fmt.Errorf("record has %d values, schema has %d columns", len(raw), schema.Len())
	}
	values := make([]any, len(raw))
	for i, r := range raw {
		f := schema.Field(i)
		v, err := f.Type.Convert(r)
		if err != nil {
			return Record{}, fmt.Errorf("column %d (%s): %w", i, f.Name, err)
		}
		if f.Converter != nil && v != nil {
			if v, err = f.Converter.From(v); err != nil {
				return Record{}, fmt.Errorf("column %d (%s): %w", i, f.Name, err)
			}
		}
		values[i] = v
	}
	return Record{schema: schema, values: values}, nil
}

// Schema returns the record's schema.
func (r Record) Schema() RowSchema {
	return r.schema
}

// Len returns the number of values.
func (r Record) Len() int {
	return len(r.values)
}

// Get returns the value at position i.
func (r Record) Get(i int) any {
	return r.values[i]
}

// Value returns the value of the first column named name.
func (r Record) Value(name string) (any, bool) {
	i := r.schema.Index(name)
	if i < 0 {
		return nil, false
	}
	return r.values[i], true
}

// Values returns a copy of the values.
func (r Record) Values() []any {
	return append([]any(nil), r.values...)
}

// Equal reports whether both records hold equal values under equal schemas.
func (r Record) Equal(o Record) bool {
	if !r.schema.Equal(o.schema) || len(r.values) != len(o.values) {
		return false
	}
	for i := range r.values {
		if !valueEqual(r.values[i], o.values[i]) {
			return false
		}
	}
	return true
}

// Result is an ordered list of records sharing one schema.
type Result struct {
	schema  RowSchema
	target  string
	records []Record
}

// NewResult creates an empty result. The schema is fixed for its lifetime.
func NewResult(schema RowSchema) *Result {
	return &Result{schema: schema}
}

// NewNestedResult creates an empty result for a multiset type.
func NewNestedResult(m *Multiset) *Result {
	return &Result{schema: m.Schema, target: m.Target}
}

// Append adds a record. The record must have the result's shape.
func (r *Result) Append(rec Record) error {
	if !r.schema.SameShape(rec.schema) {
		return fmt.Errorf("record shape does not match result schema")
	}
	r.records = append(r.records, rec)
	return nil
}

// Schema returns the result's schema.
func (r *Result) Schema() RowSchema {
	return r.schema
}

// Target returns the record type name of a nested result, if any.
func (r *Result) Target() string {
	return r.target
}

// Len returns the number of records.
func (r *Result) Len() int {
	return len(r.records)
}

// Record returns the record at position i.
func (r *Result) Record(i int) Record {
	return r.records[i]
}

// Records returns a copy of the records.
func (r *Result) Records() []Record {
	return append([]Record(nil), r.records...)
}

// Equal reports whether both results have equal schemas and records.
func (r *Result) Equal(o *Result) bool {
	if r == nil || o == nil {
		return r == o
	}
	if !r.schema.Equal(o.schema) || len(r.records) != len(o.records) {
		return false
	}
	for i := range r.records {
		if !r.records[i].Equal(o.records[i]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case *Result:
		y, ok := b.(*Result)
		return ok && x.Equal(y)
	default:
		return reflect.DeepEqual(a, b)
	}
}
