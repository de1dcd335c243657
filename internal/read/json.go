package read

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/zoobzio/sqlkit/internal/types"
)

const formatJSON = "JSON"

// ReadJSON materializes a result from a JSON document. The document is an
// object with "fields" and "records" members, or a bare array of records.
// Each record is an object keyed by column name or an array of values in
// column order. Binary columns take base64 text.
func ReadJSON(r io.Reader, opts Options) (*types.Result, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	root, err := decodeDocument(dec)
	if err != nil {
		return nil, boundary(formatJSON, err)
	}
	result, err := materialize(opts.builder(), "", root)
	if err != nil {
		return nil, boundary(formatJSON, err)
	}
	opts.logger().Debug("read result", "format", formatJSON, "records", result.Len())
	return result, nil
}

// object is a JSON object that keeps its member order.
type object struct {
	values map[string]any
	keys   []string
}

func (o *object) get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func decodeDocument(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty document")
	}
	if err != nil {
		return nil, err
	}
	root, err := decodeToken(dec, tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("unexpected data after document")
	}
	return root, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, unexpectedEOF(err)
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (any, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		o := &object{values: map[string]any{}}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, unexpectedEOF(err)
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", kt)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			if _, dup := o.values[key]; !dup {
				o.keys = append(o.keys, key)
			}
			o.values[key] = v
		}
		return o, closeDelim(dec, '}')
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, closeDelim(dec, ']')
	default:
		return nil, fmt.Errorf("unexpected %q", rune(delim))
	}
}

func closeDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return unexpectedEOF(err)
	}
	if tok != want {
		return fmt.Errorf("expected %q, got %v", rune(want), tok)
	}
	return nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// materialize builds a result from a decoded document or nested value.
func materialize(b SchemaBuilder, target string, root any) (*types.Result, error) {
	var declared []types.Field
	var records []any

	switch doc := root.(type) {
	case *object:
		fields, err := fieldMetas(doc)
		if err != nil {
			return nil, err
		}
		for _, m := range fields {
			declared = append(declared, b.Declare(m))
		}
		if v, ok := doc.get("records"); ok && v != nil {
			if records, ok = v.([]any); !ok {
				return nil, errors.New(`"records" is not an array`)
			}
		}
	case []any:
		records = doc
	default:
		return nil, fmt.Errorf("expected an object or an array, got %s", describe(root))
	}

	var result *types.Result
	newResult := func(schema types.RowSchema) {
		result = types.NewNestedResult(&types.Multiset{Schema: schema, Target: target})
	}
	if b.Explicit != nil || len(declared) > 0 {
		newResult(b.Resolve(declared, 0))
	}

	for i, rec := range records {
		var raw []any
		switch row := rec.(type) {
		case *object:
			if result == nil {
				header := make([]types.Field, len(row.keys))
				for j, k := range row.keys {
					header[j] = types.Field{Name: k, Type: types.Varchar}
				}
				newResult(b.Resolve(header, len(header)))
			}
			schema := result.Schema()
			raw = make([]any, schema.Len())
			for j := range raw {
				raw[j], _ = row.get(schema.Field(j).Name)
			}
		case []any:
			if result == nil {
				newResult(b.Resolve(nil, len(row)))
			}
			raw = append([]any(nil), row...)
		default:
			return nil, fmt.Errorf("record %d: expected an object or an array, got %s", i, describe(rec))
		}

		if err := nestedValues(b, result.Schema(), raw); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		record, err := types.NewRecord(result.Schema(), raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if err := result.Append(record); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	if result == nil {
		newResult(b.Resolve(nil, 0))
	}
	return result, nil
}

// nestedValues replaces raw values in place: multiset columns become
// nested results and other containers become plain Go maps and slices.
func nestedValues(b SchemaBuilder, schema types.RowSchema, raw []any) error {
	if len(raw) != schema.Len() {
		// NewRecord reports the width mismatch.
		return nil
	}
	for i, v := range raw {
		f := schema.Field(i)
		if !f.Type.IsMultiset() {
			raw[i] = plain(v)
			continue
		}
		if v == nil {
			continue
		}
		nested, err := materialize(b.Nested(f.Type.Nested), f.Type.Nested.Target, v)
		if err != nil {
			return fmt.Errorf("column %d (%s): %w", i, f.Name, err)
		}
		raw[i] = nested
	}
	return nil
}

func plain(v any) any {
	switch x := v.(type) {
	case *object:
		m := make(map[string]any, len(x.values))
		for k, e := range x.values {
			m[k] = plain(e)
		}
		return m
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

func fieldMetas(doc *object) ([]FieldMeta, error) {
	v, ok := doc.get("fields")
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, errors.New(`"fields" is not an array`)
	}
	metas := make([]FieldMeta, len(list))
	for i, item := range list {
		o, ok := item.(*object)
		if !ok {
			return nil, fmt.Errorf("field %d: expected an object, got %s", i, describe(item))
		}
		for _, attr := range []struct {
			dst  *string
			name string
		}{
			{&metas[i].Catalog, "catalog"},
			{&metas[i].Schema, "schema"},
			{&metas[i].Table, "table"},
			{&metas[i].Name, "name"},
			{&metas[i].Type, "type"},
		} {
			raw, ok := o.get(attr.name)
			if !ok || raw == nil {
				continue
			}
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("field %d: %q is not a string", i, attr.name)
			}
			*attr.dst = s
		}
	}
	return metas, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *object:
		return "an object"
	case []any:
		return "an array"
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
