package read

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/zoobzio/sqlkit/internal/types"
)

// frame is the parse state of one result. The root result has a frame
// and every nested result gets its own frame on top of its parent.
type frame struct {
	builder SchemaBuilder
	result  *types.Result // nil until the schema is resolved
	target  string
	fields  []types.Field
	values  []any
	depth   int
	column  int

	inResult bool
	inFields bool
	inColumn bool
	closed   bool
}

func newFrame(b SchemaBuilder, target string) frame {
	f := frame{builder: b, target: target}
	if b.Explicit != nil {
		f.resolve()
	}
	return f
}

// resolve fixes the frame's schema. Later calls are no-ops.
func (f *frame) resolve() {
	if f.result != nil {
		return
	}
	declared := f.fields
	if onlyValueFields(declared) {
		declared = nil
	}
	schema := f.builder.Resolve(declared, len(f.fields))
	f.result = types.NewNestedResult(&types.Multiset{Schema: schema, Target: f.target})
}

// field returns the column the frame is positioned on.
func (f *frame) field() (types.Field, bool) {
	if f.result != nil {
		schema := f.result.Schema()
		if f.column < schema.Len() {
			return schema.Field(f.column), true
		}
		return types.Field{}, false
	}
	if f.column < len(f.fields) {
		return f.fields[f.column], true
	}
	return types.Field{}, false
}

func (f *frame) finishRecord() error {
	f.depth--
	f.resolve()
	rec, err := types.NewRecord(f.result.Schema(), f.values)
	if err != nil {
		return fmt.Errorf("record %d: %w", f.result.Len(), err)
	}
	if err := f.result.Append(rec); err != nil {
		return fmt.Errorf("record %d: %w", f.result.Len(), err)
	}
	f.values = nil
	f.column = 0
	return nil
}

// onlyValueFields reports whether implicit columns were all anonymous
// <value> elements, in which case columns are named by position.
func onlyValueFields(fields []types.Field) bool {
	if len(fields) <= 1 {
		return false
	}
	for _, f := range fields {
		if f.Name != "value" {
			return false
		}
	}
	return true
}

// handler receives parse events in document order. Its frames slice is
// the nesting stack; the last element is the active frame.
type handler struct {
	frames []frame
}

func newHandler(b SchemaBuilder) *handler {
	return &handler{frames: []frame{newFrame(b, "")}}
}

func (h *handler) top() *frame {
	return &h.frames[len(h.frames)-1]
}

func (h *handler) parent() *frame {
	if len(h.frames) < 2 {
		return nil
	}
	return &h.frames[len(h.frames)-2]
}

func (h *handler) startElement(name string, attrs []xml.Attr) error {
	f := h.top()

	switch {
	case name == "result" && !f.inResult:
		if f.closed {
			return structuralf(formatXML, "unexpected <result> after the result was closed")
		}
		f.inResult = true
		return nil
	case name == "result" && f.inColumn:
		return h.pushNested()
	case name == "result":
		return structuralf(formatXML, "<result> is only allowed as the document element or inside a column")
	case !f.inResult:
		return structuralf(formatXML, "unexpected <%s> outside <result>", name)
	case f.inColumn:
		return structuralf(formatXML, "unexpected <%s> inside a column", name)
	case name == "fields" && f.depth == 0:
		f.inFields = true
	case f.inFields:
		if name != "field" {
			return structuralf(formatXML, "unexpected <%s> inside <fields>", name)
		}
		f.fields = append(f.fields, f.builder.Declare(FieldMeta{
			Catalog: attr(attrs, "catalog"),
			Schema:  attr(attrs, "schema"),
			Table:   attr(attrs, "table"),
			Name:    attr(attrs, "name"),
			Type:    attr(attrs, "type"),
		}))
	case name == "records" && f.depth == 0:
	case name == "record" && f.depth == 0:
		f.depth++
	default:
		if f.depth == 0 {
			return structuralf(formatXML, "column <%s> outside <record>", name)
		}
		if f.result == nil {
			fieldName := name
			if name == "value" && hasAttr(attrs, "field") {
				fieldName = attr(attrs, "field")
			}
			f.fields = append(f.fields, types.Field{Name: fieldName, Type: types.Varchar})
		}
		f.inColumn = true
		for len(f.values) <= f.column {
			f.values = append(f.values, nil)
		}
	}
	return nil
}

// pushNested starts a child frame for a <result> inside a multiset column.
func (h *handler) pushNested() error {
	f := h.top()
	col, ok := f.field()
	if !ok || !col.Type.IsMultiset() {
		return UnsupportedNestingError{Column: col.Name, Type: col.Type.Name}
	}
	if f.values[f.column] != nil {
		return structuralf(formatXML, "column %q holds more than one result", col.Name)
	}
	child := newFrame(f.builder.Nested(col.Type.Nested), col.Type.Nested.Target)
	child.inResult = true
	h.frames = append(h.frames, child)
	return nil
}

func (h *handler) endElement(name string) error {
	f := h.top()

	switch {
	case name == "result" && f.inResult && f.depth == 0:
		f.inResult = false
		f.closed = true
		f.resolve()
		return nil
	case name == "fields" && f.inFields:
		f.inFields = false
		f.resolve()
		return nil
	case name == "field" && f.inFields:
		return nil
	case name == "records" && f.depth == 0:
		return nil
	case name == "record" && f.depth > 0 && !f.inColumn:
		return f.finishRecord()
	}

	// A finished child result is closed by its enclosing column element.
	if p := h.parent(); p != nil && f.closed {
		p.values[p.column] = f.result
		h.frames = h.frames[:len(h.frames)-1]
		f = h.top()
	}
	if !f.inColumn {
		return structuralf(formatXML, "unexpected </%s>", name)
	}
	f.inColumn = false
	f.column++
	return nil
}

func (h *handler) characters(text string) error {
	f := h.top()
	if !f.inResult && strings.TrimSpace(text) != "" {
		if f.closed {
			return structuralf(formatXML, "unexpected content after </result>")
		}
		return structuralf(formatXML, "unexpected content outside <result>")
	}
	if !f.inColumn {
		return nil
	}
	if col, ok := f.field(); ok && col.Type.IsMultiset() {
		return nil
	}
	switch v := f.values[f.column].(type) {
	case nil:
		f.values[f.column] = text
	case string:
		f.values[f.column] = v + text
	}
	return nil
}

func (h *handler) finish() (*types.Result, error) {
	if len(h.frames) != 1 || !h.frames[0].closed {
		return nil, structuralf(formatXML, "document has no complete <result> element")
	}
	return h.frames[0].result, nil
}

func attr(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func hasAttr(attrs []xml.Attr, name string) bool {
	for _, a := range attrs {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}
