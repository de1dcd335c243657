package read

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/zoobzio/sqlkit/internal/types"
)

type jsonResult struct {
	Fields  []FieldMeta `json:"fields"`
	Records [][]any     `json:"records"`
}

// FormatJSON writes res in the document form ReadJSON accepts. Records are
// written as arrays and binary values as base64 text.
func FormatJSON(w io.Writer, res *types.Result) error {
	doc, err := jsonDocument(res)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(doc)
}

func jsonDocument(res *types.Result) (jsonResult, error) {
	schema := res.Schema()
	doc := jsonResult{Fields: Metadata(schema), Records: make([][]any, 0, res.Len())}
	for _, rec := range res.Records() {
		row := make([]any, rec.Len())
		for i := range row {
			v, err := stored(schema.Field(i), rec.Get(i))
			if err != nil {
				return jsonResult{}, err
			}
			switch x := v.(type) {
			case nil, bool, string, int16, int32, int64, float64, json.Number:
				row[i] = x
			case types.DecimalString:
				row[i] = json.Number(x)
			case *types.Result:
				if row[i], err = jsonDocument(x); err != nil {
					return jsonResult{}, err
				}
			default:
				if row[i], err = schema.Field(i).Type.Format(x); err != nil {
					return jsonResult{}, err
				}
			}
		}
		doc.Records = append(doc.Records, row)
	}
	return doc, nil
}

// stored maps a record value back through the field's converter.
func stored(f types.Field, v any) (any, error) {
	if f.Converter == nil || v == nil {
		return v, nil
	}
	s, err := f.Converter.To(v)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", f.Name, err)
	}
	return s, nil
}

// FormatXML writes res in the document form ReadXML accepts. Values are
// written as <value field="..."> elements; NULL is an empty element.
// An empty string is written the same way, so it reads back as NULL.
func FormatXML(w io.Writer, res *types.Result) error {
	enc := xml.NewEncoder(w)
	if err := encodeResult(enc, res); err != nil {
		return err
	}
	return enc.Flush()
}

func encodeResult(enc *xml.Encoder, res *types.Result) error {
	schema := res.Schema()
	result := element("result")
	fields := element("fields")
	records := element("records")
	record := element("record")

	if err := enc.EncodeToken(result); err != nil {
		return err
	}
	if err := enc.EncodeToken(fields); err != nil {
		return err
	}
	for _, m := range Metadata(schema) {
		field := element("field")
		for _, a := range []xml.Attr{
			{Name: xml.Name{Local: "catalog"}, Value: m.Catalog},
			{Name: xml.Name{Local: "schema"}, Value: m.Schema},
			{Name: xml.Name{Local: "table"}, Value: m.Table},
			{Name: xml.Name{Local: "name"}, Value: m.Name},
			{Name: xml.Name{Local: "type"}, Value: m.Type},
		} {
			if a.Value != "" || a.Name.Local == "name" {
				field.Attr = append(field.Attr, a)
			}
		}
		if err := encodeTokens(enc, field, field.End()); err != nil {
			return err
		}
	}
	if err := encodeTokens(enc, fields.End(), records); err != nil {
		return err
	}

	for _, rec := range res.Records() {
		if err := enc.EncodeToken(record); err != nil {
			return err
		}
		for i := 0; i < rec.Len(); i++ {
			f := schema.Field(i)
			value := element("value")
			value.Attr = []xml.Attr{{Name: xml.Name{Local: "field"}, Value: f.Name}}
			if err := enc.EncodeToken(value); err != nil {
				return err
			}
			v, err := stored(f, rec.Get(i))
			if err != nil {
				return err
			}
			switch x := v.(type) {
			case nil:
			case *types.Result:
				if err := encodeResult(enc, x); err != nil {
					return err
				}
			default:
				text, err := f.Type.Format(x)
				if err != nil {
					return err
				}
				if err := enc.EncodeToken(xml.CharData(text)); err != nil {
					return err
				}
			}
			if err := enc.EncodeToken(value.End()); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(record.End()); err != nil {
			return err
		}
	}
	return encodeTokens(enc, records.End(), result.End())
}

func element(name string) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}}
}

func encodeTokens(enc *xml.Encoder, tokens ...xml.Token) error {
	for _, t := range tokens {
		if err := enc.EncodeToken(t); err != nil {
			return err
		}
	}
	return nil
}
