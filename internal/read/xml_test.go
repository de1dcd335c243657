package read

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sqlkit/internal/types"
)

func readXML(t *testing.T, doc string, opts Options) *types.Result {
	t.Helper()
	res, err := ReadXML(strings.NewReader(doc), opts)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestReadXML_DeclaredFields(t *testing.T) {
	doc := `<result><fields><field name="A" type="INTEGER"/></fields><records><record><A>1</A></record></records></result>`
	res := readXML(t, doc, Options{})

	require.Equal(t, 1, res.Len())
	assert.Equal(t, types.KindInteger, res.Schema().Field(0).Type.Kind)
	assert.Equal(t, int32(1), res.Record(0).Get(0))

	fromJSON := readJSON(t, `{"fields":[{"name":"A","type":"INTEGER"}],"records":[[1]]}`, Options{})
	assert.True(t, fromJSON.Equal(res), "XML and JSON results differ")
}

func TestReadXML_Namespaced(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<result xmlns="http://www.jooq.org/xsd/jooq-export-3.10.0.xsd">
  <fields>
    <field schema="public" table="t" name="id" type="BIGINT"/>
  </fields>
  <records>
    <record><value field="id">10</value></record>
    <record><value field="id">20</value></record>
  </records>
</result>`
	res := readXML(t, doc, Options{})

	require.Equal(t, 2, res.Len())
	assert.Equal(t, []string{"public", "t", "id"}, res.Schema().Field(0).Qualified())
	assert.Equal(t, int64(20), res.Record(1).Get(0))
}

func TestReadXML_ImplicitColumns(t *testing.T) {
	doc := `<result><records>
		<record><id>1</id><name>alice</name></record>
		<record><id>2</id><name>bob</name></record>
	</records></result>`
	res := readXML(t, doc, Options{})

	require.Equal(t, 2, res.Schema().Len())
	assert.Equal(t, "id", res.Schema().Field(0).Name)
	assert.Equal(t, "name", res.Schema().Field(1).Name)
	assert.Equal(t, types.KindVarchar, res.Schema().Field(0).Type.Kind)
	assert.Equal(t, "bob", res.Record(1).Get(1))
}

func TestReadXML_ValueElements(t *testing.T) {
	t.Run("named by field attribute", func(t *testing.T) {
		res := readXML(t, `<result><records><record><value field="a">1</value><value field="b">2</value></record></records></result>`, Options{})
		assert.Equal(t, "a", res.Schema().Field(0).Name)
		assert.Equal(t, "b", res.Schema().Field(1).Name)
	})

	t.Run("anonymous values are positional", func(t *testing.T) {
		res := readXML(t, `<result><records><record><value>1</value><value>2</value></record></records></result>`, Options{})
		assert.Equal(t, "v0", res.Schema().Field(0).Name)
		assert.Equal(t, "v1", res.Schema().Field(1).Name)
		assert.Equal(t, "2", res.Record(0).Get(1))
	})

	t.Run("single anonymous value keeps its name", func(t *testing.T) {
		res := readXML(t, `<result><records><record><value>1</value></record></records></result>`, Options{})
		assert.Equal(t, "value", res.Schema().Field(0).Name)
	})
}

func TestReadXML_Text(t *testing.T) {
	doc := `<result><fields><field name="s"/><field name="n" type="INTEGER"/></fields><records>
		<record><s>ab<!-- split -->cd<![CDATA[<ef>]]>&amp;</s><n/></record>
	</records></result>`
	res := readXML(t, doc, Options{})

	assert.Equal(t, "abcd<ef>&", res.Record(0).Get(0))
	assert.Nil(t, res.Record(0).Get(1))
}

func TestReadXML_ExplicitSchema(t *testing.T) {
	schema := types.NewRowSchema(types.Field{Name: "flag", Type: types.Boolean})
	res := readXML(t, `<result><records><record><x>true</x></record></records></result>`, Options{Schema: &schema})

	assert.True(t, res.Schema().Equal(schema))
	assert.Equal(t, true, res.Record(0).Get(0))
}

func TestReadXML_CustomResolver(t *testing.T) {
	resolver := types.TypeResolverFunc(func(name string) types.DataType {
		if types.NormalizeTypeName(name) == "YESNO" {
			return types.Boolean
		}
		return types.ResolveType(name)
	})
	res := readXML(t, `<result><fields><field name="f" type="yesno"/></fields><records><record><f>1</f></record></records></result>`, Options{Resolver: resolver})

	assert.Equal(t, true, res.Record(0).Get(0))
}

func nestedSchemas() (types.RowSchema, types.RowSchema) {
	item := types.NewRowSchema(types.Field{Name: "x", Type: types.Integer})
	order := types.NewRowSchema(
		types.Field{Name: "id", Type: types.Integer},
		types.Field{Name: "items", Type: types.MultisetOf(item, "Item")},
		types.Field{Name: "note", Type: types.Varchar},
	)
	return item, order
}

func TestReadXML_Nested(t *testing.T) {
	item, order := nestedSchemas()
	inner1 := `<result><fields><field name="x" type="INTEGER"/></fields><records><record><x>10</x></record><record><x>20</x></record></records></result>`
	inner2 := `<result><records><record><x>30</x></record></records></result>`
	doc := `<result>
	<fields><field name="id" type="INTEGER"/><field name="items" type="MULTISET"/><field name="note"/></fields>
	<records>
		<record><id>1</id><items>` + inner1 + `</items><note>first</note></record>
		<record><id>2</id><items>` + inner2 + `</items><note>second</note></record>
		<record><id>3</id><items><result/></items><note/></record>
		<record><id>4</id><items/><note>none</note></record>
	</records>
</result>`

	res := readXML(t, doc, Options{Schema: &order})
	require.Equal(t, 4, res.Len())

	for i, inner := range []string{inner1, inner2} {
		got, ok := res.Record(i).Get(1).(*types.Result)
		require.True(t, ok, "record %d", i)
		want := readXML(t, inner, Options{Schema: &item})
		assert.True(t, want.Equal(got), "record %d nested result differs", i)
		assert.Equal(t, "Item", got.Target())
	}
	assert.Equal(t, "second", res.Record(1).Get(2))

	empty := res.Record(2).Get(1).(*types.Result)
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, res.Record(2).Get(2))

	assert.Nil(t, res.Record(3).Get(1))
	assert.Equal(t, "none", res.Record(3).Get(2))
}

func TestReadXML_NestedTwoLevels(t *testing.T) {
	leaf := types.NewRowSchema(types.Field{Name: "v", Type: types.Integer})
	mid := types.NewRowSchema(types.Field{Name: "leaves", Type: types.MultisetOf(leaf, "Leaf")})
	top := types.NewRowSchema(types.Field{Name: "mids", Type: types.MultisetOf(mid, "Mid")})

	doc := `<result><records><record><value field="mids"><result><records>
		<record><value field="leaves"><result><records><record><v>1</v></record><record><v>2</v></record></records></result></value></record>
		<record><value field="leaves"><result><records><record><v>3</v></record></records></result></value></record>
	</records></result></value></record></records></result>`

	res := readXML(t, doc, Options{Schema: &top})
	mids := res.Record(0).Get(0).(*types.Result)
	require.Equal(t, 2, mids.Len())
	first := mids.Record(0).Get(0).(*types.Result)
	second := mids.Record(1).Get(0).(*types.Result)
	assert.Equal(t, 2, first.Len())
	assert.Equal(t, int32(3), second.Record(0).Get(0))
	assert.Equal(t, "Leaf", second.Target())
}

func TestReadXML_NestedSchemaFromDocument(t *testing.T) {
	schema := types.NewRowSchema(types.Field{Name: "items", Type: types.MultisetOf(types.NewRowSchema(), "")})
	doc := `<result><records><record><items><result><fields><field name="n" type="BIGINT"/></fields><records><record><n>5</n></record></records></result></items></record></records></result>`

	res := readXML(t, doc, Options{Schema: &schema})
	nested := res.Record(0).Get(0).(*types.Result)
	assert.Equal(t, int64(5), nested.Record(0).Get(0))
}

func TestReadXML_UnsupportedNesting(t *testing.T) {
	doc := `<result><fields><field name="a" type="VARCHAR"/></fields><records><record><a><result/></a></record></records></result>`
	res, err := ReadXML(strings.NewReader(doc), Options{})
	require.Error(t, err)
	assert.Nil(t, res)

	var daErr DataAccessError
	require.True(t, errors.As(err, &daErr))
	var unErr UnsupportedNestingError
	require.True(t, errors.As(err, &unErr))
	assert.Equal(t, "a", unErr.Column)
	assert.Equal(t, "VARCHAR", unErr.Type)
}

func TestReadXML_Malformed(t *testing.T) {
	tests := map[string]string{
		"empty":                 ``,
		"unterminated":          `<result><records><record><A>1</A></record>`,
		"mismatched tags":       `<result><records></result></records>`,
		"result inside records": `<result><records><result/></records></result>`,
		"result inside fields":  `<result><fields><result/></fields></result>`,
		"wrong root":            `<rows><row/></rows>`,
		"second root":           `<result/><result/>`,
		"text after root":       `<result><records><record><A>1</A></record></records></result>junk`,
		"text before root":      `junk<result><records><record><A>1</A></record></records></result>`,
		"column outside record": `<result><A>1</A></result>`,
		"element inside column": `<result><records><record><A><B>1</B></A></record></records></result>`,
		"unknown in fields":     `<result><fields><column name="A"/></fields></result>`,
		"width mismatch":        `<result><records><record><A>1</A></record><record><A>1</A><B>2</B></record></records></result>`,
		"type mismatch":         `<result><fields><field name="A" type="INTEGER"/></fields><records><record><A>x</A></record></records></result>`,
		"undeclared entity":     `<result><records><record><A>&x;</A></record></records></result>`,
		"doctype":               `<!DOCTYPE result [<!ENTITY x "y">]><result><records><record><A>&x;</A></record></records></result>`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := ReadXML(strings.NewReader(doc), Options{})
			require.Error(t, err)
			assert.Nil(t, res)

			var daErr DataAccessError
			require.True(t, errors.As(err, &daErr), "got %T", err)
			var spErr StructuralParseError
			assert.True(t, errors.As(err, &spErr), "got %v", err)
		})
	}
}

func TestReadXML_TextAfterResult(t *testing.T) {
	_, order := nestedSchemas()
	tests := map[string]string{
		"after nested result": `<result><records><record><id>1</id><items><result/>junk</items><note/></record></records></result>`,
		"after root":          `<result><records><record><id>1</id><items/><note/></record></records></result>` + "\n junk \n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := ReadXML(strings.NewReader(doc), Options{Schema: &order})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Contains(t, err.Error(), "unexpected content after </result>")
		})
	}

	res := readXML(t, "<result><records><record><id>1</id><items><result/>\n</items><note/></record></records></result>\n", Options{Schema: &order})
	assert.Equal(t, 1, res.Len())
}

func TestReadXML_HardeningFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

	hardening := append(DefaultHardening(), Hardening{
		Name:  "xinclude",
		Apply: func(*Decoder) error { return errors.New("not supported by this parser") },
	})
	res := readXML(t, `<result><records><record><A>1</A></record></records></result>`, Options{
		Logger:    logger,
		Hardening: hardening,
	})

	assert.Equal(t, 1, res.Len())
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "option=xinclude")
}

func TestReadXML_DoctypeAllowedWithoutHardening(t *testing.T) {
	res := readXML(t, `<!DOCTYPE result><result><records><record><A>1</A></record></records></result>`, Options{Hardening: []Hardening{}})
	assert.Equal(t, 1, res.Len())
}

func TestXML_RoundTrip(t *testing.T) {
	original := scalarResult(t)

	var buf bytes.Buffer
	require.NoError(t, FormatXML(&buf, original))

	res, err := ReadXML(&buf, Options{})
	require.NoError(t, err)
	assert.True(t, original.Equal(res), "round trip changed the result")
}

func TestXML_EmptyStringReadsAsNull(t *testing.T) {
	schema := types.NewRowSchema(types.Field{Name: "s", Type: types.Varchar})
	rec, err := types.NewRecord(schema, []any{""})
	require.NoError(t, err)
	original := types.NewResult(schema)
	require.NoError(t, original.Append(rec))

	var buf bytes.Buffer
	require.NoError(t, FormatXML(&buf, original))
	res := readXML(t, buf.String(), Options{Schema: &schema})
	assert.Nil(t, res.Record(0).Get(0))

	buf.Reset()
	require.NoError(t, FormatJSON(&buf, original))
	fromJSON := readJSON(t, buf.String(), Options{Schema: &schema})
	assert.Equal(t, "", fromJSON.Record(0).Get(0))
}

func TestXML_RoundTripNested(t *testing.T) {
	_, order := nestedSchemas()
	doc := `<result><records>
		<record><id>1</id><items><result><records><record><x>10</x></record></records></result></items><note>n</note></record>
	</records></result>`
	original := readXML(t, doc, Options{Schema: &order})

	var buf bytes.Buffer
	require.NoError(t, FormatXML(&buf, original))
	res := readXML(t, buf.String(), Options{Schema: &order})
	assert.True(t, original.Equal(res))

	buf.Reset()
	require.NoError(t, FormatJSON(&buf, original))
	fromJSON := readJSON(t, buf.String(), Options{Schema: &order})
	assert.True(t, original.Equal(fromJSON))
}
