package read

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/sqlkit/internal/types"
)

func readJSON(t *testing.T, doc string, opts Options) *types.Result {
	t.Helper()
	res, err := ReadJSON(strings.NewReader(doc), opts)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestReadJSON_FieldsAndPositionalRecords(t *testing.T) {
	res := readJSON(t, `{"fields":[{"name":"A","type":"INTEGER"}],"records":[[1]]}`, Options{})

	require.Equal(t, 1, res.Len())
	require.Equal(t, 1, res.Schema().Len())
	assert.Equal(t, "A", res.Schema().Field(0).Name)
	assert.Equal(t, types.KindInteger, res.Schema().Field(0).Type.Kind)
	assert.Equal(t, int32(1), res.Record(0).Get(0))
}

func TestReadJSON_Qualifiers(t *testing.T) {
	res := readJSON(t, `{"fields":[{"catalog":"db","schema":"public","table":"users","name":"id","type":"bigint"}],"records":[]}`, Options{})

	f := res.Schema().Field(0)
	assert.Equal(t, []string{"db", "public", "users", "id"}, f.Qualified())
	assert.Equal(t, types.KindBigint, f.Type.Kind)
	assert.Equal(t, 0, res.Len())
}

func TestReadJSON_BlankTypeIsVarchar(t *testing.T) {
	res := readJSON(t, `{"fields":[{"name":"A"},{"name":"B","type":""}],"records":[["x", 2]]}`, Options{})

	for i := 0; i < 2; i++ {
		assert.Equal(t, types.KindVarchar, res.Schema().Field(i).Type.Kind)
	}
	assert.Equal(t, "2", res.Record(0).Get(1))
}

func TestReadJSON_BareArraySynthesizesColumns(t *testing.T) {
	res := readJSON(t, `[[1,"a"],[2,"b"]]`, Options{})

	require.Equal(t, 2, res.Len())
	assert.Equal(t, "v0", res.Schema().Field(0).Name)
	assert.Equal(t, "v1", res.Schema().Field(1).Name)
	assert.Equal(t, types.KindVarchar, res.Schema().Field(0).Type.Kind)
	assert.Equal(t, "2", res.Record(1).Get(0))
}

func TestReadJSON_KeyedRecords(t *testing.T) {
	t.Run("header from first record keys", func(t *testing.T) {
		res := readJSON(t, `[{"b":"1","a":"2"},{"a":"3"}]`, Options{})

		assert.Equal(t, "b", res.Schema().Field(0).Name)
		assert.Equal(t, "a", res.Schema().Field(1).Name)
		assert.Nil(t, res.Record(1).Get(0))
		assert.Equal(t, "3", res.Record(1).Get(1))
	})

	t.Run("values matched by declared name", func(t *testing.T) {
		res := readJSON(t, `{"fields":[{"name":"id","type":"INTEGER"},{"name":"name"}],"records":[{"name":"alice","id":7}]}`, Options{})

		v, ok := res.Record(0).Value("id")
		require.True(t, ok)
		assert.Equal(t, int32(7), v)
		v, _ = res.Record(0).Value("name")
		assert.Equal(t, "alice", v)
	})
}

func TestReadJSON_ExplicitSchemaWins(t *testing.T) {
	schema := types.NewRowSchema(types.Field{Name: "n", Type: types.Bigint})
	res := readJSON(t, `{"fields":[{"name":"A","type":"VARCHAR"}],"records":[[5]]}`, Options{Schema: &schema})

	assert.True(t, res.Schema().Equal(schema))
	assert.Equal(t, int64(5), res.Record(0).Get(0))
}

func TestReadJSON_Binary(t *testing.T) {
	want := []byte{0x00, 0x01, 0xfe, 0xff, 'h', 'i'}
	doc := `{"fields":[{"name":"data","type":"VARBINARY"}],"records":[["AAH+/2hp"],[null]]}`

	res := readJSON(t, doc, Options{})
	assert.Equal(t, want, res.Record(0).Get(0))
	assert.Nil(t, res.Record(1).Get(0))
}

func TestReadJSON_ExactNumbers(t *testing.T) {
	res := readJSON(t, `{"fields":[{"name":"big","type":"BIGINT"},{"name":"amount","type":"NUMERIC(38,10)"}],"records":[[9007199254740993, 12345678901234567890.0123456789]]}`, Options{})

	assert.Equal(t, int64(9007199254740993), res.Record(0).Get(0))
	assert.Equal(t, types.DecimalString("12345678901234567890.0123456789"), res.Record(0).Get(1))
}

func TestReadJSON_IntegralNumbers(t *testing.T) {
	res := readJSON(t, `{"fields":[{"name":"a","type":"INTEGER"},{"name":"b","type":"BIGINT"}],"records":[[1.0, 1e2]]}`, Options{})

	assert.Equal(t, int32(1), res.Record(0).Get(0))
	assert.Equal(t, int64(100), res.Record(0).Get(1))
}

func TestReadJSON_Nested(t *testing.T) {
	item := types.NewRowSchema(types.Field{Name: "sku", Type: types.Varchar}, types.Field{Name: "qty", Type: types.Integer})
	schema := types.NewRowSchema(
		types.Field{Name: "id", Type: types.Integer},
		types.Field{Name: "items", Type: types.MultisetOf(item, "Item")},
	)
	doc := `[
		[1, [["a", 2], ["b", 3]]],
		[2, {"records": [{"qty": 4, "sku": "c"}]}],
		[3, null]
	]`

	res := readJSON(t, doc, Options{Schema: &schema})
	require.Equal(t, 3, res.Len())

	first := res.Record(0).Get(1).(*types.Result)
	assert.Equal(t, "Item", first.Target())
	assert.Equal(t, 2, first.Len())
	assert.Equal(t, int32(3), first.Record(1).Get(1))

	second := res.Record(1).Get(1).(*types.Result)
	assert.Equal(t, "c", second.Record(0).Get(0))

	assert.Nil(t, res.Record(2).Get(1))
}

func TestReadJSON_Empty(t *testing.T) {
	res := readJSON(t, `[]`, Options{})
	assert.Equal(t, 0, res.Len())
	assert.Equal(t, 0, res.Schema().Len())

	res = readJSON(t, `{"fields":[{"name":"A","type":"INTEGER"}]}`, Options{})
	assert.Equal(t, 0, res.Len())
	assert.Equal(t, 1, res.Schema().Len())
}

func TestReadJSON_Malformed(t *testing.T) {
	tests := map[string]string{
		"empty":            ``,
		"invalid syntax":   `{"fields": [}`,
		"truncated":        `[[1, 2], [3`,
		"trailing data":    `[[1]] [[2]]`,
		"scalar root":      `42`,
		"scalar record":    `[1, 2]`,
		"fields not array": `{"fields": {}, "records": []}`,
		"field not object": `{"fields": ["A"], "records": []}`,
		"width mismatch":   `[[1, 2], [3]]`,
		"type mismatch":    `{"fields":[{"name":"A","type":"INTEGER"}],"records":[["x"]]}`,
		"bad base64":       `{"fields":[{"name":"A","type":"BLOB"}],"records":[["***"]]}`,
		"NaN double":       `{"fields":[{"name":"D","type":"DOUBLE"}],"records":[["NaN"]]}`,
		"infinite double":  `{"fields":[{"name":"D","type":"DOUBLE"}],"records":[["-Inf"]]}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := ReadJSON(strings.NewReader(doc), Options{})
			require.Error(t, err)
			assert.Nil(t, res)

			var daErr DataAccessError
			require.True(t, errors.As(err, &daErr), "got %T", err)
			var spErr StructuralParseError
			assert.True(t, errors.As(err, &spErr), "got %v", err)
			assert.Equal(t, formatJSON, spErr.Format)
		})
	}
}

func scalarResult(t *testing.T) *types.Result {
	t.Helper()
	schema := types.NewRowSchema(
		types.Field{Name: "s", Type: types.Smallint},
		types.Field{Name: "i", Type: types.Integer},
		types.Field{Name: "b", Type: types.Bigint},
		types.Field{Name: "d", Type: types.Decimal},
		types.Field{Name: "f", Type: types.Double},
		types.Field{Name: "ok", Type: types.Boolean},
		types.Field{Name: "name", Type: types.Varchar},
		types.Field{Name: "code", Type: types.Char},
		types.Field{Name: "body", Type: types.Clob},
		types.Field{Name: "day", Type: types.Date},
		types.Field{Name: "at", Type: types.Time},
		types.Field{Name: "ts", Type: types.Timestamp},
		types.Field{Name: "raw", Type: types.Binary},
		types.Field{Name: "id", Type: types.UUID},
	)
	rows := [][]any{
		{
			int16(7), int32(-42), int64(1) << 40, types.DecimalString("12.50"), 1.25, true,
			"alice <admin> & co", "X", "line one\nline two",
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(0, 1, 1, 10, 20, 30, 500, time.UTC),
			time.Date(2024, 3, 1, 10, 20, 30, 123456789, time.UTC),
			[]byte{0, 1, 2, 255},
			uuid.MustParse("8a1d6a4e-3b0f-4a53-9b7e-0c0d2b4d5e61"),
		},
		{nil, nil, nil, nil, nil, false, nil, nil, nil, nil, nil, nil, nil, nil},
	}

	res := types.NewResult(schema)
	for _, row := range rows {
		rec, err := types.NewRecord(schema, row)
		require.NoError(t, err)
		require.NoError(t, res.Append(rec))
	}
	return res
}

func TestJSON_RoundTrip(t *testing.T) {
	original := scalarResult(t)

	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, original))

	res, err := ReadJSON(&buf, Options{})
	require.NoError(t, err)
	assert.True(t, original.Equal(res), "round trip changed the result")
}

func TestFormatJSON_Document(t *testing.T) {
	schema := types.NewRowSchema(types.Field{Table: "t", Name: "A", Type: types.Integer})
	res := types.NewResult(schema)
	rec, err := types.NewRecord(schema, []any{int32(1)})
	require.NoError(t, err)
	require.NoError(t, res.Append(rec))

	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, res))
	assert.JSONEq(t, `{"fields":[{"table":"t","name":"A","type":"INTEGER"}],"records":[[1]]}`, buf.String())
}

func TestFormatJSON_Converter(t *testing.T) {
	yesNo := types.ConverterFuncs{
		FromFunc: func(v any) (any, error) { return v == "Y", nil },
		ToFunc: func(v any) (any, error) {
			if v == true {
				return "Y", nil
			}
			return "N", nil
		},
	}
	schema := types.NewRowSchema(types.Field{Name: "flag", Type: types.Char, Converter: yesNo})
	res := readJSON(t, `[["Y"],["N"]]`, Options{Schema: &schema})
	assert.Equal(t, true, res.Record(0).Get(0))

	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, res))

	var doc struct {
		Records [][]string `json:"records"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, [][]string{{"Y"}, {"N"}}, doc.Records)
}
