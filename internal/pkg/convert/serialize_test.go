package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeText_StringVerbatim(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize("raw text\nsecond line", FormatTXT, nil)
	require.NoError(t, err)
	assert.Equal(t, "raw text\nsecond line", string(b))
}

func TestSerializeText_Fault(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize(&Fault{Message: "boom", Stack: "main.go:42"}, FormatTXT, nil)
	require.NoError(t, err)
	assert.Equal(t, "ERROR: boom\n\nSTACK TRACE:\nmain.go:42", string(b))
}

func TestSerializeText_FaultWithoutStack(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize(&Fault{Message: "boom"}, FormatTXT, nil)
	require.NoError(t, err)
	assert.Equal(t, "ERROR: boom\n\nSTACK TRACE:\nno stack trace available", string(b))
}

func TestSerializeText_StructuredAsPrettyJSON(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize(map[string]any{"key": "value"}, FormatTXT, nil)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"key\": \"value\"\n}", string(b))
}

func TestSerializeText_ScalarCoercion(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize(42, FormatTXT, nil)
	require.NoError(t, err)
	assert.Equal(t, "42", string(b))
}

func TestSerializeJSON_AddsMetadataToObject(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize(map[string]any{"key": "value"}, FormatJSON, nil)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "value", m["key"])

	meta, ok := m["_metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "benadis-notify", meta["source"])
	assert.Equal(t, "json", meta["format"])
	assert.Equal(t, "2026-08-27T12:00:00Z", meta["generatedAt"])
}

func TestSerializeJSON_MetadataOverwritesCallerField(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize(map[string]any{"_metadata": "подделка"}, FormatJSON, nil)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	_, isMap := m["_metadata"].(map[string]any)
	assert.True(t, isMap, "_metadata вызывающего кода должно быть перезаписано")
}

func TestSerializeJSON_DoesNotMutateInput(t *testing.T) {
	e := newTestEngine(t)

	input := map[string]any{"key": "value"}
	_, err := e.serialize(input, FormatJSON, nil)
	require.NoError(t, err)
	assert.NotContains(t, input, "_metadata")
}

func TestSerializeJSON_StringReparsed(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize(`{"parsed": true}`, FormatJSON, nil)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, true, m["parsed"])
	assert.Contains(t, m, "_metadata")
}

func TestSerializeJSON_InvalidStringWrapped(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize("просто текст", FormatJSON, nil)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "просто текст", m["content"])
	assert.Equal(t, "2026-08-27T12:00:00Z", m["timestamp"])
}

func TestSerializeJSON_Fault(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize(&Fault{Message: "boom", Stack: "main.go:1"}, FormatJSON, nil)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "boom", m["error"])
	assert.Equal(t, "main.go:1", m["stack"])
	assert.Equal(t, "Error", m["type"])
	assert.Contains(t, m, "_metadata")
}

func TestSerializeJSON_ArrayStaysArray(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize([]any{json.Number("1"), json.Number("2")}, FormatJSON, nil)
	require.NoError(t, err)

	var arr []any
	require.NoError(t, json.Unmarshal(b, &arr), "массив должен сериализоваться массивом, без _metadata")
	assert.Len(t, arr, 2)
}

func TestSerializeCSV_FlattensNestedObjects(t *testing.T) {
	e := newTestEngine(t)

	rows := []map[string]any{
		{"a": 1, "b": map[string]any{"c": 2, "d": 3}},
	}

	b, err := e.serialize(rows, FormatCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, "a,b.c,b.d\n1,2,3", string(b))
}

func TestSerializeCSV_EscapesSpecialCharacters(t *testing.T) {
	e := newTestEngine(t)

	rows := []map[string]any{
		{"note": `comma, quote " end`},
	}

	b, err := e.serialize(rows, FormatCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, "note\n\"comma, quote \"\" end\"", string(b))
}

func TestSerializeCSV_NullAndMissingAreEmpty(t *testing.T) {
	e := newTestEngine(t)

	rows := []map[string]any{
		{"a": "x", "b": nil},
		{"a": "y"},
	}

	b, err := e.serialize(rows, FormatCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, "a,b\nx,\ny,", string(b))
}

func TestSerializeCSV_NestedValueAsJSONString(t *testing.T) {
	e := newTestEngine(t)

	// Одиночный объект: заголовки — собственные ключи верхнего уровня,
	// вложенное значение сериализуется JSON строкой
	obj := map[string]any{"a": "x", "b": map[string]any{"c": 1}}

	b, err := e.serialize(obj, FormatCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, "a,b\nx,\"{\"\"c\"\":1}\"", string(b))
}

func TestSerializeCSV_ExplicitHeaders(t *testing.T) {
	e := newTestEngine(t)

	rows := []map[string]any{
		{"a": "1", "b": "2", "c": "скрыто"},
	}

	b, err := e.serialize(rows, FormatCSV, []string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, "b,a\n2,1", string(b))
}

func TestSerializeCSV_EmptySequence(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize([]any{}, FormatCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, "No data", string(b))
}

func TestSerializeCSV_SequenceOfSequences(t *testing.T) {
	e := newTestEngine(t)

	rows := []any{
		[]any{"a", "b,c"},
		[]any{"d", "e"},
	}

	b, err := e.serialize(rows, FormatCSV, []string{"col1", "col2"})
	require.NoError(t, err)
	assert.Equal(t, "col1,col2\na,\"b,c\"\nd,e", string(b))
}

func TestSerializeCSV_SequenceOfScalars(t *testing.T) {
	e := newTestEngine(t)

	// Скалярная строка выводится напрямую без экранирования
	b, err := e.serialize([]any{"plain", "with, comma"}, FormatCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, "plain\nwith, comma", string(b))
}

func TestSerializeCSV_Scalar(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.serialize("hello", FormatCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, "Value\nhello", string(b))

	b, err = e.serialize("hello", FormatCSV, []string{"greeting"})
	require.NoError(t, err)
	assert.Equal(t, "greeting\nhello", string(b))
}

func TestEscapeCSVField_RoundTrip(t *testing.T) {
	// Поле с запятой, кавычкой или переводом строки после экранирования
	// восстанавливается грамматикой закавыченных полей байт-в-байт
	tests := []string{
		`with, comma`,
		`with "quote"`,
		"with\nnewline",
		`all, of "them"` + "\ntogether",
	}

	for _, original := range tests {
		fields := splitCSVLine(escapeCSVField(original))
		require.Len(t, fields, 1)
		assert.Equal(t, original, fields[0])
	}
}

func TestSerializeCSV_TableIdempotence(t *testing.T) {
	e := newTestEngine(t)

	// serialize(parse(s)) == s для CSV без экранирования
	src := "name,age\nalice,30\nbob,25"
	table, err := parseCSV(src, nil)
	require.NoError(t, err)

	b, err := e.serialize(table, FormatCSV, nil)
	require.NoError(t, err)
	assert.Equal(t, src, string(b))
}
