package convert

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/benadis-notify/internal/pkg/logging"
	"github.com/Kargones/benadis-notify/internal/pkg/tempfiles"
)

// newTestEngine создаёт Engine с фиксированным временем для детерминированных тестов.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	files := tempfiles.NewManager(t.TempDir(), true, 24*time.Hour, logging.NewNopLogger())
	e := NewEngine(files, logging.NewNopLogger())
	e.SetNowFunc(func() time.Time {
		return time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	})
	return e
}

func TestParseJSON_String(t *testing.T) {
	v, err := parseJSON(`{"a": 1, "b": "text"}`)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), m["a"])
	assert.Equal(t, "text", m["b"])
}

func TestParseJSON_InvalidString(t *testing.T) {
	_, err := parseJSON(`{"a": `)
	require.Error(t, err)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Contains(t, err.Error(), "invalid JSON string")
}

func TestParseJSON_TrailingGarbage(t *testing.T) {
	_, err := parseJSON(`{"a": 1} мусор`)
	require.Error(t, err)

	var formatErr *FormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestParseJSON_StructuredPassThrough(t *testing.T) {
	input := map[string]any{"key": "value"}
	v, err := parseJSON(input)
	require.NoError(t, err)
	assert.Equal(t, input, v)
}

func TestParseCSV_FirstLineIsHeader(t *testing.T) {
	table, err := parseCSV("name,age\nalice,30\nbob,25", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "alice", table.Rows[0]["name"])
	assert.Equal(t, "30", table.Rows[0]["age"])
	assert.Equal(t, "bob", table.Rows[1]["name"])
}

func TestParseCSV_ExplicitHeaders(t *testing.T) {
	// С явными заголовками каждая строка входа — строка данных, включая первую
	table, err := parseCSV("alice,30\nbob,25", []string{"name", "age"})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "alice", table.Rows[0]["name"])
}

func TestParseCSV_PadsShortRows(t *testing.T) {
	table, err := parseCSV("a,b,c\n1,2", nil)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "1", table.Rows[0]["a"])
	assert.Equal(t, "2", table.Rows[0]["b"])
	assert.Equal(t, "", table.Rows[0]["c"])
}

func TestParseCSV_QuotedFields(t *testing.T) {
	table, err := parseCSV(`name,note`+"\n"+`alice,"hello, world"`, nil)
	require.NoError(t, err)

	assert.Equal(t, "hello, world", table.Rows[0]["note"])
}

func TestParseCSV_EscapedQuotes(t *testing.T) {
	table, err := parseCSV(`name,quote`+"\n"+`alice,"she said ""hi"""`, nil)
	require.NoError(t, err)

	assert.Equal(t, `she said "hi"`, table.Rows[0]["quote"])
}

func TestParseCSV_EmptyInput(t *testing.T) {
	table, err := parseCSV("   \n  ", nil)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestParseCSV_NonString(t *testing.T) {
	_, err := parseCSV(42, nil)
	require.Error(t, err)

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Contains(t, err.Error(), "must be a string")
}

func TestSplitCSVLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"простые поля", "a,b,c", []string{"a", "b", "c"}},
		{"пустые поля", "a,,c", []string{"a", "", "c"}},
		{"запятая в кавычках", `"a,b",c`, []string{"a,b", "c"}},
		{"удвоенная кавычка", `"a""b",c`, []string{`a"b`, "c"}},
		{"одно поле", "solo", []string{"solo"}},
		{"пустая строка", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCSVLine(tt.line))
		})
	}
}

func TestParseText_SingleLine(t *testing.T) {
	e := newTestEngine(t)

	v := e.parseText("  hello  ")
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hello", m["content"])
	assert.Equal(t, 5, m["length"])
	assert.Equal(t, "2026-08-27T12:00:00Z", m["timestamp"])
}

func TestParseText_MultiLine(t *testing.T) {
	e := newTestEngine(t)

	v := e.parseText("L1\nL2")
	rows, ok := v.([]map[string]any)
	require.True(t, ok)
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0]["lineNumber"])
	assert.Equal(t, "L1", rows[0]["content"])
	assert.Equal(t, 2, rows[0]["characterCount"])

	assert.Equal(t, 2, rows[1]["lineNumber"])
	assert.Equal(t, "L2", rows[1]["content"])
	assert.Equal(t, 2, rows[1]["characterCount"])
}

func TestParseText_CharacterCountUsesUntrimmedLine(t *testing.T) {
	e := newTestEngine(t)

	v := e.parseText("first\n  padded  \nlast")
	rows, ok := v.([]map[string]any)
	require.True(t, ok)
	require.Len(t, rows, 3)

	// content обрезан, characterCount — длина исходной строки
	assert.Equal(t, "padded", rows[1]["content"])
	assert.Equal(t, len("  padded  "), rows[1]["characterCount"])
}

func TestParseText_NonString(t *testing.T) {
	e := newTestEngine(t)

	v := e.parseText(12345)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "12345", m["content"])
	assert.Equal(t, "2026-08-27T12:00:00Z", m["timestamp"])
}
