package convert

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Kargones/benadis-notify/internal/constants"
)

// csvNoData — содержимое CSV файла для пустой последовательности.
const csvNoData = "No data"

// serialize превращает каноническое значение в байтовое содержимое файла.
func (e *Engine) serialize(value any, target Format, headers []string) ([]byte, error) {
	switch target {
	case FormatTXT:
		return e.serializeText(value)
	case FormatJSON:
		return e.serializeJSON(value)
	case FormatCSV:
		return e.serializeCSV(value, headers)
	default:
		return nil, &UnsupportedFormatError{Tag: string(target)}
	}
}

// serializeText формирует текстовое содержимое.
// Строка проходит как есть; Fault рендерится с stack trace; структурированные
// значения выводятся как pretty-printed JSON; остальное — через fmt.Sprint.
func (e *Engine) serializeText(value any) ([]byte, error) {
	if f, ok := faultOf(value); ok {
		return []byte(f.renderText()), nil
	}

	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case *Table:
		return marshalIndent(v.rowsOrEmpty())
	case map[string]any, []map[string]any, []any:
		return marshalIndent(v)
	default:
		return []byte(fmt.Sprint(value)), nil
	}
}

// serializeJSON формирует JSON содержимое.
// Строковый вход повторно разбирается как JSON (при неудаче оборачивается в
// {content, timestamp}); Fault становится объектом ошибки. Поле _metadata
// добавляется только когда верхний уровень — объект: массивы и скаляры
// сериализуются как есть, чтобы не менять форму данных.
func (e *Engine) serializeJSON(value any) ([]byte, error) {
	var v any

	if f, ok := faultOf(value); ok {
		v = map[string]any{
			"error":     f.Message,
			"stack":     f.stackOrPlaceholder(),
			"timestamp": e.timestamp(),
			"type":      "Error",
		}
	} else {
		switch src := value.(type) {
		case string:
			parsed, err := decodeJSON(src)
			if err != nil {
				parsed = map[string]any{
					"content":   src,
					"timestamp": e.timestamp(),
				}
			}
			v = parsed
		case *Table:
			v = src.rowsOrEmpty()
		default:
			v = value
		}
	}

	if obj, ok := v.(map[string]any); ok {
		v = e.withMetadata(obj)
	}

	return marshalIndent(v)
}

// withMetadata возвращает копию объекта с полем _metadata.
// Поле вызывающего кода с тем же именем перезаписывается.
func (e *Engine) withMetadata(obj map[string]any) map[string]any {
	merged := make(map[string]any, len(obj)+1)
	for k, val := range obj {
		merged[k] = val
	}
	merged["_metadata"] = map[string]any{
		"generatedAt": e.timestamp(),
		"source":      constants.AppName,
		"format":      "json",
	}
	return merged
}

// serializeCSV формирует CSV содержимое, диспетчеризуя по форме значения.
func (e *Engine) serializeCSV(value any, headers []string) ([]byte, error) {
	// Fault в табличном виде — одна строка с колонками error/stack
	if f, ok := faultOf(value); ok {
		value = map[string]any{"error": f.Message, "stack": f.stackOrPlaceholder()}
	}

	switch v := value.(type) {
	case *Table:
		if len(v.Rows) == 0 {
			return []byte(csvNoData), nil
		}
		hdrs := headers
		if len(hdrs) == 0 {
			hdrs = v.Headers
		}
		return renderObjectRows(v.Rows, hdrs), nil

	case []map[string]any:
		if len(v) == 0 {
			return []byte(csvNoData), nil
		}
		hdrs := headers
		if len(hdrs) == 0 {
			hdrs = unionHeaders(v)
		}
		return renderObjectRows(v, hdrs), nil

	case []any:
		if len(v) == 0 {
			return []byte(csvNoData), nil
		}
		if rows, ok := asObjectRows(v); ok {
			hdrs := headers
			if len(hdrs) == 0 {
				hdrs = unionHeaders(rows)
			}
			return renderObjectRows(rows, hdrs), nil
		}
		return renderValueRows(v, headers), nil

	case map[string]any:
		// Одиночный объект — таблица из одной строки
		hdrs := headers
		if len(hdrs) == 0 {
			hdrs = topLevelKeys(v)
		}
		return renderObjectRows([]map[string]any{v}, hdrs), nil

	default:
		return renderScalar(value, headers), nil
	}
}

// asObjectRows трактует последовательность как строки-объекты, если её первый
// элемент — объект. Элементы иной формы становятся пустыми строками таблицы.
func asObjectRows(seq []any) ([]map[string]any, bool) {
	if _, ok := seq[0].(map[string]any); !ok {
		return nil, false
	}
	rows := make([]map[string]any, len(seq))
	for i, item := range seq {
		if m, ok := item.(map[string]any); ok {
			rows[i] = m
		} else {
			rows[i] = map[string]any{}
		}
	}
	return rows, true
}

// renderObjectRows выводит таблицу: строка заголовков, затем по строке на
// каждую запись. Значения разрешаются по dot-пути; null и отсутствующие дают
// пустое поле; вложенные объекты и массивы — JSON строку.
func renderObjectRows(rows []map[string]any, headers []string) []byte {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinCSVLine(headers))
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = renderCell(resolveField(row, h))
		}
		lines = append(lines, joinCSVLine(cells))
	}
	return []byte(strings.Join(lines, "\n"))
}

// renderValueRows выводит последовательность не-объектов.
// Строка-последовательность экранируется и склеивается запятыми поэлементно;
// скалярная строка выводится напрямую без экранирования.
func renderValueRows(rows []any, headers []string) []byte {
	var lines []string
	if len(headers) > 0 {
		lines = append(lines, joinCSVLine(headers))
	}
	for _, row := range rows {
		if seq, ok := row.([]any); ok {
			cells := make([]string, len(seq))
			for i, item := range seq {
				cells[i] = renderCell(item)
			}
			lines = append(lines, joinCSVLine(cells))
			continue
		}
		lines = append(lines, fmt.Sprint(row))
	}
	return []byte(strings.Join(lines, "\n"))
}

// renderScalar выводит одиночный скаляр: строка заголовков (или "Value"),
// затем строка значения.
func renderScalar(value any, headers []string) []byte {
	hdrs := headers
	if len(hdrs) == 0 {
		hdrs = []string{"Value"}
	}
	return []byte(joinCSVLine(hdrs) + "\n" + escapeCSVField(renderCell(value)))
}

// renderCell приводит значение ячейки к строке.
// null и отсутствующие значения — пустое поле; объекты и массивы — JSON строка.
func renderCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case map[string]any, []any, []map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// joinCSVLine экранирует поля и склеивает их запятыми.
func joinCSVLine(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = escapeCSVField(f)
	}
	return strings.Join(escaped, ",")
}

// escapeCSVField оборачивает поле в кавычки с удвоением внутренних кавычек,
// если поле содержит запятую, кавычку или перевод строки.
func escapeCSVField(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// marshalIndent сериализует значение как pretty-printed JSON с отступом 2 пробела.
func marshalIndent(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, &FormatError{Reason: "value is not JSON-serializable", Cause: err}
	}
	return b, nil
}

// rowsOrEmpty возвращает строки таблицы, гарантируя не-nil срез
// (пустая таблица сериализуется в JSON как [], а не null).
func (t *Table) rowsOrEmpty() []map[string]any {
	if t.Rows == nil {
		return []map[string]any{}
	}
	return t.Rows
}
