package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Table — каноническое табличное значение, результат разбора CSV.
// Порядок колонок хранится отдельно от строк: Go map не упорядочен,
// а порядок заголовков источника должен пережить повторную сериализацию.
type Table struct {
	// Headers — имена колонок в порядке появления в источнике.
	Headers []string

	// Rows — строки таблицы, ключи совпадают с Headers.
	Rows []map[string]any
}

// parse разбирает входные данные согласно исходному формату.
// headers используется только для CSV: при наличии явных заголовков
// каждая строка входа (включая первую) трактуется как строка данных.
func (e *Engine) parse(data any, source Format, headers []string) (any, error) {
	switch source {
	case FormatJSON:
		return parseJSON(data)
	case FormatCSV:
		return parseCSV(data, headers)
	case FormatTXT:
		return e.parseText(data), nil
	default:
		return nil, &UnsupportedFormatError{Tag: string(source)}
	}
}

// parseJSON разбирает строку как строгий JSON.
// Уже структурированные значения проходят без изменений.
func parseJSON(data any) (any, error) {
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	v, err := decodeJSON(s)
	if err != nil {
		return nil, &FormatError{Reason: "invalid JSON string", Cause: err}
	}
	return v, nil
}

// decodeJSON разбирает строку как единственное JSON значение.
// Числа декодируются как json.Number, чтобы сериализация в CSV
// не теряла исходное текстовое представление.
func decodeJSON(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	// Строгий разбор: после первого значения допустим только EOF
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing data after JSON value")
	}
	return v, nil
}

// parseCSV разбирает CSV строку в Table.
// Не-строковый вход — FormatError. Пустой вход даёт пустую таблицу.
func parseCSV(data any, headers []string) (*Table, error) {
	s, ok := data.(string)
	if !ok {
		return nil, &FormatError{Reason: "CSV input must be a string"}
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return &Table{Headers: append([]string(nil), headers...)}, nil
	}

	lines := strings.Split(trimmed, "\n")
	table := &Table{}

	if len(headers) > 0 {
		// Явные заголовки: каждая строка входа — строка данных
		table.Headers = append([]string(nil), headers...)
		for _, line := range lines {
			table.Rows = append(table.Rows, rowFromFields(table.Headers, splitCSVLine(line)))
		}
		return table, nil
	}

	// Первая строка входа — заголовки
	table.Headers = splitCSVLine(lines[0])
	for _, line := range lines[1:] {
		table.Rows = append(table.Rows, rowFromFields(table.Headers, splitCSVLine(line)))
	}
	return table, nil
}

// rowFromFields строит строку таблицы по позиционному соответствию полей
// заголовкам. Недостающие хвостовые поля заполняются пустой строкой.
func rowFromFields(headers, fields []string) map[string]any {
	row := make(map[string]any, len(headers))
	for i, h := range headers {
		if i < len(fields) {
			row[h] = fields[i]
		} else {
			row[h] = ""
		}
	}
	return row
}

// splitCSVLine разбивает строку CSV на поля по грамматике закавыченных полей:
// поле может быть обёрнуто в двойные кавычки; удвоенная кавычка внутри
// закавыченного поля — экранированная литеральная кавычка; запятая внутри
// кавычек не является разделителем. Состояние кавычек переключается на каждой
// неэкранированной кавычке.
func splitCSVLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	return append(fields, cur.String())
}

// parseText превращает текстовый вход в структурированное значение.
// Не-строковый вход приводится к {content, timestamp}. Многострочный текст
// становится упорядоченной последовательностью записей строк, где
// characterCount — длина исходной (необрезанной) строки.
func (e *Engine) parseText(data any) any {
	s, ok := data.(string)
	if !ok {
		return map[string]any{
			"content":   fmt.Sprint(data),
			"timestamp": e.timestamp(),
		}
	}

	trimmed := strings.TrimSpace(s)
	if strings.Contains(trimmed, "\n") {
		lines := strings.Split(trimmed, "\n")
		rows := make([]map[string]any, 0, len(lines))
		for i, line := range lines {
			rows = append(rows, map[string]any{
				"lineNumber":     i + 1,
				"content":        strings.TrimSpace(line),
				"characterCount": len(line),
			})
		}
		return rows
	}

	return map[string]any{
		"content":   trimmed,
		"timestamp": e.timestamp(),
		"length":    len(trimmed),
	}
}
