// Package convert реализует движок конвертации данных в файлы-вложения.
// Поддерживает три формата: иерархический JSON, табличный CSV и свободный текст.
// Движок выполняет чистые преобразования в памяти; единственный side effect —
// запись итогового содержимого через tempfiles.Manager.
package convert

// Format определяет формат данных файла-вложения.
type Format string

// Поддерживаемые форматы. Набор закрыт, расширение не предусмотрено.
const (
	// FormatJSON — иерархический JSON.
	FormatJSON Format = "json"
	// FormatCSV — плоская таблица с разделителем-запятой.
	FormatCSV Format = "csv"
	// FormatTXT — свободный текст.
	FormatTXT Format = "txt"
)

// supportedFormats — список допустимых форматов для сообщений об ошибках.
var supportedFormats = []Format{FormatJSON, FormatCSV, FormatTXT}

// Valid сообщает входит ли формат в поддерживаемый набор.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatCSV, FormatTXT:
		return true
	default:
		return false
	}
}

// Ext возвращает расширение файла для формата (без точки).
func (f Format) Ext() string {
	return string(f)
}

// ParseFormat разбирает строковый тег формата.
// Возвращает UnsupportedFormatError для тегов вне {json, csv, txt}.
func ParseFormat(tag string) (Format, error) {
	f := Format(tag)
	if !f.Valid() {
		return "", &UnsupportedFormatError{Tag: tag}
	}
	return f, nil
}
