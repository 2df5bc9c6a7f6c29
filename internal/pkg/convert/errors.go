package convert

import "fmt"

// ConfigurationError — недопустимая комбинация опций конвертации.
// Возвращается синхронно вызывающему коду, retry не предусмотрен.
type ConfigurationError struct {
	Reason string
}

// Error реализует интерфейс error.
func (e *ConfigurationError) Error() string {
	return "convert: " + e.Reason
}

// FormatError — некорректные входные данные для заявленного исходного формата
// (невалидный JSON текст, не-строковый вход для CSV).
type FormatError struct {
	Reason string
	Cause  error
}

// Error реализует интерфейс error.
func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("convert: %s: %v", e.Reason, e.Cause)
	}
	return "convert: " + e.Reason
}

// Unwrap возвращает wrapped ошибку для errors.Is/As.
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// UnsupportedFormatError — тег формата вне поддерживаемого набора {json, csv, txt}.
type UnsupportedFormatError struct {
	Tag string
}

// Error реализует интерфейс error. Сообщение называет невалидный тег и допустимый набор.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("convert: unsupported format %q (supported formats: %v)", e.Tag, supportedFormats)
}
