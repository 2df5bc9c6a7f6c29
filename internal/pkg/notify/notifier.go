// Package notify предоставляет интерфейс и реализации для отправки уведомлений
// в чат-канал с опциональным файлом-вложением.
// Поддерживает rate limiting, retry с backoff и error-observer для ошибок доставки.
package notify

import (
	"context"

	"github.com/Kargones/benadis-notify/internal/pkg/convert"
)

// Severity определяет уровень важности уведомления.
type Severity int

const (
	// SeverityLow — низкий приоритет.
	SeverityLow Severity = iota
	// SeverityMedium — средний приоритет.
	SeverityMedium
	// SeverityHigh — высокий приоритет.
	SeverityHigh
)

// String возвращает строковое представление Severity.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// emoji возвращает slack-эмодзи статуса для уровня важности.
func (s Severity) emoji() string {
	switch s {
	case SeverityHigh:
		return ":red_circle:"
	case SeverityMedium:
		return ":large_yellow_circle:"
	default:
		return ":large_green_circle:"
	}
}

// ParseSeverity разбирает строковый уровень важности.
// Регистр значим: ожидаются значения HIGH, MEDIUM, LOW.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "HIGH":
		return SeverityHigh, true
	case "MEDIUM":
		return SeverityMedium, true
	case "LOW":
		return SeverityLow, true
	default:
		return SeverityLow, false
	}
}

// FileSpec описывает файл-вложение уведомления.
// Поля повторяют convert.Request: данные плюс опции формата.
type FileSpec struct {
	// Data — данные для формирования файла.
	Data any

	// Name — имя файла (опционально, генерируется при отсутствии).
	Name string

	// Type — явный формат для прямого режима.
	Type string

	// From, To — пара форматов для режима конвертации.
	From string
	To   string

	// CSVHeaders — явный список заголовков CSV.
	CSVHeaders []string
}

// Alert представляет данные для отправки уведомления.
type Alert struct {
	// Severity — уровень важности уведомления.
	Severity Severity

	// Message — человекочитаемый текст уведомления.
	Message string

	// Fault — опциональная ошибка с трассировкой стека.
	// При наличии текст уведомления берётся из Fault.Message.
	Fault *convert.Fault

	// ChannelName — имя канала (переопределяет канал по умолчанию).
	ChannelName string

	// ChannelID — идентификатор канала (приоритетнее ChannelName).
	ChannelID string

	// Comment — комментарий к файлу-вложению.
	Comment string

	// DedupKey — ключ rate limiting. По умолчанию — текст сообщения.
	DedupKey string

	// File — опциональная спецификация файла-вложения.
	File *FileSpec
}

// dedupKey возвращает ключ rate limiting для уведомления.
func (a Alert) dedupKey() string {
	if a.DedupKey != "" {
		return a.DedupKey
	}
	if a.Fault != nil {
		return a.Fault.Message
	}
	return a.Message
}

// Notifier определяет интерфейс отправки уведомлений.
// Реализации: Dispatcher (production), NopNotifier (при выключенных уведомлениях).
//
// ВАЖНО: ошибки ДОСТАВКИ не возвращаются вызывающему коду — они логируются
// и передаются error-observer'у, приложение продолжает работу. Ошибки
// валидации и конвертации файла-вложения возвращаются: они фатальны для
// данной операции и указывают на ошибку вызывающего кода.
type Notifier interface {
	// Send отправляет уведомление: формирует файл-вложение (если задан),
	// публикует сообщение, загружает файл и удаляет временный артефакт.
	Send(ctx context.Context, alert Alert) error
}

// ChannelClient определяет интерфейс удалённого чат-сервиса.
// Реализация: SlackClient.
type ChannelClient interface {
	// PostMessage публикует текстовое сообщение в канал.
	PostMessage(ctx context.Context, channel, text string) error

	// UploadFile загружает файл в канал с комментарием.
	UploadFile(ctx context.Context, channel, path, comment string) error
}
