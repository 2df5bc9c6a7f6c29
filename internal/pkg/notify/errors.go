package notify

import "errors"

// Ошибки валидации конфигурации notify.
var (
	// ErrTokenRequired возвращается когда не указан API токен.
	ErrTokenRequired = errors.New("notify: token is required when notifications are enabled")

	// ErrDefaultChannelRequired возвращается когда не указан канал по умолчанию.
	ErrDefaultChannelRequired = errors.New("notify: default channel is required when notifications are enabled")

	// ErrAPIBaseURLInvalid возвращается при некорректном базовом URL API.
	ErrAPIBaseURLInvalid = errors.New("notify: api base url has invalid format (must have scheme and host)")

	// ErrChannelRequired возвращается когда невозможно определить канал назначения.
	ErrChannelRequired = errors.New("notify: channel is required (no channel in alert and no default channel configured)")
)
