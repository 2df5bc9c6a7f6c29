package notify

import (
	"net/url"
	"time"
)

// Значения по умолчанию для конфигурации notify.
const (
	// DefaultAPIBaseURL — базовый URL Slack Web API по умолчанию.
	DefaultAPIBaseURL = "https://slack.com/api"

	// DefaultTimeout — таймаут HTTP операций по умолчанию.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries — количество повторных попыток по умолчанию.
	DefaultMaxRetries = 2

	// DefaultRateLimitWindow — интервал между одинаковыми уведомлениями по умолчанию.
	DefaultRateLimitWindow = 5 * time.Minute
)

// Config содержит настройки для пакета notify.
// Используется при создании Notifier через NewNotifier().
type Config struct {
	// Enabled — включена ли отправка уведомлений (по умолчанию false).
	Enabled bool

	// Token — API токен бота (xoxb-...).
	Token string

	// DefaultChannel — канал назначения по умолчанию (имя или ID).
	DefaultChannel string

	// ErrorChannel — канал для сообщений об ошибках доставки.
	// Пустое значение отключает error-observer по умолчанию.
	ErrorChannel string

	// APIBaseURL — базовый URL Web API.
	// По умолчанию: https://slack.com/api.
	APIBaseURL string

	// Timeout — таймаут HTTP операций.
	// По умолчанию: 10 секунд.
	Timeout time.Duration

	// MaxRetries — количество повторных попыток при сбоях доставки.
	// По умолчанию: 2 (итого до 3 попыток).
	MaxRetries int

	// RateLimitWindow — минимальный интервал между уведомлениями с одним
	// dedup-ключом. По умолчанию: 5 минут.
	RateLimitWindow time.Duration
}

// DefaultConfig возвращает конфигурацию с значениями по умолчанию.
// Отправка уведомлений отключена по умолчанию.
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		APIBaseURL:      DefaultAPIBaseURL,
		Timeout:         DefaultTimeout,
		MaxRetries:      DefaultMaxRetries,
		RateLimitWindow: DefaultRateLimitWindow,
	}
}

// Validate проверяет корректность конфигурации.
// Возвращает ошибку если обязательные поля не заполнены.
func (c *Config) Validate() error {
	// Если уведомления отключены — валидация не требуется
	if !c.Enabled {
		return nil
	}

	if c.Token == "" {
		return ErrTokenRequired
	}

	if c.DefaultChannel == "" {
		return ErrDefaultChannelRequired
	}

	if c.APIBaseURL != "" {
		u, err := url.Parse(c.APIBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrAPIBaseURLInvalid
		}
	}

	return nil
}
