// Package config отвечает за загрузку и валидацию конфигурации приложения.
// Источники в порядке приоритета: переменные окружения (BN_*) → YAML файл
// (BN_CONFIG_PATH) → значения по умолчанию. Файл .env подхватывается
// автоматически при наличии.
package config

import (
	"time"

	"github.com/Kargones/benadis-notify/internal/pkg/logging"
	"github.com/Kargones/benadis-notify/internal/pkg/metrics"
	"github.com/Kargones/benadis-notify/internal/pkg/notify"
	"github.com/Kargones/benadis-notify/internal/pkg/tracing"
)

// Config — корневая конфигурация приложения.
// Передаётся явно через DI, глобального состояния нет.
type Config struct {
	Slack   SlackConfig   `yaml:"slack"`
	Temp    TempConfig    `yaml:"temp"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// SlackConfig содержит настройки канала доставки уведомлений.
type SlackConfig struct {
	// Enabled — включена ли отправка уведомлений.
	Enabled bool `yaml:"enabled" env:"BN_SLACK_ENABLED" env-default:"false"`

	// Token — API токен бота (xoxb-...).
	Token string `yaml:"token" env:"BN_SLACK_TOKEN"`

	// DefaultChannel — канал назначения по умолчанию.
	DefaultChannel string `yaml:"defaultChannel" env:"BN_SLACK_CHANNEL"`

	// ErrorChannel — сервисный канал для сообщений об ошибках доставки.
	ErrorChannel string `yaml:"errorChannel" env:"BN_SLACK_ERROR_CHANNEL"`

	// APIBaseURL — базовый URL Web API.
	APIBaseURL string `yaml:"apiBaseUrl" env:"BN_SLACK_API_URL"`

	// Timeout — таймаут HTTP операций.
	Timeout time.Duration `yaml:"timeout" env:"BN_SLACK_TIMEOUT" env-default:"10s"`

	// MaxRetries — количество повторных попыток доставки.
	MaxRetries int `yaml:"maxRetries" env:"BN_SLACK_MAX_RETRIES" env-default:"2"`

	// RateLimitWindow — минимальный интервал между одинаковыми уведомлениями.
	RateLimitWindow time.Duration `yaml:"rateLimitWindow" env:"BN_RATE_LIMIT_WINDOW" env-default:"5m"`
}

// ToNotifyConfig конвертирует SlackConfig в notify.Config.
func (s *SlackConfig) ToNotifyConfig() notify.Config {
	return notify.Config{
		Enabled:         s.Enabled,
		Token:           s.Token,
		DefaultChannel:  s.DefaultChannel,
		ErrorChannel:    s.ErrorChannel,
		APIBaseURL:      s.APIBaseURL,
		Timeout:         s.Timeout,
		MaxRetries:      s.MaxRetries,
		RateLimitWindow: s.RateLimitWindow,
	}
}

// TempConfig содержит настройки временных файлов-вложений.
type TempConfig struct {
	// Dir — директория временных артефактов.
	// Пустое значение — <системный tmp>/benadis-notify.
	Dir string `yaml:"dir" env:"BN_TMP_DIR"`

	// AutoDelete — удалять ли файл после успешной загрузки в канал.
	AutoDelete bool `yaml:"autoDelete" env:"BN_TMP_AUTO_DELETE" env-default:"true"`

	// MaxAge — максимальный возраст файла до удаления при sweep.
	MaxAge time.Duration `yaml:"maxAge" env:"BN_TMP_MAX_AGE" env-default:"24h"`
}

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	// Level — минимальный уровень логирования (debug, info, warn, error).
	Level string `yaml:"level" env:"BN_LOG_LEVEL" env-default:"info"`

	// Format — формат вывода: "json" или "text".
	Format string `yaml:"format" env:"BN_LOG_FORMAT" env-default:"text"`

	// Output — куда выводить логи: "stderr" или "file".
	Output string `yaml:"output" env:"BN_LOG_OUTPUT" env-default:"stderr"`

	// FilePath — путь к файлу логов (при output="file").
	FilePath string `yaml:"filePath" env:"BN_LOG_FILE"`

	// MaxSize — максимальный размер файла логов в мегабайтах до ротации.
	MaxSize int `yaml:"maxSize" env:"BN_LOG_MAX_SIZE" env-default:"100"`

	// MaxBackups — количество backup файлов.
	MaxBackups int `yaml:"maxBackups" env:"BN_LOG_MAX_BACKUPS" env-default:"3"`

	// MaxAge — максимальный возраст backup файлов в днях.
	MaxAge int `yaml:"maxAge" env:"BN_LOG_MAX_AGE" env-default:"7"`

	// Compress — сжимать ли backup файлы.
	Compress bool `yaml:"compress" env:"BN_LOG_COMPRESS" env-default:"true"`
}

// ToLoggingConfig конвертирует LoggingConfig в logging.Config.
func (l *LoggingConfig) ToLoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	cfg.Output = l.Output
	if l.FilePath != "" {
		cfg.FilePath = l.FilePath
	}
	cfg.MaxSize = l.MaxSize
	cfg.MaxBackups = l.MaxBackups
	cfg.MaxAge = l.MaxAge
	cfg.Compress = l.Compress
	return cfg
}

// MetricsConfig содержит настройки Prometheus метрик.
type MetricsConfig struct {
	// Enabled — включены ли метрики.
	Enabled bool `yaml:"enabled" env:"BN_METRICS_ENABLED" env-default:"false"`

	// PushgatewayURL — URL Prometheus Pushgateway.
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"BN_METRICS_PUSHGATEWAY_URL"`

	// JobName — имя job для группировки метрик.
	JobName string `yaml:"jobName" env:"BN_METRICS_JOB_NAME" env-default:"benadis-notify"`

	// Timeout — таймаут HTTP запросов к Pushgateway.
	Timeout time.Duration `yaml:"timeout" env:"BN_METRICS_TIMEOUT" env-default:"10s"`

	// InstanceLabel — переопределение instance label.
	InstanceLabel string `yaml:"instanceLabel" env:"BN_METRICS_INSTANCE"`
}

// ToMetricsConfig конвертирует MetricsConfig в metrics.Config.
func (m *MetricsConfig) ToMetricsConfig() metrics.Config {
	return metrics.Config{
		Enabled:        m.Enabled,
		PushgatewayURL: m.PushgatewayURL,
		JobName:        m.JobName,
		Timeout:        m.Timeout,
		InstanceLabel:  m.InstanceLabel,
	}
}

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	// Enabled — включён ли трейсинг.
	Enabled bool `yaml:"enabled" env:"BN_TRACING_ENABLED" env-default:"false"`

	// Endpoint — OTLP HTTP endpoint (например, "jaeger:4318").
	Endpoint string `yaml:"endpoint" env:"BN_TRACING_ENDPOINT"`

	// Environment — окружение (production, staging, development).
	Environment string `yaml:"environment" env:"BN_TRACING_ENVIRONMENT" env-default:"production"`

	// Insecure — использовать HTTP вместо HTTPS.
	Insecure bool `yaml:"insecure" env:"BN_TRACING_INSECURE" env-default:"false"`

	// Timeout — таймаут экспорта трейсов.
	Timeout time.Duration `yaml:"timeout" env:"BN_TRACING_TIMEOUT" env-default:"5s"`

	// SamplingRate — доля сэмплируемых трейсов [0.0, 1.0].
	SamplingRate float64 `yaml:"samplingRate" env:"BN_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

// ToTracingConfig конвертирует TracingConfig в tracing.Config.
// ServiceName и Version заполняются приложением.
func (t *TracingConfig) ToTracingConfig(serviceName, version string) tracing.Config {
	return tracing.Config{
		Enabled:      t.Enabled,
		Endpoint:     t.Endpoint,
		ServiceName:  serviceName,
		Version:      version,
		Environment:  t.Environment,
		Insecure:     t.Insecure,
		Timeout:      t.Timeout,
		SamplingRate: t.SamplingRate,
	}
}

// InputParams — параметры одного уведомления из переменных окружения.
// Заполняются CI-системой при запуске процесса.
type InputParams struct {
	// Severity — уровень важности (HIGH, MEDIUM, LOW).
	Severity string `env:"BN_SEVERITY" env-default:"LOW"`

	// Message — текст уведомления.
	Message string `env:"BN_MESSAGE"`

	// Channel — имя канала (переопределяет канал по умолчанию).
	Channel string `env:"BN_CHANNEL"`

	// ChannelID — идентификатор канала (приоритетнее имени).
	ChannelID string `env:"BN_CHANNEL_ID"`

	// FileData — данные для формирования файла-вложения.
	FileData string `env:"BN_FILE_DATA"`

	// FileName — имя файла-вложения.
	FileName string `env:"BN_FILE_NAME"`

	// FileType — формат файла для прямого режима (json, csv, txt).
	FileType string `env:"BN_FILE_TYPE"`

	// From — исходный формат для режима конвертации.
	From string `env:"BN_FROM"`

	// To — целевой формат для режима конвертации.
	To string `env:"BN_TO"`

	// CSVHeaders — явные заголовки CSV через запятую.
	CSVHeaders string `env:"BN_CSV_HEADERS"`

	// Comment — комментарий к файлу-вложению.
	Comment string `env:"BN_COMMENT"`
}
