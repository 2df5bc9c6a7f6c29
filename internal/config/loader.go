package config

import (
	"errors"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Kargones/benadis-notify/internal/pkg/apperrors"
	"github.com/Kargones/benadis-notify/internal/pkg/logging"
)

// EnvConfigPath — переменная окружения с путём к YAML файлу конфигурации.
const EnvConfigPath = "BN_CONFIG_PATH"

// ErrSlackConfigInvalid возвращается когда включённая конфигурация
// доставки не проходит валидацию. Доставка — основное назначение
// приложения, поэтому её ошибки конфигурации фатальны (в отличие от
// метрик и трейсинга, которые деградируют до no-op).
var ErrSlackConfigInvalid = errors.New("config: невалидная конфигурация slack")

// DefaultConfig возвращает конфигурацию со значениями по умолчанию.
func DefaultConfig() *Config {
	cfg := &Config{}
	// cleanenv заполняет env-default значения даже без переменных окружения
	_ = cleanenv.ReadEnv(cfg)
	return cfg
}

// Load загружает конфигурацию приложения.
// Порядок источников (поздние переопределяют ранние):
//  1. значения по умолчанию (env-default теги)
//  2. YAML файл по пути из BN_CONFIG_PATH (опционально)
//  3. переменные окружения BN_* (включая значения из .env файла)
//
// Slack-секция валидируется fail-fast: невалидная включённая доставка —
// ошибка загрузки. Метрики и трейсинг при невалидной конфигурации
// отключаются с предупреждением.
func Load(logger logging.Logger) (*Config, error) {
	// .env подхватывается при наличии, отсутствие файла — не ошибка
	if err := godotenv.Load(); err == nil {
		logger.Debug("переменные окружения загружены из .env")
	}

	cfg := &Config{}

	if path := os.Getenv(EnvConfigPath); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
				"не удалось прочитать файл конфигурации "+path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
				"не удалось разобрать файл конфигурации "+path, err)
		}
		logger.Debug("конфигурация загружена из файла", "path", path)
	}

	// Переменные окружения переопределяют YAML и заполняют значения по умолчанию
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось прочитать переменные окружения", err)
	}

	if err := validate(cfg, logger); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate выполняет fail-fast проверку конфигурации.
func validate(cfg *Config, logger logging.Logger) error {
	notifyCfg := cfg.Slack.ToNotifyConfig()
	if err := notifyCfg.Validate(); err != nil {
		logger.Error("невалидная конфигурация доставки уведомлений",
			"error", err.Error(),
		)
		return apperrors.NewAppError(apperrors.ErrConfigValidate,
			ErrSlackConfigInvalid.Error(), err)
	}

	// Метрики и трейсинг не критичны для доставки — warn + отключение
	metricsCfg := cfg.Metrics.ToMetricsConfig()
	if err := metricsCfg.Validate(); err != nil {
		logger.Warn("невалидная конфигурация метрик, метрики отключены",
			"error", err.Error(),
		)
		cfg.Metrics.Enabled = false
	}

	tracingCfg := cfg.Tracing.ToTracingConfig("validation", "")
	if err := tracingCfg.Validate(); err != nil {
		logger.Warn("невалидная конфигурация трейсинга, трейсинг отключён",
			"error", err.Error(),
		)
		cfg.Tracing.Enabled = false
	}

	return nil
}

// GetInputParams читает параметры уведомления из переменных окружения.
func GetInputParams() (*InputParams, error) {
	params := &InputParams{}
	if err := cleanenv.ReadEnv(params); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось прочитать параметры уведомления", err)
	}
	return params, nil
}

// ParseCSVHeaders разбирает список заголовков CSV из строки через запятую.
// Пустые элементы отбрасываются, пробелы по краям обрезаются.
func ParseCSVHeaders(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var headers []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			headers = append(headers, trimmed)
		}
	}
	return headers
}
