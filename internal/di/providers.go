package di

import (
	"context"

	"github.com/Kargones/benadis-notify/internal/config"
	"github.com/Kargones/benadis-notify/internal/constants"
	"github.com/Kargones/benadis-notify/internal/pkg/convert"
	"github.com/Kargones/benadis-notify/internal/pkg/logging"
	"github.com/Kargones/benadis-notify/internal/pkg/metrics"
	"github.com/Kargones/benadis-notify/internal/pkg/notify"
	"github.com/Kargones/benadis-notify/internal/pkg/tempfiles"
	"github.com/Kargones/benadis-notify/internal/pkg/tracing"
)

// ProvideLogger создаёт Logger на основе LoggingConfig из Config.
// Использует logging.NewLogger() для создания SlogAdapter.
//
// При nil Config используются значения по умолчанию
// (text формат, уровень info, вывод в stderr).
func ProvideLogger(cfg *config.Config) logging.Logger {
	if cfg == nil {
		return logging.NewLogger(logging.DefaultConfig())
	}
	return logging.NewLogger(cfg.Logging.ToLoggingConfig())
}

// ProvideTraceID генерирует уникальный trace_id для корреляции логов.
// Использует tracing.GenerateTraceID() для криптографически безопасной генерации.
//
// TraceID генерируется один раз при инициализации App
// и используется для корреляции всех логов в рамках одного запуска.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideTempManager создаёт Manager временных файлов на основе TempConfig.
// При nil Config используется системная временная директория,
// auto-delete и максимальный возраст по умолчанию.
func ProvideTempManager(cfg *config.Config, logger logging.Logger) *tempfiles.Manager {
	if cfg == nil {
		return tempfiles.NewManager("", true, 0, logger)
	}
	return tempfiles.NewManager(cfg.Temp.Dir, cfg.Temp.AutoDelete, cfg.Temp.MaxAge, logger)
}

// ProvideEngine создаёт движок формирования файлов-вложений.
func ProvideEngine(files *tempfiles.Manager, logger logging.Logger) *convert.Engine {
	return convert.NewEngine(files, logger)
}

// ProvideNotifier создаёт Notifier на основе SlackConfig из Config.
// Если доставка отключена — возвращает NopNotifier.
//
// Конфигурация доставки валидируется при загрузке (config.Load),
// поэтому ошибка создания здесь неожиданна: она логируется,
// возвращается NopNotifier.
func ProvideNotifier(
	cfg *config.Config,
	engine *convert.Engine,
	files *tempfiles.Manager,
	collector metrics.Collector,
	logger logging.Logger,
) notify.Notifier {
	if cfg == nil {
		return notify.NewNopNotifier()
	}

	notifier, err := notify.NewNotifier(cfg.Slack.ToNotifyConfig(), engine, files, collector, logger)
	if err != nil {
		logger.Error("ошибка создания Notifier, используется NopNotifier",
			"error", err.Error(),
		)
		return notify.NewNopNotifier()
	}

	return notifier
}

// ProvideMetricsCollector создаёт Collector на основе MetricsConfig из Config.
// Если метрики отключены — возвращает NopCollector.
// При ошибке создания возвращает NopCollector и логирует ошибку.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.Metrics.ToMetricsConfig(), logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			"error", err.Error(),
		)
		return metrics.NewNopCollector()
	}

	return collector
}

// ProvideTracerProvider создаёт и инициализирует OTel TracerProvider.
// Возвращает shutdown function для graceful завершения.
// Если трейсинг отключён — nop shutdown.
// При ошибке создания возвращает nop shutdown и логирует ошибку.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil {
		return tracing.NewNopTracerProvider()
	}

	tracingCfg := cfg.Tracing.ToTracingConfig(constants.AppName, constants.Version)

	shutdown, err := tracing.NewTracerProvider(tracingCfg, logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			"error", err.Error(),
		)
		return tracing.NewNopTracerProvider()
	}

	return shutdown
}
