package di

import (
	"context"

	"github.com/Kargones/benadis-notify/internal/config"
	"github.com/Kargones/benadis-notify/internal/pkg/convert"
	"github.com/Kargones/benadis-notify/internal/pkg/logging"
	"github.com/Kargones/benadis-notify/internal/pkg/metrics"
	"github.com/Kargones/benadis-notify/internal/pkg/notify"
	"github.com/Kargones/benadis-notify/internal/pkg/tempfiles"
)

// App содержит инициализированные зависимости приложения.
//
// Все поля инициализируются через провайдеры в providers.go.
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
type App struct {
	// Config содержит конфигурацию приложения.
	// Передаётся извне через InitializeApp().
	Config *config.Config

	// Logger предоставляет структурированное логирование.
	// Создаётся через ProvideLogger на основе LoggingConfig.
	Logger logging.Logger

	// TraceID содержит уникальный идентификатор для корреляции логов.
	// Генерируется через ProvideTraceID.
	TraceID string

	// Files управляет временными файлами-вложениями.
	// Создаётся через ProvideTempManager на основе TempConfig.
	Files *tempfiles.Manager

	// Engine формирует файлы-вложения из входных данных.
	// Создаётся через ProvideEngine.
	Engine *convert.Engine

	// Notifier отправляет уведомления в канал назначения.
	// Создаётся через ProvideNotifier на основе SlackConfig.
	// Если доставка отключена — используется NopNotifier.
	Notifier notify.Notifier

	// MetricsCollector собирает и отправляет метрики в Prometheus Pushgateway.
	// Создаётся через ProvideMetricsCollector на основе MetricsConfig.
	// Если метрики отключены — используется NopCollector.
	MetricsCollector metrics.Collector

	// TracerShutdown завершает OTel TracerProvider и отправляет буферизированные span-ы.
	// Создаётся через ProvideTracerProvider на основе TracingConfig.
	// Если трейсинг отключён — nop function.
	TracerShutdown func(context.Context) error
}
