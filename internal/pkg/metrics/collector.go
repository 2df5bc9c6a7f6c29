// Package metrics предоставляет интерфейсы и реализации для сбора и отправки метрик
// в Prometheus Pushgateway.
//
// Пакет следует общим паттернам проекта:
//   - Interface Segregation: Collector interface для абстракции
//   - Factory pattern: NewCollector выбирает реализацию на основе конфигурации
//   - Graceful degradation: NopCollector при отключённых метриках
package metrics

import (
	"context"
	"time"
)

// Collector определяет интерфейс для сбора метрик.
// Реализации: PrometheusCollector (активный) и NopCollector (no-op).
type Collector interface {
	// RecordSend записывает результат отправки уведомления.
	// duration — полное время пайплайна отправки.
	// success — доставлено ли уведомление в канал.
	RecordSend(severity string, duration time.Duration, success bool)

	// RecordConversion записывает факт формирования файла-вложения
	// в указанном итоговом формате.
	RecordConversion(format string)

	// Push отправляет метрики в Pushgateway.
	// Возвращает nil даже при ошибке — ошибки логируются внутри реализации.
	// Сигнатура `error` сохранена для совместимости с интерфейсом, но все
	// реализации (PrometheusCollector, NopCollector) всегда возвращают nil.
	Push(ctx context.Context) error
}
