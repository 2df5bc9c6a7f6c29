package metrics

import (
	"context"
	"time"
)

// NopCollector — no-op реализация Collector.
// Используется когда метрики отключены (Config.Enabled = false).
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

// RecordSend — no-op, ничего не делает.
func (c *NopCollector) RecordSend(severity string, duration time.Duration, success bool) {}

// RecordConversion — no-op, ничего не делает.
func (c *NopCollector) RecordConversion(format string) {}

// Push — no-op, всегда возвращает nil.
func (c *NopCollector) Push(ctx context.Context) error {
	return nil
}
