package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Kargones/benadis-notify/internal/pkg/logging"
	"github.com/Kargones/benadis-notify/internal/pkg/urlutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PrometheusCollector реализует Collector с Prometheus метриками.
// Отправляет метрики в Pushgateway при вызове Push().
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	// Метрики
	sendDuration    *prometheus.HistogramVec
	sendSuccess     *prometheus.CounterVec
	sendError       *prometheus.CounterVec
	conversionTotal *prometheus.CounterVec

	// Instance label (hostname)
	instance string
}

// NewPrometheusCollector создаёт PrometheusCollector с указанной конфигурацией.
// Регистрирует метрики:
//   - benadis_notify_send_duration_seconds (histogram)
//   - benadis_notify_send_success_total (counter)
//   - benadis_notify_send_error_total (counter)
//   - benadis_notify_conversion_total (counter)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для metrics instance label, используется 'unknown'",
				"error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	registry := prometheus.NewRegistry()

	// Histogram для duration (в секундах).
	// Buckets покрывают диапазон от мгновенной доставки до retry с backoff
	sendDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "benadis",
			Subsystem: "notify",
			Name:      "send_duration_seconds",
			Help:      "Duration of notification delivery pipeline in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"severity", "status"},
	)

	// Counter для успешных доставок.
	// Примечание: success/error counters дублируют histogram counts
	// (send_duration_seconds_count с label status), но оставлены для удобства —
	// простые PromQL запросы без агрегации по histogram.
	sendSuccess := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "benadis",
			Subsystem: "notify",
			Name:      "send_success_total",
			Help:      "Total number of successfully delivered notifications",
		},
		[]string{"severity"},
	)

	// Counter для ошибок доставки
	sendError := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "benadis",
			Subsystem: "notify",
			Name:      "send_error_total",
			Help:      "Total number of failed notification deliveries",
		},
		[]string{"severity"},
	)

	// Counter для сформированных файлов-вложений
	conversionTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "benadis",
			Subsystem: "notify",
			Name:      "conversion_total",
			Help:      "Total number of generated attachment files by output format",
		},
		[]string{"format"},
	)

	// Регистрируем все метрики атомарно.
	// Используем Register вместо MustRegister для избежания panic.
	// Ошибка возможна только при дублировании имён метрик в одном registry.
	collectors := []prometheus.Collector{sendDuration, sendSuccess, sendError, conversionTotal}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return &PrometheusCollector{
		config:          config,
		logger:          logger,
		registry:        registry,
		sendDuration:    sendDuration,
		sendSuccess:     sendSuccess,
		sendError:       sendError,
		conversionTotal: conversionTotal,
		instance:        instance,
	}, nil
}

// maxLabelLength — максимальная длина значения label для защиты от cardinality explosion.
const maxLabelLength = 128

// sanitizeLabel обрезает значение label до допустимой длины и удаляет
// контрольные символы (\n, \r, \0), которые могут нарушить Prometheus text format.
// Обрезка выполняется по рунам (не по байтам) для корректной работы с UTF-8.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 { // контрольные символы: \n, \r, \t, \0 и др.
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// RecordSend записывает результат отправки уведомления.
// Обновляет histogram duration и counter success/error.
func (c *PrometheusCollector) RecordSend(severity string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	severity = sanitizeLabel(severity)

	c.sendDuration.WithLabelValues(severity, status).Observe(duration.Seconds())

	if success {
		c.sendSuccess.WithLabelValues(severity).Inc()
	} else {
		c.sendError.WithLabelValues(severity).Inc()
	}

	c.logger.Debug("metrics: send recorded",
		"severity", severity,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// RecordConversion записывает факт формирования файла-вложения.
func (c *PrometheusCollector) RecordConversion(format string) {
	c.conversionTotal.WithLabelValues(sanitizeLabel(format)).Inc()
}

// Push отправляет метрики в Pushgateway.
// Возвращает nil даже при ошибке — ошибки логируются.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		c.logger.Debug("metrics: pushgateway URL not configured, skipping push")
		return nil
	}

	select {
	case <-ctx.Done():
		c.logger.Debug("metrics push отменён")
		return nil
	default:
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
			"job", c.config.JobName,
		)
		// Возвращаем nil — ошибка метрик не критична для доставки уведомлений
		return nil
	}

	c.logger.Info("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
		"instance", c.instance,
	)
	return nil
}

// GetRegistry возвращает внутренний registry для тестирования.
// Примечание: экспортируется только для unit-тестов.
func (c *PrometheusCollector) GetRegistry() *prometheus.Registry {
	return c.registry
}
