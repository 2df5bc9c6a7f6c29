package notify

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/benadis-notify/internal/constants"
	"github.com/Kargones/benadis-notify/internal/pkg/apperrors"
	"github.com/Kargones/benadis-notify/internal/pkg/convert"
	"github.com/Kargones/benadis-notify/internal/pkg/logging"
	"github.com/Kargones/benadis-notify/internal/pkg/metrics"
	"github.com/Kargones/benadis-notify/internal/pkg/tempfiles"
)

// ErrorObserver вызывается при ошибке доставки уведомления.
// Stage — этап пайплайна ("post_message", "upload_file").
type ErrorObserver func(ctx context.Context, stage string, err error)

// Dispatcher реализует Notifier: формирует файл-вложение, публикует
// сообщение, загружает файл и удаляет временный артефакт.
//
// Ошибки доставки логируются и передаются error-observer'у, но не
// возвращаются вызывающему коду. Ошибки валидации запроса и конвертации
// данных возвращаются как есть.
type Dispatcher struct {
	config   Config
	client   ChannelClient
	engine   *convert.Engine
	files    *tempfiles.Manager
	limiter  *RateLimiter
	metrics  metrics.Collector
	logger   logging.Logger
	observer ErrorObserver
}

// NewDispatcher создаёт Dispatcher.
// Если в конфигурации задан ErrorChannel — устанавливается observer
// по умолчанию, который публикует сообщение об ошибке доставки в этот канал.
func NewDispatcher(
	config Config,
	client ChannelClient,
	engine *convert.Engine,
	files *tempfiles.Manager,
	limiter *RateLimiter,
	collector metrics.Collector,
	logger logging.Logger,
) *Dispatcher {
	d := &Dispatcher{
		config:  config,
		client:  client,
		engine:  engine,
		files:   files,
		limiter: limiter,
		metrics: collector,
		logger:  logger,
	}

	if config.ErrorChannel != "" {
		d.observer = d.reportToErrorChannel
	}

	return d
}

// SetErrorObserver устанавливает обработчик ошибок доставки,
// заменяя observer по умолчанию.
func (d *Dispatcher) SetErrorObserver(fn ErrorObserver) {
	d.observer = fn
}

// Send отправляет уведомление. Пайплайн:
//  1. rate limiting по dedup-ключу
//  2. формирование файла-вложения (если задан File)
//  3. публикация сообщения в канал
//  4. загрузка файла в канал
//  5. удаление временного файла
func (d *Dispatcher) Send(ctx context.Context, alert Alert) error {
	start := time.Now()

	tracer := otel.Tracer(constants.AppName)
	ctx, span := tracer.Start(ctx, "notify.send", trace.WithAttributes(
		attribute.String("severity", alert.Severity.String()),
		attribute.Bool("has_file", alert.File != nil),
	))
	defer span.End()

	if d.limiter != nil && !d.limiter.Allow(alert.dedupKey()) {
		d.logger.Debug("уведомление подавлено rate limiter",
			"dedup_key", alert.dedupKey(),
			"severity", alert.Severity.String(),
		)
		return nil // Rate limited — не ошибка
	}

	// Формируем файл-вложение до отправки сообщения: ошибка конвертации
	// фатальна и не должна оставлять в канале сообщение без вложения
	filePath, err := d.createAttachment(ctx, tracer, alert)
	if err != nil {
		d.metrics.RecordSend(alert.Severity.String(), time.Since(start), false)
		return err
	}

	channel := d.resolveChannel(alert)
	text := formatMessage(alert)

	delivered := true
	if err := d.client.PostMessage(ctx, channel, text); err != nil {
		delivered = false
		d.handleDeliveryFailure(ctx, "post_message", err)
	} else if filePath != "" {
		if err := d.client.UploadFile(ctx, channel, filePath, alert.Comment); err != nil {
			delivered = false
			d.handleDeliveryFailure(ctx, "upload_file", err)
		}
	}

	if filePath != "" && d.files.AutoDelete() {
		d.files.Remove(filePath)
	}

	d.metrics.RecordSend(alert.Severity.String(), time.Since(start), delivered)

	if delivered {
		d.logger.Info("уведомление отправлено",
			"severity", alert.Severity.String(),
			"channel", channel,
			"has_file", filePath != "",
		)
	} else {
		d.logger.Warn("уведомление не доставлено",
			"severity", alert.Severity.String(),
			"channel", channel,
		)
	}

	return nil
}

// createAttachment формирует файл-вложение через движок конвертации.
// Возвращает пустой путь если File не задан.
func (d *Dispatcher) createAttachment(ctx context.Context, tracer trace.Tracer, alert Alert) (string, error) {
	if alert.File == nil {
		return "", nil
	}

	_, span := tracer.Start(ctx, "notify.create_file")
	defer span.End()

	req := convert.Request{
		Data:       alert.File.Data,
		FileName:   alert.File.Name,
		FileType:   alert.File.Type,
		From:       alert.File.From,
		To:         alert.File.To,
		CSVHeaders: alert.File.CSVHeaders,
	}

	path, err := d.engine.CreateFile(req)
	if err != nil {
		return "", err
	}

	d.metrics.RecordConversion(string(req.OutputFormat()))
	return path, nil
}

// resolveChannel определяет канал назначения: ID приоритетнее имени,
// при отсутствии обоих используется канал по умолчанию.
func (d *Dispatcher) resolveChannel(alert Alert) string {
	if alert.ChannelID != "" {
		return alert.ChannelID
	}
	if alert.ChannelName != "" {
		return alert.ChannelName
	}
	return d.config.DefaultChannel
}

// formatMessage формирует текст сообщения: эмодзи статуса, уровень важности
// и текст уведомления (из Fault при его наличии).
func formatMessage(alert Alert) string {
	text := alert.Message
	if alert.Fault != nil && alert.Fault.Message != "" {
		text = alert.Fault.Message
	}
	return fmt.Sprintf("%s *[%s]* %s", alert.Severity.emoji(), alert.Severity, text)
}

// handleDeliveryFailure логирует ошибку доставки и вызывает error-observer.
// Ошибка НЕ возвращается вызывающему коду — приложение продолжает работу.
func (d *Dispatcher) handleDeliveryFailure(ctx context.Context, stage string, err error) {
	code := apperrors.ErrNotifySend
	if stage == "upload_file" {
		code = apperrors.ErrNotifyUpload
	}
	wrapped := apperrors.NewAppError(code, "доставка уведомления не удалась", err)

	d.logger.Error("ошибка доставки уведомления",
		"stage", stage,
		"error", wrapped.Error(),
	)

	if d.observer != nil {
		d.observer(ctx, stage, wrapped)
	}
}

// reportToErrorChannel — observer по умолчанию: best-effort публикация
// сообщения об ошибке доставки в сервисный канал.
func (d *Dispatcher) reportToErrorChannel(ctx context.Context, stage string, err error) {
	text := fmt.Sprintf(":warning: %s: ошибка доставки на этапе %s: %s",
		constants.AppName, stage, err.Error())

	if postErr := d.client.PostMessage(ctx, d.config.ErrorChannel, text); postErr != nil {
		d.logger.Error("не удалось сообщить об ошибке доставки в сервисный канал",
			"channel", d.config.ErrorChannel,
			"error", postErr.Error(),
		)
	}
}
