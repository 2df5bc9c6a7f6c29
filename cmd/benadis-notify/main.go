// Package main содержит точку входа для приложения benadis-notify.
// Приложение отправляет уведомления о событиях CI/CD в канал назначения
// с опциональным файлом-вложением.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Kargones/benadis-notify/internal/config"
	"github.com/Kargones/benadis-notify/internal/constants"
	"github.com/Kargones/benadis-notify/internal/di"
	"github.com/Kargones/benadis-notify/internal/pkg/logging"
	"github.com/Kargones/benadis-notify/internal/pkg/notify"
	"github.com/Kargones/benadis-notify/internal/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// printVersion выводит версию приложения в stdout.
func printVersion() {
	fmt.Printf("%s %s (%s)\n", constants.AppName, constants.Version, constants.PreCommitHash)
}

// run содержит основную логику приложения и возвращает exit code.
// Вынесена из main() чтобы os.Exit() вызывался ПОСЛЕ отработки
// всех defer-ов (tracerShutdown, span.End). Без этого трейсы ошибочных
// выполнений терялись, потому что os.Exit() не выполняет defer.
func run(args []string) int {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" {
			printVersion()
			return constants.ExitOK
		}
	}

	ctx := context.Background()

	// Bootstrap logger для ошибок загрузки конфигурации
	bootLogger := logging.NewLogger(logging.DefaultConfig())

	cfg, err := config.Load(bootLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось загрузить конфигурацию приложения: %v\n", err)
		return constants.ExitConfigError
	}

	logger := di.ProvideLogger(cfg)
	logger.Debug("Информация о сборке",
		"version", constants.Version,
		"commit_hash", constants.PreCommitHash,
	)

	// Генерируем trace_id для корреляции логов
	traceID := di.ProvideTraceID()
	ctx = tracing.WithTraceID(ctx, traceID)
	// Связываем с OTel span context — все span-ы будут использовать этот trace ID
	ctx = tracing.ContextWithOTelTraceID(ctx, traceID)
	logger = logger.With("trace_id", traceID)

	metricsCollector := di.ProvideMetricsCollector(cfg, logger)

	// Инициализация OpenTelemetry трейсинга
	tracerShutdown := di.ProvideTracerProvider(cfg, logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(shutdownCtx); err != nil {
			logger.Error("ошибка завершения tracing",
				"error", err.Error(),
				"trace_id", traceID,
			)
		}
	}()

	files := di.ProvideTempManager(cfg, logger)
	engine := di.ProvideEngine(files, logger)
	notifier := di.ProvideNotifier(cfg, engine, files, metricsCollector, logger)

	// Подчищаем устаревшие артефакты предыдущих запусков
	files.Sweep()

	params, err := config.GetInputParams()
	if err != nil {
		logger.Error("не удалось прочитать параметры уведомления", "error", err.Error())
		return constants.ExitConfigError
	}

	alert, err := buildAlert(params)
	if err != nil {
		logger.Error("невалидные параметры уведомления", "error", err.Error())
		return constants.ExitConfigError
	}

	tracer := otel.Tracer(constants.AppName)
	ctx, span := tracer.Start(ctx, "notify.run",
		trace.WithAttributes(
			attribute.String("severity", alert.Severity.String()),
			attribute.String("trace_id", traceID),
		),
	)
	defer span.End()

	sendErr := notifier.Send(ctx, *alert)

	// Ошибки push логируются внутри, не критичны
	_ = metricsCollector.Push(ctx)

	if sendErr != nil {
		logger.Error("не удалось подготовить уведомление", "error", sendErr.Error())
		return constants.ExitSendError
	}

	return constants.ExitOK
}

// buildAlert формирует Alert из параметров запуска.
// Возвращает ошибку при неизвестном уровне важности или пустом сообщении.
func buildAlert(params *config.InputParams) (*notify.Alert, error) {
	severity, ok := notify.ParseSeverity(params.Severity)
	if !ok {
		return nil, fmt.Errorf("неизвестный уровень важности %q (допустимы HIGH, MEDIUM, LOW)", params.Severity)
	}

	if params.Message == "" {
		return nil, fmt.Errorf("текст уведомления не задан (%s)", constants.EnvMessage)
	}

	alert := &notify.Alert{
		Severity:    severity,
		Message:     params.Message,
		ChannelName: params.Channel,
		ChannelID:   params.ChannelID,
		Comment:     params.Comment,
	}

	if params.FileData != "" {
		alert.File = &notify.FileSpec{
			Data:       params.FileData,
			Name:       params.FileName,
			Type:       params.FileType,
			From:       params.From,
			To:         params.To,
			CSVHeaders: config.ParseCSVHeaders(params.CSVHeaders),
		}
	}

	return alert, nil
}
