package notify

import (
	"fmt"

	"github.com/Kargones/benadis-notify/internal/pkg/convert"
	"github.com/Kargones/benadis-notify/internal/pkg/logging"
	"github.com/Kargones/benadis-notify/internal/pkg/metrics"
	"github.com/Kargones/benadis-notify/internal/pkg/tempfiles"
)

// NewNotifier создаёт Notifier на основе конфигурации.
// Если отправка уведомлений отключена (enabled=false) — возвращает NopNotifier.
// Иначе возвращает Dispatcher с SlackClient и rate limiter.
//
// Пример использования:
//
//	config := notify.Config{
//	    Enabled:        true,
//	    Token:          "xoxb-...",
//	    DefaultChannel: "#alerts",
//	}
//	notifier, err := notify.NewNotifier(config, engine, files, collector, logger)
func NewNotifier(
	config Config,
	engine *convert.Engine,
	files *tempfiles.Manager,
	collector metrics.Collector,
	logger logging.Logger,
) (Notifier, error) {
	// Если уведомления отключены — возвращаем NopNotifier
	if !config.Enabled {
		return NewNopNotifier(), nil
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := NewSlackClient(config, logger)
	if err != nil {
		return nil, fmt.Errorf("создание slack клиента: %w", err)
	}

	window := config.RateLimitWindow
	if window == 0 {
		window = DefaultRateLimitWindow
	}
	limiter := NewRateLimiter(window)

	return NewDispatcher(config, client, engine, files, limiter, collector, logger), nil
}
