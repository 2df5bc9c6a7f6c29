package notify

import "context"

// NopNotifier — no-op реализация Notifier.
// Используется когда отправка уведомлений отключена в конфигурации.
type NopNotifier struct{}

// NewNopNotifier создаёт NopNotifier.
func NewNopNotifier() *NopNotifier {
	return &NopNotifier{}
}

// Send ничего не делает и возвращает nil.
func (n *NopNotifier) Send(_ context.Context, _ Alert) error {
	return nil
}
