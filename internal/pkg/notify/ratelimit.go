package notify

import (
	"sync"
	"time"
)

// RateLimiter контролирует частоту отправки уведомлений.
// Использует in-memory хранение (dedup-ключ → время последней отправки).
// Thread-safe через sync.Mutex.
//
// ВАЖНО: Rate limiting работает только В ПРЕДЕЛАХ ОДНОГО ЗАПУСКА процесса.
// Для CLI-приложения (короткоживущий процесс) это означает, что rate limiting
// НЕ работает между запусками: каждый новый запуск получает пустой RateLimiter.
// Полноценное подавление между запусками требует внешнего хранилища и выходит
// за рамки текущей реализации.
type RateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	sent   map[string]time.Time
	// now используется для тестирования (позволяет mock времени)
	now func() time.Time
}

// NewRateLimiter создаёт RateLimiter с указанным интервалом.
// Window определяет минимальный интервал между уведомлениями с одним ключом.
func NewRateLimiter(window time.Duration) *RateLimiter {
	return &RateLimiter{
		window: window,
		sent:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// cleanupThreshold — порог количества записей, после которого запускается очистка.
const cleanupThreshold = 100

// Allow проверяет можно ли отправить уведомление с данным ключом.
// Возвращает true если прошло достаточно времени с последней отправки
// или уведомление с таким ключом ещё не отправлялось.
//
// При возврате true — помечает ключ как отправленный с текущим временем.
// Проверка и обновление выполняются атомарно под mutex.
//
// Периодически очищает expired entries для предотвращения утечки памяти
// при большом количестве уникальных ключей.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	if len(r.sent) > cleanupThreshold {
		r.cleanupExpiredLocked(now)
	}

	if lastSent, ok := r.sent[key]; ok {
		if now.Sub(lastSent) < r.window {
			return false // rate limited
		}
	}
	r.sent[key] = now
	return true
}

// cleanupExpiredLocked удаляет записи с истёкшим window.
// Вызывается под mutex.
func (r *RateLimiter) cleanupExpiredLocked(now time.Time) {
	for key, lastSent := range r.sent {
		if now.Sub(lastSent) >= r.window {
			delete(r.sent, key)
		}
	}
}

// Reset сбрасывает состояние rate limiter для указанного ключа.
// Используется в основном для тестирования.
func (r *RateLimiter) Reset(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sent, key)
}

// SetNowFunc устанавливает функцию получения текущего времени.
// Используется для тестирования.
func (r *RateLimiter) SetNowFunc(fn func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = fn
}
