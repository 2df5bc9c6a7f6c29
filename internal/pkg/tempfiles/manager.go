// Package tempfiles управляет временными файлами-вложениями.
// Артефакты создаются в общей временной директории, удаляются сразу после
// успешной доставки (если auto-delete включён) и подчищаются по возрасту
// при старте приложения.
package tempfiles

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Kargones/benadis-notify/internal/constants"
	"github.com/Kargones/benadis-notify/internal/pkg/apperrors"
	"github.com/Kargones/benadis-notify/internal/pkg/logging"
)

// Manager управляет жизненным циклом временных артефактов в одной директории.
//
// Ошибки удаления и sweep логируются и проглатываются — они никогда не должны
// прервать успешную доставку уведомления.
type Manager struct {
	dir        string
	autoDelete bool
	maxAge     time.Duration
	logger     logging.Logger
	// now используется для тестирования (позволяет mock времени)
	now func() time.Time
}

// NewManager создаёт Manager для указанной директории.
// При пустом dir используется <os.TempDir()>/benadis-notify.
// При maxAge <= 0 используется значение по умолчанию (24 часа).
// Директория создаётся при первом обращении к WriteFile.
func NewManager(dir string, autoDelete bool, maxAge time.Duration, logger logging.Logger) *Manager {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), constants.DefaultTmpDirName)
	}
	if maxAge <= 0 {
		maxAge = constants.DefaultMaxFileAge
	}
	return &Manager{
		dir:        dir,
		autoDelete: autoDelete,
		maxAge:     maxAge,
		logger:     logger,
		now:        time.Now,
	}
}

// Dir возвращает директорию временных артефактов.
func (m *Manager) Dir() string {
	return m.dir
}

// AutoDelete сообщает нужно ли удалять артефакт сразу после доставки.
func (m *Manager) AutoDelete() bool {
	return m.autoDelete
}

// SetNowFunc устанавливает функцию получения текущего времени. Для тестирования.
func (m *Manager) SetNowFunc(fn func() time.Time) {
	m.now = fn
}

// WriteFile записывает содержимое артефакта под указанным именем.
// Возвращает полный путь к записанному файлу.
func (m *Manager) WriteFile(name string, content []byte) (string, error) {
	if err := os.MkdirAll(m.dir, 0750); err != nil {
		return "", apperrors.NewAppError(apperrors.ErrTempFileWrite,
			"не удалось создать директорию временных файлов", err)
	}

	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		return "", apperrors.NewAppError(apperrors.ErrTempFileWrite,
			"не удалось записать временный файл вложения", err)
	}
	return path, nil
}

// Remove удаляет артефакт. Ошибки логируются и проглатываются:
// неудавшееся удаление не должно отменить успешную доставку.
func (m *Manager) Remove(path string) {
	if err := os.Remove(path); err != nil {
		m.logger.Warn("не удалось удалить временный файл",
			"path", path,
			"error", err.Error(),
		)
		return
	}
	m.logger.Debug("временный файл удалён", "path", path)
}

// Sweep удаляет из директории файлы старше maxAge.
// Вызывается оппортунистически при старте приложения.
// Все ошибки логируются и проглатываются.
func (m *Manager) Sweep() {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("sweep: не удалось прочитать директорию временных файлов",
				"dir", m.dir,
				"error", err.Error(),
			)
		}
		return
	}

	cutoff := m.now().Add(-m.maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			m.logger.Warn("sweep: не удалось удалить устаревший файл",
				"path", path,
				"error", err.Error(),
			)
			continue
		}
		removed++
	}

	if removed > 0 {
		m.logger.Info("sweep: устаревшие временные файлы удалены",
			"dir", m.dir,
			"removed", removed,
			"max_age", m.maxAge.String(),
		)
	}
}
