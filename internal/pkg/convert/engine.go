package convert

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kargones/benadis-notify/internal/constants"
	"github.com/Kargones/benadis-notify/internal/pkg/logging"
	"github.com/Kargones/benadis-notify/internal/pkg/tempfiles"
)

// Engine выполняет валидацию, разбор и сериализацию запросов на файл-вложение.
// Конвертация и сериализация — чистые вычисления в памяти; единственный
// side effect — запись итогового содержимого через tempfiles.Manager.
type Engine struct {
	files  *tempfiles.Manager
	logger logging.Logger
	// now используется для тестирования (позволяет mock времени)
	now func() time.Time
}

// NewEngine создаёт Engine с указанным менеджером временных файлов и логгером.
func NewEngine(files *tempfiles.Manager, logger logging.Logger) *Engine {
	return &Engine{
		files:  files,
		logger: logger,
		now:    time.Now,
	}
}

// SetNowFunc устанавливает функцию получения текущего времени. Для тестирования.
func (e *Engine) SetNowFunc(fn func() time.Time) {
	e.now = fn
}

// timestamp возвращает текущий момент в формате RFC3339 (UTC).
func (e *Engine) timestamp() string {
	return e.now().UTC().Format(time.RFC3339)
}

// Convert выполняет чистую конвертацию без записи файла: валидация запроса,
// разбор входных данных (в режиме конвертации) и сериализация в итоговый формат.
func (e *Engine) Convert(req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	value := req.Data
	if req.conversionMode() {
		parsed, err := e.parse(req.Data, Format(req.From), req.CSVHeaders)
		if err != nil {
			return nil, err
		}
		value = parsed
	}

	return e.serialize(value, req.OutputFormat(), req.CSVHeaders)
}

// CreateFile выполняет полный конвейер: Convert плюс разрешение имени файла
// и запись содержимого. Возвращает полный путь к записанному файлу.
//
// Ошибки валидации и конвертации возвращаются вызывающему коду как есть —
// они фатальны для данной операции и не ретраятся.
func (e *Engine) CreateFile(req Request) (string, error) {
	content, err := e.Convert(req)
	if err != nil {
		return "", err
	}

	format := req.OutputFormat()
	name := e.resolveFileName(req.FileName, format)

	path, err := e.files.WriteFile(name, content)
	if err != nil {
		return "", err
	}

	e.logger.Debug("файл-вложение сформирован",
		"path", path,
		"format", string(format),
		"bytes", len(content),
	)
	return path, nil
}

// resolveFileName разрешает имя итогового файла.
// Имя с точкой используется как есть; имя без точки получает расширение
// итогового формата; пустое имя генерируется.
func (e *Engine) resolveFileName(name string, format Format) string {
	if name == "" {
		return e.generateFileName(format)
	}
	if strings.Contains(name, ".") {
		return name
	}
	return name + "." + format.Ext()
}

// generateFileName генерирует имя вида alert-<epoch millis>-<8 hex>.<ext>.
func (e *Engine) generateFileName(format Format) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s.%s",
		constants.GeneratedNamePrefix,
		e.now().UnixMilli(),
		random,
		format.Ext(),
	)
}
