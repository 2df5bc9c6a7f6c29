// Package constants содержит все константы, используемые в проекте benadis-notify.
// Константы сгруппированы по их функциональному назначению для удобства использования и поддержки.
package constants

import "time"

// AppName - имя приложения. Используется в логах, метриках и поле source файлов.
const AppName = "benadis-notify"

// Константы переменных окружения для параметров запуска.
// Префикс BN_ (Benadis Notify) отличает их от переменных apk-ci (BR_).
const (
	// EnvSeverity - уровень важности уведомления (HIGH, MEDIUM, LOW)
	EnvSeverity = "BN_SEVERITY"
	// EnvMessage - текст уведомления
	EnvMessage = "BN_MESSAGE"
	// EnvChannel - имя канала для отправки (переопределяет канал по умолчанию)
	EnvChannel = "BN_CHANNEL"
	// EnvChannelID - идентификатор канала для отправки
	EnvChannelID = "BN_CHANNEL_ID"
	// EnvFileData - данные для формирования файла-вложения
	EnvFileData = "BN_FILE_DATA"
	// EnvFileName - имя файла-вложения
	EnvFileName = "BN_FILE_NAME"
	// EnvFileType - формат файла-вложения (json, csv, txt)
	EnvFileType = "BN_FILE_TYPE"
	// EnvFrom - исходный формат для режима конвертации
	EnvFrom = "BN_FROM"
	// EnvTo - целевой формат для режима конвертации
	EnvTo = "BN_TO"
	// EnvCSVHeaders - явный список заголовков CSV через запятую
	EnvCSVHeaders = "BN_CSV_HEADERS"
	// EnvComment - комментарий к файлу-вложению
	EnvComment = "BN_COMMENT"
)

// Константы временных файлов.
const (
	// DefaultTmpDirName - имя поддиректории для временных артефактов
	DefaultTmpDirName = "benadis-notify"
	// DefaultMaxFileAge - максимальный возраст временного файла до удаления при sweep
	DefaultMaxFileAge = 24 * time.Hour
	// GeneratedNamePrefix - префикс генерируемых имён файлов
	GeneratedNamePrefix = "alert"
)

// Константы кодов завершения приложения.
const (
	// ExitOK - успешное завершение
	ExitOK = 0
	// ExitConfigError - ошибка конфигурации или валидации параметров
	ExitConfigError = 1
	// ExitSendError - ошибка подготовки уведомления (конвертация, запись файла)
	ExitSendError = 2
)
