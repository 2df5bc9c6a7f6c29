package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/benadis-notify/internal/config"
	"github.com/Kargones/benadis-notify/internal/constants"
	"github.com/Kargones/benadis-notify/internal/pkg/notify"
	"github.com/Kargones/benadis-notify/internal/pkg/testutil"
)

func TestRun_VersionFlag(t *testing.T) {
	var exitCode int
	output := testutil.CaptureStdout(t, func() {
		exitCode = run([]string{"-version"})
	})

	assert.Equal(t, constants.ExitOK, exitCode)
	assert.Contains(t, output, constants.AppName)
	assert.Contains(t, output, constants.Version)
}

func TestRun_VersionFlagLongForm(t *testing.T) {
	output := testutil.CaptureStdout(t, func() {
		run([]string{"--version"})
	})

	assert.True(t, strings.HasPrefix(output, constants.AppName))
}

func TestRun_MissingMessage(t *testing.T) {
	// Доставка отключена, но сообщение обязательно в любом случае
	t.Setenv("BN_SLACK_ENABLED", "false")
	t.Setenv("BN_MESSAGE", "")
	t.Setenv("BN_TMP_DIR", t.TempDir())

	exitCode := run(nil)
	assert.Equal(t, constants.ExitConfigError, exitCode)
}

func TestRun_DisabledDelivery(t *testing.T) {
	// При отключённой доставке отправка проходит через NopNotifier
	t.Setenv("BN_SLACK_ENABLED", "false")
	t.Setenv("BN_SEVERITY", "HIGH")
	t.Setenv("BN_MESSAGE", "тестовое уведомление")
	t.Setenv("BN_TMP_DIR", t.TempDir())

	exitCode := run(nil)
	assert.Equal(t, constants.ExitOK, exitCode)
}

func TestRun_InvalidSeverity(t *testing.T) {
	t.Setenv("BN_SLACK_ENABLED", "false")
	t.Setenv("BN_SEVERITY", "CRITICAL")
	t.Setenv("BN_MESSAGE", "сообщение")
	t.Setenv("BN_TMP_DIR", t.TempDir())

	exitCode := run(nil)
	assert.Equal(t, constants.ExitConfigError, exitCode)
}

func TestBuildAlert(t *testing.T) {
	params := &config.InputParams{
		Severity:  "HIGH",
		Message:   "деплой упал",
		Channel:   "#deploys",
		ChannelID: "C123",
		Comment:   "лог ошибки",
	}

	alert, err := buildAlert(params)
	require.NoError(t, err)

	assert.Equal(t, notify.SeverityHigh, alert.Severity)
	assert.Equal(t, "деплой упал", alert.Message)
	assert.Equal(t, "#deploys", alert.ChannelName)
	assert.Equal(t, "C123", alert.ChannelID)
	assert.Equal(t, "лог ошибки", alert.Comment)
	assert.Nil(t, alert.File)
}

func TestBuildAlert_WithFile(t *testing.T) {
	params := &config.InputParams{
		Severity:   "MEDIUM",
		Message:    "отчёт готов",
		FileData:   `[{"a": 1}]`,
		FileName:   "report",
		From:       "json",
		To:         "csv",
		CSVHeaders: "a, b",
	}

	alert, err := buildAlert(params)
	require.NoError(t, err)
	require.NotNil(t, alert.File)

	assert.Equal(t, `[{"a": 1}]`, alert.File.Data)
	assert.Equal(t, "report", alert.File.Name)
	assert.Equal(t, "json", alert.File.From)
	assert.Equal(t, "csv", alert.File.To)
	assert.Equal(t, []string{"a", "b"}, alert.File.CSVHeaders)
}

func TestBuildAlert_InvalidSeverity(t *testing.T) {
	params := &config.InputParams{
		Severity: "URGENT",
		Message:  "сообщение",
	}

	_, err := buildAlert(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URGENT")
}

func TestBuildAlert_EmptyMessage(t *testing.T) {
	params := &config.InputParams{
		Severity: "LOW",
	}

	_, err := buildAlert(params)
	require.Error(t, err)
}
