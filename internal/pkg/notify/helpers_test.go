package notify

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/Kargones/benadis-notify/internal/pkg/convert"
	"github.com/Kargones/benadis-notify/internal/pkg/logging"
	"github.com/Kargones/benadis-notify/internal/pkg/metrics"
	"github.com/Kargones/benadis-notify/internal/pkg/tempfiles"
)

// testLogger реализует logging.Logger для тестирования.
// Thread-safe через sync.Mutex для использования в concurrent тестах.
type testLogger struct {
	mu        sync.Mutex
	debugMsgs []string
	infoMsgs  []string
	warnMsgs  []string
	errorMsgs []string
}

func (l *testLogger) Debug(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugMsgs = append(l.debugMsgs, msg)
}
func (l *testLogger) Info(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infoMsgs = append(l.infoMsgs, msg)
}
func (l *testLogger) Warn(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnMsgs = append(l.warnMsgs, msg)
}
func (l *testLogger) Error(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorMsgs = append(l.errorMsgs, msg)
}
func (l *testLogger) With(_ ...any) logging.Logger { return l }

// mockHTTPClient реализует HTTPClient для тестирования.
type mockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
	// Requests хранит все полученные запросы для проверки.
	Requests []*http.Request
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.Requests = append(m.Requests, req)
	return m.DoFunc(req)
}

// okResponse создаёт успешный ответ Web API.
func okResponse() *http.Response {
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(strings.NewReader(`{"ok": true}`)),
	}
}

// apiErrorResponse создаёт ответ Web API с логической ошибкой (HTTP 200).
func apiErrorResponse(code string) *http.Response {
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(strings.NewReader(`{"ok": false, "error": "` + code + `"}`)),
	}
}

// mockChannelClient реализует ChannelClient для тестирования Dispatcher.
type mockChannelClient struct {
	mu sync.Mutex

	PostFunc   func(channel, text string) error
	UploadFunc func(channel, path, comment string) error

	posts   []postCall
	uploads []uploadCall
}

type postCall struct {
	channel string
	text    string
}

type uploadCall struct {
	channel string
	path    string
	comment string
}

func (m *mockChannelClient) PostMessage(_ context.Context, channel, text string) error {
	m.mu.Lock()
	m.posts = append(m.posts, postCall{channel: channel, text: text})
	m.mu.Unlock()
	if m.PostFunc != nil {
		return m.PostFunc(channel, text)
	}
	return nil
}

func (m *mockChannelClient) UploadFile(_ context.Context, channel, path, comment string) error {
	m.mu.Lock()
	m.uploads = append(m.uploads, uploadCall{channel: channel, path: path, comment: comment})
	m.mu.Unlock()
	if m.UploadFunc != nil {
		return m.UploadFunc(channel, path, comment)
	}
	return nil
}

// newTestDispatcher создаёт Dispatcher с mock клиентом и временной директорией.
func newTestDispatcher(t *testing.T, config Config) (*Dispatcher, *mockChannelClient) {
	t.Helper()

	logger := logging.NewNopLogger()
	files := tempfiles.NewManager(t.TempDir(), true, 0, logger)
	engine := convert.NewEngine(files, logger)

	client := &mockChannelClient{}
	d := NewDispatcher(config, client, engine, files, nil, metrics.NewNopCollector(), logger)
	return d, client
}
