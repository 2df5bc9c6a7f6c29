package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Kargones/benadis-notify/internal/pkg/logging"
	"github.com/Kargones/benadis-notify/internal/pkg/urlutil"
)

// HTTPClient определяет интерфейс для HTTP клиента.
// Позволяет использовать mock в тестах.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SlackClient реализует ChannelClient поверх Slack Web API.
// Использует chat.postMessage для сообщений и files.upload для вложений.
type SlackClient struct {
	config     Config
	logger     logging.Logger
	httpClient HTTPClient
}

// httpError представляет HTTP ошибку (не network).
type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// apiError представляет ошибку уровня Web API (HTTP 200, "ok": false).
// Не ретраится: указывает на проблему конфигурации (неверный канал, токен).
type apiError struct {
	Code string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("slack api error: %s", e.Code)
}

// apiResponse — общая форма ответа Web API.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// postMessageRequest — payload для chat.postMessage.
type postMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// NewSlackClient создаёт SlackClient с указанной конфигурацией.
func NewSlackClient(config Config, logger logging.Logger) (*SlackClient, error) {
	if config.APIBaseURL == "" {
		config.APIBaseURL = DefaultAPIBaseURL
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &SlackClient{
		config:     config,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// SetHTTPClient устанавливает кастомный HTTPClient (для тестирования).
func (c *SlackClient) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

// PostMessage публикует текстовое сообщение в канал через chat.postMessage.
func (c *SlackClient) PostMessage(ctx context.Context, channel, text string) error {
	if channel == "" {
		return ErrChannelRequired
	}

	jsonBody, err := json.Marshal(postMessageRequest{Channel: channel, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	endpoint := c.config.APIBaseURL + "/chat.postMessage"
	return c.sendWithRetry(ctx, endpoint, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		return req, nil
	})
}

// UploadFile загружает файл в канал через files.upload (multipart/form-data).
// Тело запроса пересобирается на каждую попытку retry.
func (c *SlackClient) UploadFile(ctx context.Context, channel, path, comment string) error {
	if channel == "" {
		return ErrChannelRequired
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read attachment: %w", err)
	}

	endpoint := c.config.APIBaseURL + "/files.upload"
	return c.sendWithRetry(ctx, endpoint, func() (*http.Request, error) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)

		if err := writer.WriteField("channels", channel); err != nil {
			return nil, fmt.Errorf("failed to build multipart body: %w", err)
		}
		if comment != "" {
			if err := writer.WriteField("initial_comment", comment); err != nil {
				return nil, fmt.Errorf("failed to build multipart body: %w", err)
			}
		}

		part, err := writer.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			return nil, fmt.Errorf("failed to build multipart body: %w", err)
		}
		if _, err := part.Write(content); err != nil {
			return nil, fmt.Errorf("failed to build multipart body: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("failed to build multipart body: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return req, nil
	})
}

// sendWithRetry отправляет запрос с retry логикой.
// Retry происходит для network ошибок и retryable HTTP ошибок (5xx).
// HTTP 4xx и ошибки уровня Web API ("ok": false) не ретраятся —
// они указывают на проблему конфигурации.
func (c *SlackClient) sendWithRetry(ctx context.Context, endpoint string, build func() (*http.Request, error)) error {
	maxRetries := c.config.MaxRetries

	var lastErr error
	backoff := 1 * time.Second
	// maxBackoff=4s достаточен для CLI (короткоживущий процесс)
	const maxBackoff = 4 * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s (capped)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
			}

			c.logger.Debug("slack retry",
				"attempt", attempt,
				"max_retries", maxRetries,
				"error", lastErr.Error(),
				"url", urlutil.MaskURL(endpoint),
			)
		}

		lastErr = c.sendRequest(build)
		if lastErr == nil {
			return nil // Success
		}

		if !isRetryableError(lastErr) {
			return lastErr
		}
		// Network errors и 5xx (502, 503, 504) — retry
	}

	return fmt.Errorf("all %d attempts failed: %w", maxRetries+1, lastErr)
}

// sendRequest отправляет одиночный HTTP запрос и разбирает ответ Web API.
func (c *SlackClient) sendRequest(build func() (*http.Request, error)) error {
	req, err := build()
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("User-Agent", "benadis-notify/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err // Network error — retry
	}
	defer resp.Body.Close()

	// Читаем body с ограничением размера для защиты от аномально большого ответа
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &httpError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	// Web API возвращает HTTP 200 даже при логической ошибке — проверяем "ok"
	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return &apiError{Code: "malformed_response"}
	}
	if !apiResp.OK {
		code := apiResp.Error
		if code == "" {
			code = "unknown_error"
		}
		return &apiError{Code: code}
	}

	return nil
}

// isRetryableError проверяет, имеет ли смысл повторная попытка.
// Клиентские HTTP ошибки (4xx) и ошибки уровня Web API — нет.
func isRetryableError(err error) bool {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return false
	}

	var httpErr *httpError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode < 400 || httpErr.StatusCode >= 500
	}

	return true // network error
}

// maxResponseBodySize — максимальный размер тела HTTP ответа для разбора (4 KB).
const maxResponseBodySize = 4096
