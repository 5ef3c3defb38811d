// Package greenapi is a minimal REST client for the Green-API WhatsApp
// gateway: plain text sends, button-template sends and webhook payload
// decoding. Retry policy: only HTTP 429 is retried, with exponential backoff
// up to the attempt cap; every other non-2xx status is terminal.
package greenapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.green-api.com"
	maxAttempts    = 4
)

var ErrRateLimited = errors.New("greenapi: rate limited")

type Client struct {
	http       *http.Client
	baseURL    string
	instanceID string
	apiToken   string
	logger     *slog.Logger
	sleepFn    func(ctx context.Context, d time.Duration) error
}

type ClientOptions struct {
	HTTPClient *http.Client
	BaseURL    string
	InstanceID string
	APIToken   string
	Logger     *slog.Logger
}

func New(opts ClientOptions) (*Client, error) {
	instanceID := strings.TrimSpace(opts.InstanceID)
	if instanceID == "" {
		return nil, fmt.Errorf("greenapi instance id is required")
	}
	apiToken := strings.TrimSpace(opts.APIToken)
	if apiToken == "" {
		return nil, fmt.Errorf("greenapi api token is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	baseURL := strings.TrimSpace(strings.TrimRight(opts.BaseURL, "/"))
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:       httpClient,
		baseURL:    baseURL,
		instanceID: instanceID,
		apiToken:   apiToken,
		logger:     logger,
		sleepFn:    sleepWithContext,
	}, nil
}

func (c *Client) endpoint(method string) string {
	return fmt.Sprintf("%s/waInstance%s/%s/%s", c.baseURL, c.instanceID, method, c.apiToken)
}

// SendText sends a plain text message. chatID must be provider-qualified
// ("<digits>@c.us").
func (c *Client) SendText(ctx context.Context, chatID, text string) error {
	payload := map[string]string{"chatId": chatID, "message": text}
	return c.post(ctx, "sendMessage", payload, nil)
}

type Button struct {
	ButtonID   string `json:"buttonId"`
	ButtonText string `json:"buttonText"`
}

// CreateButtonTemplate registers a reusable quick-reply template and returns
// its provider-assigned id. Templates are immutable once created; callers
// cache the id instead of re-creating.
func (c *Client) CreateButtonTemplate(ctx context.Context, name, body string, buttons []Button) (string, error) {
	payload := map[string]any{
		"templateName": name,
		"message":      body,
		"buttons":      buttons,
	}
	var out struct {
		TemplateID string `json:"templateId"`
	}
	if err := c.post(ctx, "createTemplate", payload, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.TemplateID) == "" {
		return "", fmt.Errorf("greenapi createTemplate returned no template id")
	}
	return out.TemplateID, nil
}

// SendTemplate sends a previously created button template.
func (c *Client) SendTemplate(ctx context.Context, chatID, templateID string) error {
	payload := map[string]string{"chatId": chatID, "templateId": templateID}
	return c.post(ctx, "sendTemplateButtons", payload, nil)
}

func (c *Client) post(ctx context.Context, method string, payload any, out any) error {
	bodyRaw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal greenapi payload: %w", err)
	}

	var lastErr error
	var retryAfter time.Duration
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			// 2s, 4s, 8s between attempts; a larger Retry-After wins.
			backoff := time.Duration(1<<attempt) * time.Second
			if retryAfter > backoff {
				backoff = retryAfter
			}
			c.logger.Warn("greenapi_rate_limited",
				"method", method, "attempt", attempt, "backoff", backoff.String())
			if err := c.sleepFn(ctx, backoff); err != nil {
				return err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(method), bytes.NewReader(bodyRaw))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			// Network failure: terminal, the caller treats the send as
			// failed and the conversation state already persisted.
			return fmt.Errorf("greenapi %s: %w", method, err)
		}
		respRaw, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("greenapi %s read response: %w", method, readErr)
		}

		status := resp.StatusCode
		switch {
		case status >= 200 && status < 300:
			if out != nil {
				if err := json.Unmarshal(respRaw, out); err != nil {
					return fmt.Errorf("greenapi %s decode response: %w", method, err)
				}
			}
			return nil
		case status == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("%w: %s http 429", ErrRateLimited, method)
			retryAfter, _ = retryAfterHeader(resp.Header)
			continue
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			// Credentials or disconnected instance; retrying cannot help.
			c.logger.Error("greenapi_auth_error",
				"method", method, "status", status, "body", truncate(respRaw, 512))
			return fmt.Errorf("greenapi %s: auth error http %d", method, status)
		default:
			return fmt.Errorf("greenapi %s: http %d: %s", method, status, truncate(respRaw, 512))
		}
	}
	return lastErr
}

func truncate(raw []byte, max int) string {
	s := string(raw)
	if len(s) > max {
		return s[:max]
	}
	return s
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func retryAfterHeader(h http.Header) (time.Duration, bool) {
	raw := strings.TrimSpace(h.Get("Retry-After"))
	if raw == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}
