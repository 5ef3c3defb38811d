// Package notify reports terminal screening outcomes to an external
// endpoint (an automation webhook owned by the recruiting team). Delivery is
// best-effort: one POST, no retry, no backpressure; failures are logged and
// dropped.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ThomasRogersF/whatsapp-bot/screening"
)

// ResultPayload is the immutable terminal-state snapshot.
type ResultPayload struct {
	EventID      string            `json:"event_id"`
	WhatsAppFrom string            `json:"whatsapp_from"`
	Result       screening.Result  `json:"result"`
	Reason       string            `json:"reason"`
	Answers      screening.Answers `json:"answers"`
	CompletedAt  time.Time         `json:"completed_at"`
}

func NewResultPayload(chatID string, result screening.Result, reason string, answers screening.Answers, completedAt time.Time) ResultPayload {
	return ResultPayload{
		EventID:      uuid.NewString(),
		WhatsAppFrom: chatID,
		Result:       result,
		Reason:       reason,
		Answers:      answers,
		CompletedAt:  completedAt,
	}
}

type Notifier struct {
	url    string
	http   *http.Client
	logger *slog.Logger
}

type NotifierOptions struct {
	URL        string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewNotifier returns a notifier for the configured URL. An empty URL yields
// a disabled notifier whose Notify is a no-op.
func NewNotifier(opts NotifierOptions) *Notifier {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		url:    strings.TrimSpace(opts.URL),
		http:   httpClient,
		logger: logger,
	}
}

func (n *Notifier) Enabled() bool { return n.url != "" }

// Notify posts the payload once. Errors are terminal: logged, dropped.
func (n *Notifier) Notify(ctx context.Context, payload ResultPayload) {
	if !n.Enabled() {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		n.logger.Error("result_notify_encode_failed", "error", err.Error())
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(raw))
	if err != nil {
		n.logger.Error("result_notify_request_failed", "error", err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		n.logger.Error("result_notify_post_failed", "error", err.Error())
		return
	}
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Warn("result_notify_non_2xx", "status", resp.StatusCode)
		return
	}
	n.logger.Info("result_notify_ok", "result", string(payload.Result), "event_id", payload.EventID)
}
