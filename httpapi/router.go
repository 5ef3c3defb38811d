// Package httpapi exposes the provider webhook and the health probe. The
// webhook always acknowledges with 200 regardless of application outcome —
// provider retries must be driven only by its own delivery guarantees, never
// by our processing failures — and hands accepted events to the worker pool
// so the response does not wait on the conversation pipeline.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ThomasRogersF/whatsapp-bot/greenapi"
	"github.com/ThomasRogersF/whatsapp-bot/guard"
)

// Job is one accepted inbound event, queued for detached processing.
type Job struct {
	ChatID        string
	Text          string
	CorrelationID string
}

type Handler struct {
	deduper *guard.Deduper
	enqueue func(ctx context.Context, job Job) error
	logger  *slog.Logger
}

type HandlerOptions struct {
	Deduper *guard.Deduper
	Enqueue func(ctx context.Context, job Job) error
	Logger  *slog.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.Deduper == nil {
		return nil, fmt.Errorf("deduper is required")
	}
	if opts.Enqueue == nil {
		return nil, fmt.Errorf("enqueue is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{deduper: opts.Deduper, enqueue: opts.Enqueue, logger: logger}, nil
}

func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/greenapi/webhook", h.handleWebhook)

	return r
}

func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	// Every branch acks: the function only varies in whether a job is
	// queued before the 200 goes out.
	defer func() {
		_, _ = w.Write([]byte("ok"))
	}()

	var payload greenapi.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Warn("webhook_malformed_json", "error", err.Error())
		return
	}

	inbound, ok := greenapi.ExtractInbound(&payload)
	if !ok {
		h.logger.Debug("webhook_discarded", "type_webhook", payload.TypeWebhook)
		return
	}

	if h.deduper.CheckAndSetMessage(r.Context(), inbound.MessageID) {
		h.logger.Info("webhook_duplicate_msgid", "msgid", inbound.MessageID)
		return
	}

	job := Job{
		ChatID:        inbound.ChatID,
		Text:          inbound.Text,
		CorrelationID: uuid.NewString(),
	}
	if err := h.enqueue(r.Context(), job); err != nil {
		// Still ack; the message is lost to us, and the provider-side
		// dedup marker was already written, so a redelivery inside the
		// window would be dropped too. The user recovers by resending.
		h.logger.Error("webhook_enqueue_failed", "error", err.Error())
		return
	}
	h.logger.Info("webhook_accepted", "correlation_id", job.CorrelationID, "msgid", inbound.MessageID)
}
