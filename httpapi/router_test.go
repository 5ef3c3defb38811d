package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ThomasRogersF/whatsapp-bot/guard"
	"github.com/ThomasRogersF/whatsapp-bot/store"
)

func newTestRouter(t *testing.T) (*chiRouterFixture, http.Handler) {
	t.Helper()
	f := &chiRouterFixture{}
	h, err := NewHandler(HandlerOptions{
		Deduper: guard.NewDeduper(store.NewMemory()),
		Enqueue: func(_ context.Context, job Job) error {
			f.jobs = append(f.jobs, job)
			return nil
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return f, NewRouter(h)
}

type chiRouterFixture struct {
	jobs []Job
}

func post(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/greenapi/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const textMessageBody = `{
	"typeWebhook": "incomingMessageReceived",
	"idMessage": "MSG1",
	"senderData": {"chatId": "573001234567@c.us"},
	"messageData": {"typeMessage": "textMessage", "textMessageData": {"textMessage": "START"}}
}`

func TestHealth(t *testing.T) {
	_, router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestWebhookAcceptsTextMessage(t *testing.T) {
	f, router := newTestRouter(t)
	rec := post(t, router, textMessageBody)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("response = %d %q", rec.Code, rec.Body.String())
	}
	if len(f.jobs) != 1 {
		t.Fatalf("jobs = %+v, want 1", f.jobs)
	}
	job := f.jobs[0]
	if job.ChatID != "573001234567@c.us" || job.Text != "START" {
		t.Fatalf("job = %+v", job)
	}
	if job.CorrelationID == "" {
		t.Fatalf("correlation id missing")
	}
}

func TestWebhookDeduplicatesByMessageID(t *testing.T) {
	f, router := newTestRouter(t)
	for i := 0; i < 3; i++ {
		rec := post(t, router, textMessageBody)
		if rec.Code != http.StatusOK {
			t.Fatalf("replay %d status = %d", i, rec.Code)
		}
	}
	if len(f.jobs) != 1 {
		t.Fatalf("jobs after replays = %d, want 1", len(f.jobs))
	}
}

func TestWebhookAcksDiscardedPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{not json`},
		{name: "group chat", body: `{"senderData":{"chatId":"120363@g.us"},"messageData":{"typeMessage":"textMessage","textMessageData":{"textMessage":"hola"}}}`},
		{name: "non text type", body: `{"senderData":{"chatId":"57300@c.us"},"messageData":{"typeMessage":"imageMessage"}}`},
		{name: "state notification", body: `{"typeWebhook":"stateInstanceChanged"}`},
		{name: "empty text", body: `{"senderData":{"chatId":"57300@c.us"},"messageData":{"typeMessage":"textMessage","textMessageData":{"textMessage":"  "}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, router := newTestRouter(t)
			rec := post(t, router, tc.body)
			if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
				t.Fatalf("response = %d %q, want 200 ok", rec.Code, rec.Body.String())
			}
			if len(f.jobs) != 0 {
				t.Fatalf("discarded payload was enqueued: %+v", f.jobs)
			}
		})
	}
}

func TestWebhookWithoutMessageIDStillProcessed(t *testing.T) {
	f, router := newTestRouter(t)
	body := `{"senderData":{"chatId":"57300@c.us"},"messageData":{"typeMessage":"textMessage","textMessageData":{"textMessage":"hola"}}}`
	post(t, router, body)
	post(t, router, body)
	// Without an id there is nothing to dedup on; both deliveries process.
	if len(f.jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(f.jobs))
	}
}
