// Package outbound wraps the provider client with the cross-cutting send
// policy: sanitization, randomized pacing, and the rich-format to plain-text
// fallback. A send failure here is logged and reported but never fatal to
// the conversation — the session state has already been persisted.
package outbound

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/ThomasRogersF/whatsapp-bot/greenapi"
	"github.com/ThomasRogersF/whatsapp-bot/screening"
	"github.com/ThomasRogersF/whatsapp-bot/store"
)

const (
	// Randomized pre-send delay bounds. The jitter keeps the send cadence
	// away from the provider's automated-behavior detection.
	defaultMinDelay = 2 * time.Second
	defaultMaxDelay = 4 * time.Second

	// Templates are immutable once created, so the cached id can live long.
	templateCacheTTL = 30 * 24 * time.Hour
)

// Provider is the subset of the Green-API client the sender needs.
type Provider interface {
	SendText(ctx context.Context, chatID, text string) error
	CreateButtonTemplate(ctx context.Context, name, body string, buttons []greenapi.Button) (string, error)
	SendTemplate(ctx context.Context, chatID, templateID string) error
}

type Sender struct {
	provider Provider
	store    store.Store
	logger   *slog.Logger
	minDelay time.Duration
	maxDelay time.Duration
	// UseButtons switches question sends to the interactive template
	// format with plain-text fallback.
	useButtons bool
	sleepFn    func(ctx context.Context, d time.Duration) error
	randFn     func(n int64) int64
}

type SenderOptions struct {
	Provider   Provider
	Store      store.Store
	Logger     *slog.Logger
	MinDelay   time.Duration
	MaxDelay   time.Duration
	UseButtons bool
}

func NewSender(opts SenderOptions) (*Sender, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("outbound provider is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("outbound store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	minDelay := opts.MinDelay
	maxDelay := opts.MaxDelay
	if minDelay <= 0 && maxDelay <= 0 {
		minDelay, maxDelay = defaultMinDelay, defaultMaxDelay
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Sender{
		provider:   opts.Provider,
		store:      opts.Store,
		logger:     logger,
		minDelay:   minDelay,
		maxDelay:   maxDelay,
		useButtons: opts.UseButtons,
		sleepFn:    sleepWithContext,
		randFn:     rand.Int63n,
	}, nil
}

// SendText sends a sanitized plain text message to identity after the
// pacing delay.
func (s *Sender) SendText(ctx context.Context, identity, text string) error {
	if err := s.pace(ctx); err != nil {
		return err
	}
	chatID := greenapi.ChatID(identity)
	if err := s.provider.SendText(ctx, chatID, Sanitize(text)); err != nil {
		s.logger.Error("sendtext_failed", "identity", identity, "error", err.Error())
		return err
	}
	s.logger.Info("sendtext_ok", "identity", identity)
	return nil
}

// SendQuestion delivers a screening step. Steps with quick-reply options go
// out in the interactive format when enabled; any failure on that path
// falls back to the plain-text rendering so the conversation never stalls
// silently.
func (s *Sender) SendQuestion(ctx context.Context, identity string, step screening.Step) error {
	options := screening.Options(step)
	if !s.useButtons || len(options) == 0 {
		return s.SendText(ctx, identity, screening.Question(step))
	}

	if err := s.sendButtons(ctx, identity, step, options); err != nil {
		s.logger.Warn("send_buttons_fallback", "identity", identity, "step", string(step), "error", err.Error())
		return s.SendText(ctx, identity, screening.Question(step))
	}
	return nil
}

func (s *Sender) sendButtons(ctx context.Context, identity string, step screening.Step, options []screening.Option) error {
	templateID, err := s.templateID(ctx, step, options)
	if err != nil {
		return err
	}
	if err := s.pace(ctx); err != nil {
		return err
	}
	if err := s.provider.SendTemplate(ctx, greenapi.ChatID(identity), templateID); err != nil {
		return err
	}
	s.logger.Info("send_buttons_ok", "identity", identity, "step", string(step))
	return nil
}

// templateID returns the cached provider template id for the step, creating
// the template lazily on first use.
func (s *Sender) templateID(ctx context.Context, step screening.Step, options []screening.Option) (string, error) {
	name := "screening_" + string(step)
	key := store.TemplateKey(name)
	if id, ok, _ := s.store.Get(ctx, key); ok && id != "" {
		return id, nil
	}

	buttons := make([]greenapi.Button, 0, len(options))
	for _, opt := range options {
		buttons = append(buttons, greenapi.Button{ButtonID: opt.ID, ButtonText: Sanitize(opt.Label)})
	}
	id, err := s.provider.CreateButtonTemplate(ctx, name, Sanitize(screening.Question(step)), buttons)
	if err != nil {
		return "", err
	}
	_ = s.store.Put(ctx, key, id, templateCacheTTL)
	s.logger.Info("template_created", "name", name, "template_id", id)
	return id, nil
}

func (s *Sender) pace(ctx context.Context) error {
	delay := s.minDelay
	if spread := s.maxDelay - s.minDelay; spread > 0 {
		delay += time.Duration(s.randFn(int64(spread)))
	}
	return s.sleepFn(ctx, delay)
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
