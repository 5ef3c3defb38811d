// Package bot ties the guards, the session store, the state machine and the
// outbound channel into the conversation pipeline. Process runs detached
// from the webhook acknowledgement; nothing it does can fail the transport
// response, and any unexpected fault collapses into a single generic
// recovery message instead of a silently stuck conversation.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ThomasRogersF/whatsapp-bot/guard"
	"github.com/ThomasRogersF/whatsapp-bot/notify"
	"github.com/ThomasRogersF/whatsapp-bot/screening"
	"github.com/ThomasRogersF/whatsapp-bot/session"
	"github.com/ThomasRogersF/whatsapp-bot/store"
)

// Reserved commands, matched case-insensitively before any session lookup.
const (
	cmdPing    = "PING"
	cmdStop    = "STOP"
	cmdStart   = "START"
	cmdRestart = "RESTART"
)

type Sender interface {
	SendText(ctx context.Context, identity, text string) error
	SendQuestion(ctx context.Context, identity string, step screening.Step) error
}

type Notifier interface {
	Notify(ctx context.Context, payload notify.ResultPayload)
}

type Processor struct {
	sessions    *session.Manager
	deduper     *guard.Deduper
	limiter     *guard.Limiter
	optOuts     *guard.OptOutRegistry
	sender      Sender
	notifier    Notifier
	cfg         screening.Config
	handoffLink string
	logger      *slog.Logger
	nowFn       func() time.Time
}

type ProcessorOptions struct {
	Sessions    *session.Manager
	Deduper     *guard.Deduper
	Limiter     *guard.Limiter
	OptOuts     *guard.OptOutRegistry
	Sender      Sender
	Notifier    Notifier
	Screening   screening.Config
	HandoffLink string
	Logger      *slog.Logger
	Now         func() time.Time
}

func NewProcessor(opts ProcessorOptions) (*Processor, error) {
	if opts.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if opts.Deduper == nil || opts.Limiter == nil || opts.OptOuts == nil {
		return nil, fmt.Errorf("guards are required")
	}
	if opts.Sender == nil {
		return nil, fmt.Errorf("sender is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	cfg := opts.Screening
	if cfg.MinWeeklyHours == 0 && cfg.MaxAge == 0 {
		cfg = screening.DefaultConfig()
	}
	return &Processor{
		sessions:    opts.Sessions,
		deduper:     opts.Deduper,
		limiter:     opts.Limiter,
		optOuts:     opts.OptOuts,
		sender:      opts.Sender,
		notifier:    opts.Notifier,
		cfg:         cfg,
		handoffLink: opts.HandoffLink,
		logger:      logger,
		nowFn:       nowFn,
	}, nil
}

// Process handles one inbound (chatID, text) pair end to end. It never
// returns an error: send failures are logged and the persisted session
// state carries the conversation, and a panic anywhere in the pipeline is
// converted into the generic recovery message.
func (p *Processor) Process(ctx context.Context, chatID, rawText string) {
	identity := store.Identity(chatID)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("process_panic", "identity", identity, "panic", fmt.Sprintf("%v", r))
			_ = p.sender.SendText(ctx, identity, msgRecover)
		}
	}()

	input := strings.TrimSpace(rawText)
	upper := strings.ToUpper(input)
	p.logger.Info("process_inbound", "identity", identity, "len", len(input))

	switch upper {
	case cmdPing:
		// Debug command: always answers, regardless of session state,
		// opt-out or rate limit.
		_ = p.sender.SendText(ctx, identity, msgPong)
		return

	case cmdStop:
		p.optOuts.SetOptOut(ctx, identity)
		_ = p.sender.SendText(ctx, identity, msgOptOutConfirmed)
		p.logger.Info("optout_set", "identity", identity)
		return

	case cmdStart, cmdRestart:
		p.handleStart(ctx, identity, upper)
		return
	}

	if p.optOuts.IsOptedOut(ctx, identity) {
		p.logger.Info("optout_discard", "identity", identity)
		return
	}

	if !p.limiter.Allow(ctx, identity) {
		p.logger.Warn("rate_limited", "identity", identity)
		_ = p.sender.SendText(ctx, identity, msgRateLimited)
		return
	}

	s, ok := p.sessions.Load(ctx, identity)
	if !ok {
		_ = p.sender.SendText(ctx, identity, msgNoSession)
		return
	}
	if s.Completed {
		p.logger.Info("terminal_discard", "identity", identity)
		return
	}

	p.handleStep(ctx, identity, chatID, s, input)
}

// handleStart covers both START and RESTART. START is gated by the dedup
// window so a redelivered webhook produces one reset; RESTART always resets
// unconditionally (it is the documented recovery action). A re-opt-in via
// either command clears the opt-out flag and the dedup marker so the fresh
// start is never treated as a duplicate.
func (p *Processor) handleStart(ctx context.Context, identity, command string) {
	if p.optOuts.IsOptedOut(ctx, identity) {
		p.optOuts.ClearOptOut(ctx, identity)
		p.deduper.ClearStart(ctx, identity)
		p.logger.Info("optout_cleared", "identity", identity)
	} else if command == cmdStart {
		if p.deduper.CheckAndSetStart(ctx, identity) {
			p.logger.Info("start_duplicate", "identity", identity)
			_ = p.sender.SendText(ctx, identity, msgStartDuplicate)
			return
		}
	}

	p.logger.Info("session_reset", "identity", identity, "command", command)
	_ = p.sessions.Delete(ctx, identity)
	s := p.sessions.New()
	_ = p.sessions.Save(ctx, identity, s)
	_ = p.sender.SendQuestion(ctx, identity, s.Step)
}

func (p *Processor) handleStep(ctx context.Context, identity, chatID string, s *session.Session, input string) {
	outcome := screening.Evaluate(s.Step, s.Answers, input, p.cfg)

	switch outcome.Kind {
	case screening.ActionReject:
		// Nothing is persisted; resending the hinted prompt is safe to
		// repeat indefinitely.
		_ = p.sender.SendText(ctx, identity, screening.Prompt(s.Step))

	case screening.ActionAdvance:
		s.Answers = outcome.Answers
		s.Step = outcome.Next
		_ = p.sessions.Save(ctx, identity, s)
		_ = p.sender.SendQuestion(ctx, identity, s.Step)

	case screening.ActionTerminate:
		s.Answers = outcome.Answers
		s.Completed = true
		_ = p.sessions.Save(ctx, identity, s)

		if p.notifier != nil {
			payload := notify.NewResultPayload(chatID, outcome.Result, outcome.Reason, s.Answers, p.nowFn())
			p.notifier.Notify(ctx, payload)
		}
		p.logger.Info("screening_terminal",
			"identity", identity, "result", string(outcome.Result), "reason", outcome.Reason)

		if outcome.Result == screening.ResultPass {
			_ = p.sender.SendText(ctx, identity, passMessage(p.handoffLink))
			return
		}
		if msg, ok := screening.FailMessage(outcome.FailStep); ok {
			_ = p.sender.SendText(ctx, identity, msg)
		}
	}
}
