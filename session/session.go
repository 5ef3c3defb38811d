// Package session persists conversation progress per identity. Every save
// rewrites the full record with a sliding TTL, so an abandoned conversation
// is garbage-collected by the store and a mid-conversation save never
// partially updates a session.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThomasRogersF/whatsapp-bot/screening"
	"github.com/ThomasRogersF/whatsapp-bot/store"
)

// DefaultTTL is the sliding session lifetime: 7 days.
const DefaultTTL = 7 * 24 * time.Hour

type Session struct {
	Step           screening.Step    `json:"step"`
	Answers        screening.Answers `json:"answers"`
	StartedAt      time.Time         `json:"startedAt"`
	LastActivityAt time.Time         `json:"lastActivityAt"`
	Completed      bool              `json:"completed,omitempty"`
}

type Manager struct {
	store store.Store
	ttl   time.Duration
	nowFn func() time.Time
}

type ManagerOptions struct {
	Store store.Store
	TTL   time.Duration
	Now   func() time.Time
}

func NewManager(opts ManagerOptions) *Manager {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Manager{store: opts.Store, ttl: ttl, nowFn: nowFn}
}

// New returns a fresh session positioned on the first question.
func (m *Manager) New() *Session {
	now := m.nowFn()
	return &Session{
		Step:           screening.FirstStep(),
		Answers:        screening.Answers{},
		StartedAt:      now,
		LastActivityAt: now,
	}
}

// Load returns the stored session for identity, or ok=false when none
// exists. A record that fails to decode reads as absent: the user is simply
// prompted to start again.
func (m *Manager) Load(ctx context.Context, identity string) (*Session, bool) {
	raw, ok, _ := m.store.Get(ctx, store.SessionKey(identity))
	if !ok {
		return nil, false
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, false
	}
	return &s, true
}

// Save refreshes LastActivityAt and rewrites the record with the sliding TTL.
func (m *Manager) Save(ctx context.Context, identity string, s *Session) error {
	s.LastActivityAt = m.nowFn()
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return m.store.Put(ctx, store.SessionKey(identity), string(raw), m.ttl)
}

func (m *Manager) Delete(ctx context.Context, identity string) error {
	return m.store.Delete(ctx, store.SessionKey(identity))
}
