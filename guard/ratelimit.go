package guard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThomasRogersF/whatsapp-bot/store"
)

const (
	DefaultRateLimitMax    = 5
	DefaultRateLimitWindow = 10 * time.Second
	// rateLimitRecordTTL is passive cleanup for identities that go quiet;
	// the active pruning happens on every check.
	rateLimitRecordTTL = 60 * time.Second
)

type rateLimitRecord struct {
	// Timestamps are epoch milliseconds of admitted events, oldest first.
	Timestamps []int64 `json:"timestamps"`
}

// Limiter admits at most Max events per Window per identity. Rejected
// attempts are not recorded, so a burst does not extend its own penalty.
type Limiter struct {
	store  store.Store
	max    int
	window time.Duration
	nowFn  func() time.Time
}

type LimiterOptions struct {
	Store  store.Store
	Max    int
	Window time.Duration
	Now    func() time.Time
}

func NewLimiter(opts LimiterOptions) *Limiter {
	max := opts.Max
	if max <= 0 {
		max = DefaultRateLimitMax
	}
	window := opts.Window
	if window <= 0 {
		window = DefaultRateLimitWindow
	}
	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Limiter{store: opts.Store, max: max, window: window, nowFn: nowFn}
}

// Allow prunes stale timestamps, then admits and records the event if the
// window has room. A corrupt or missing record counts as an empty window.
func (l *Limiter) Allow(ctx context.Context, identity string) bool {
	key := store.RateLimitKey(identity)
	now := l.nowFn().UnixMilli()
	windowStart := now - l.window.Milliseconds()

	var record rateLimitRecord
	if raw, ok, _ := l.store.Get(ctx, key); ok {
		_ = json.Unmarshal([]byte(raw), &record)
	}

	kept := record.Timestamps[:0]
	for _, ts := range record.Timestamps {
		if ts > windowStart {
			kept = append(kept, ts)
		}
	}
	record.Timestamps = kept

	if len(record.Timestamps) >= l.max {
		return false
	}

	record.Timestamps = append(record.Timestamps, now)
	raw, err := json.Marshal(record)
	if err != nil {
		return true
	}
	_ = l.store.Put(ctx, key, string(raw), rateLimitRecordTTL)
	return true
}
