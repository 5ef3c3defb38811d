// Package guard implements the checks that run before any conversation state
// is touched: inbound-message dedup, start-command dedup, per-user rate
// limiting and the opt-out registry. All of them are marker keys with a TTL
// in the shared store, and all of them fail open — a store outage must not
// take the conversation down, so "unknown" reads as "not seen", "not
// limited", "not opted out".
package guard

import (
	"context"
	"time"

	"github.com/ThomasRogersF/whatsapp-bot/store"
)

const (
	// MessageTTL must exceed the provider's webhook retry window (observed
	// around 5 minutes for Green-API).
	MessageTTL = 5 * time.Minute
	// StartTTL suppresses duplicate START handling from webhook redelivery
	// or a double-tap.
	StartTTL = 60 * time.Second
)

// Deduper implements marker-key deduplication: read the key, act, write the
// key with a TTL. No compare-and-swap is assumed; a racing duplicate inside
// the read-write gap is an accepted benign outcome.
type Deduper struct {
	store store.Store
}

func NewDeduper(s store.Store) *Deduper {
	return &Deduper{store: s}
}

// CheckAndSetMessage reports whether messageID was already processed within
// the dedup window, marking it as seen otherwise. A duplicate inbound event
// must be acknowledged without any side effect.
func (d *Deduper) CheckAndSetMessage(ctx context.Context, messageID string) bool {
	if messageID == "" {
		return false
	}
	key := store.MessageKey(messageID)
	if _, seen, _ := d.store.Get(ctx, key); seen {
		return true
	}
	_ = d.store.Put(ctx, key, "1", MessageTTL)
	return false
}

// CheckAndSetStart reports whether a START from identity was already handled
// within the dedup window, marking the window open otherwise.
func (d *Deduper) CheckAndSetStart(ctx context.Context, identity string) bool {
	key := store.StartDedupKey(identity)
	if _, seen, _ := d.store.Get(ctx, key); seen {
		return true
	}
	_ = d.store.Put(ctx, key, "1", StartTTL)
	return false
}

// ClearStart removes the START marker. Called on re-opt-in so the next START
// is never mistaken for a duplicate.
func (d *Deduper) ClearStart(ctx context.Context, identity string) {
	_ = d.store.Delete(ctx, store.StartDedupKey(identity))
}
