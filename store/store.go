// Package store defines the TTL key-value store the bot persists all of its
// per-user state in: sessions, dedup markers, rate-limit records, opt-out
// flags and cached template ids. Backends live in subpackages; callers are
// expected to go through Resilient so a backing-store outage degrades to
// "absent" instead of failing the conversation.
package store

import (
	"context"
	"time"
)

type Store interface {
	// Get returns the value for key, or ok=false when the key is absent
	// or expired.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put writes value under key. A ttl <= 0 means the key does not expire.
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
