package store

import (
	"context"
	"log/slog"
	"time"
)

// Resilient wraps a Store and swallows backing-store failures: a failed Get
// reads as absent, a failed Put or Delete is a logged no-op. The guards and
// the session manager are all written to tolerate "absent", so the worst
// case during a store outage is that a user is asked to repeat input.
type Resilient struct {
	inner  Store
	logger *slog.Logger
}

func NewResilient(inner Store, logger *slog.Logger) *Resilient {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resilient{inner: inner, logger: logger}
}

func (r *Resilient) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := r.inner.Get(ctx, key)
	if err != nil {
		r.logger.Error("store_get_failed", "key", key, "error", err.Error())
		return "", false, nil
	}
	return value, ok, nil
}

func (r *Resilient) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.inner.Put(ctx, key, value, ttl); err != nil {
		r.logger.Error("store_put_failed", "key", key, "error", err.Error())
	}
	return nil
}

func (r *Resilient) Delete(ctx context.Context, key string) error {
	if err := r.inner.Delete(ctx, key); err != nil {
		r.logger.Error("store_delete_failed", "key", key, "error", err.Error())
	}
	return nil
}
