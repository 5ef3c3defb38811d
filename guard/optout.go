package guard

import (
	"context"
	"time"

	"github.com/ThomasRogersF/whatsapp-bot/store"
)

// OptOutTTL keeps the suppression flag for 30 days; after that the user can
// be contacted again without an explicit re-opt-in.
const OptOutTTL = 30 * 24 * time.Hour

// OptOutRegistry is the persisted per-user suppression flag. While set, all
// inbound traffic from the identity is discarded silently except the
// explicit re-opt-in command.
type OptOutRegistry struct {
	store store.Store
}

func NewOptOutRegistry(s store.Store) *OptOutRegistry {
	return &OptOutRegistry{store: s}
}

func (r *OptOutRegistry) IsOptedOut(ctx context.Context, identity string) bool {
	value, ok, _ := r.store.Get(ctx, store.OptOutKey(identity))
	return ok && value == "true"
}

func (r *OptOutRegistry) SetOptOut(ctx context.Context, identity string) {
	_ = r.store.Put(ctx, store.OptOutKey(identity), "true", OptOutTTL)
}

func (r *OptOutRegistry) ClearOptOut(ctx context.Context, identity string) {
	_ = r.store.Delete(ctx, store.OptOutKey(identity))
}
