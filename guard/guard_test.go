package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThomasRogersF/whatsapp-bot/store"
)

type downStore struct{}

func (downStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("down")
}

func (downStore) Put(context.Context, string, string, time.Duration) error {
	return errors.New("down")
}

func (downStore) Delete(context.Context, string) error {
	return errors.New("down")
}

func TestDeduperMessage(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mem := store.NewMemoryWithOptions(store.MemoryOptions{Now: func() time.Time { return now }})
	d := NewDeduper(mem)

	if d.CheckAndSetMessage(ctx, "MSG1") {
		t.Fatalf("first delivery flagged as duplicate")
	}
	if !d.CheckAndSetMessage(ctx, "MSG1") {
		t.Fatalf("replay not flagged as duplicate")
	}
	if d.CheckAndSetMessage(ctx, "MSG2") {
		t.Fatalf("unrelated id flagged as duplicate")
	}

	// Marker expires after the retry window.
	now = now.Add(MessageTTL + time.Second)
	if d.CheckAndSetMessage(ctx, "MSG1") {
		t.Fatalf("expired marker still flagged as duplicate")
	}
}

func TestDeduperEmptyMessageIDNeverDuplicate(t *testing.T) {
	d := NewDeduper(store.NewMemory())
	if d.CheckAndSetMessage(context.Background(), "") {
		t.Fatalf("empty message id flagged as duplicate")
	}
}

func TestDeduperStartClear(t *testing.T) {
	ctx := context.Background()
	d := NewDeduper(store.NewMemory())

	if d.CheckAndSetStart(ctx, "57300") {
		t.Fatalf("first START flagged as duplicate")
	}
	if !d.CheckAndSetStart(ctx, "57300") {
		t.Fatalf("second START not flagged as duplicate")
	}

	d.ClearStart(ctx, "57300")
	if d.CheckAndSetStart(ctx, "57300") {
		t.Fatalf("START after clear flagged as duplicate")
	}
}

func TestLimiterSlidingWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	nowFn := func() time.Time { return now }
	mem := store.NewMemoryWithOptions(store.MemoryOptions{Now: nowFn})
	l := NewLimiter(LimiterOptions{Store: mem, Max: 3, Window: 10 * time.Second, Now: nowFn})

	for i := 0; i < 3; i++ {
		if !l.Allow(ctx, "57300") {
			t.Fatalf("event %d rejected inside budget", i)
		}
		now = now.Add(time.Second)
	}
	if l.Allow(ctx, "57300") {
		t.Fatalf("event over budget admitted")
	}

	// A rejected attempt must not consume budget: once the oldest admitted
	// event leaves the window, the next attempt is admitted again.
	now = now.Add(8 * time.Second)
	if !l.Allow(ctx, "57300") {
		t.Fatalf("event rejected after window slid")
	}
}

func TestLimiterIsolatesIdentities(t *testing.T) {
	ctx := context.Background()
	l := NewLimiter(LimiterOptions{Store: store.NewMemory(), Max: 1, Window: 10 * time.Second})

	if !l.Allow(ctx, "57300") {
		t.Fatalf("first identity rejected")
	}
	if !l.Allow(ctx, "57301") {
		t.Fatalf("second identity rejected after first used its budget")
	}
}

func TestGuardsFailOpenOnStoreErrors(t *testing.T) {
	ctx := context.Background()

	d := NewDeduper(downStore{})
	if d.CheckAndSetMessage(ctx, "MSG1") {
		t.Fatalf("dedup failed closed")
	}
	if d.CheckAndSetStart(ctx, "57300") {
		t.Fatalf("start dedup failed closed")
	}

	l := NewLimiter(LimiterOptions{Store: downStore{}})
	if !l.Allow(ctx, "57300") {
		t.Fatalf("rate limiter failed closed")
	}

	r := NewOptOutRegistry(downStore{})
	if r.IsOptedOut(ctx, "57300") {
		t.Fatalf("opt-out registry failed closed")
	}
}

func TestOptOutRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewOptOutRegistry(store.NewMemory())

	if r.IsOptedOut(ctx, "57300") {
		t.Fatalf("fresh identity reported opted out")
	}
	r.SetOptOut(ctx, "57300")
	if !r.IsOptedOut(ctx, "57300") {
		t.Fatalf("opt-out not persisted")
	}
	r.ClearOptOut(ctx, "57300")
	if r.IsOptedOut(ctx, "57300") {
		t.Fatalf("opt-out survived clear")
	}
}
