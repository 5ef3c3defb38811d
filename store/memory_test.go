package store

import (
	"context"
	"testing"
	"time"
)

func TestMemoryPutGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Put(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	value, ok, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || value != "v" {
		t.Fatalf("Get() = (%q, %v), want (\"v\", true)", value, ok)
	}

	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatalf("Get() after delete reported present")
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryWithOptions(MemoryOptions{Now: func() time.Time { return now }})

	if err := m.Put(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, ok, _ := m.Get(ctx, "k"); !ok {
		t.Fatalf("Get() before expiry reported absent")
	}

	now = now.Add(time.Minute)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatalf("Get() at expiry reported present")
	}
}

func TestMemoryGetAbsent(t *testing.T) {
	if _, ok, _ := NewMemory().Get(context.Background(), "missing"); ok {
		t.Fatalf("Get() on missing key reported present")
	}
}
