package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("backend down")
}

func (failingStore) Put(context.Context, string, string, time.Duration) error {
	return errors.New("backend down")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("backend down")
}

func TestResilientDegradesToAbsent(t *testing.T) {
	ctx := context.Background()
	r := NewResilient(failingStore{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	value, ok, err := r.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v, want nil", err)
	}
	if ok || value != "" {
		t.Fatalf("Get() = (%q, %v), want absent", value, ok)
	}
	if err := r.Put(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Put() error = %v, want nil", err)
	}
	if err := r.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v, want nil", err)
	}
}

func TestResilientPassesThrough(t *testing.T) {
	ctx := context.Background()
	r := NewResilient(NewMemory(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := r.Put(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	value, ok, _ := r.Get(ctx, "k")
	if !ok || value != "v" {
		t.Fatalf("Get() = (%q, %v), want (\"v\", true)", value, ok)
	}
}
