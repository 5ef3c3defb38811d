package store

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store used for development and tests. Expired
// entries are dropped lazily on read.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	nowFn   func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

type MemoryOptions struct {
	Now func() time.Time
}

func NewMemory() *Memory {
	return NewMemoryWithOptions(MemoryOptions{})
}

func NewMemoryWithOptions(opts MemoryOptions) *Memory {
	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Memory{
		entries: make(map[string]memoryEntry),
		nowFn:   nowFn,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && !m.nowFn().Before(entry.expiresAt) {
		delete(m.entries, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Put(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.nowFn().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
