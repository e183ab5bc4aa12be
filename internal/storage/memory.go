package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	value   string
	expires time.Time // zero means never
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

type memoryBackend struct {
	mu     sync.RWMutex
	values map[string]memoryEntry
	quota  int
	now    func() time.Time
}

// NewMemoryBackend returns a process-local backend. A positive quota caps the
// total bytes of live keys and values, mirroring browser storage limits.
func NewMemoryBackend(quota int) Backend {
	return &memoryBackend{
		values: make(map[string]memoryEntry),
		quota:  quota,
		now:    time.Now,
	}
}

func (m *memoryBackend) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.values[key]
	if !ok || e.expired(m.now()) {
		return "", ErrKeyNotFound
	}
	return e.value, nil
}

func (m *memoryBackend) Set(ctx context.Context, key, value string) error {
	return m.SetWithTTL(ctx, key, value, 0)
}

func (m *memoryBackend) SetWithTTL(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, e := range m.values {
		if e.expired(now) {
			delete(m.values, k)
		}
	}

	if m.quota > 0 {
		used := len(key) + len(value)
		for k, e := range m.values {
			if k != key {
				used += len(k) + len(e.value)
			}
		}
		if used > m.quota {
			return fmt.Errorf("%w: %d of %d bytes", ErrQuotaExceeded, used, m.quota)
		}
	}

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = now.Add(ttl)
	}
	m.values[key] = e
	return nil
}

func (m *memoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memoryBackend) Ping(context.Context) error {
	return nil
}
