package storage

import (
	"context"
	"sync"

	"github.com/unscroll-app/unscroll/internal/ports"
)

// MemoryStore is an in-process ports.KeyValueStore. Services take the store
// through their constructor, so tests can run against this instead of SQLite.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

var _ ports.KeyValueStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Get implements ports.KeyValueStore.Get
func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, found := m.entries[key]
	return value, found, nil
}

// Set implements ports.KeyValueStore.Set
func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

// Remove implements ports.KeyValueStore.Remove
func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// RemoveMany implements ports.KeyValueStore.RemoveMany
func (m *MemoryStore) RemoveMany(ctx context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

// Close implements ports.KeyValueStore.Close
func (m *MemoryStore) Close() error { return nil }

// Len reports the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
