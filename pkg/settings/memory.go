package settings

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore keeps the record in process memory.
type MemoryStore struct {
	rec map[string]string
	mu  sync.RWMutex
}

// NewMemoryStore creates a store seeded with s.
func NewMemoryStore(s Settings) *MemoryStore {
	return &MemoryStore{rec: s.Map()}
}

// NewMemoryStoreFromMap creates a store holding a raw record as-is.
func NewMemoryStoreFromMap(rec map[string]string) *MemoryStore {
	return &MemoryStore{rec: maps.Clone(rec)}
}

// Load implements Store.
func (m *MemoryStore) Load(context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.rec), nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = s.Map()
	return nil
}
