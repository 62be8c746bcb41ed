package store

import (
	"context"
	"sync"

	"github.com/chotalink/chotalink/internal/link"
)

// MemoryStore is an in-memory implementation of link.Store. It backs the
// "memory" storage mode and doubles as the test fake.
type MemoryStore struct {
	mu    sync.RWMutex
	links []link.ShortLink
	saves int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Seed replaces the stored collection without counting as a save.
func (m *MemoryStore) Seed(links []link.ShortLink) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links = append([]link.ShortLink(nil), links...)
}

func (m *MemoryStore) Load(_ context.Context) ([]link.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]link.ShortLink(nil), m.links...), nil
}

func (m *MemoryStore) Save(_ context.Context, links []link.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.links = append([]link.ShortLink(nil), links...)
	m.saves++

	return nil
}

// Saves returns how many times Save has been called.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.saves
}
