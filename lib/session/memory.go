package session

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Default limits for NewMemory.
const (
	DefaultSize = 4096
	DefaultTTL  = 24 * time.Hour
)

// Memory is an in-process store bounded by size and idle TTL. The least
// recently used session is evicted when the store is full.
type Memory struct {
	cache *expirable.LRU[string, []byte]
}

// NewMemory creates a memory store. Non-positive size or ttl fall back to
// DefaultSize and DefaultTTL.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{cache: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

// Load returns a copy of the stored tree.
func (m *Memory) Load(_ context.Context, id string) ([]byte, error) {
	data, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data.
func (m *Memory) Save(_ context.Context, id string, data []byte) error {
	m.cache.Add(id, append([]byte(nil), data...))
	return nil
}

// Delete removes the session.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.cache.Remove(id)
	return nil
}

// Len returns the number of stored sessions.
func (m *Memory) Len() int {
	return m.cache.Len()
}
