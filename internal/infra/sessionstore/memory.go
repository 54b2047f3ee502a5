package sessionstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryCartStore is the redis-less cart slot store used in development and
// tests. A session's slot is only ever mutated by requests carrying that
// session's id; the mutex only guards the map itself.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string][]uuid.UUID
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		carts: make(map[string][]uuid.UUID),
	}
}

func (s *MemoryCartStore) Get(_ context.Context, sessionID string) ([]uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, ok := s.carts[sessionID]
	if !ok {
		return nil, false, nil
	}
	out := make([]uuid.UUID, len(items))
	copy(out, items)
	return out, true, nil
}

func (s *MemoryCartStore) Set(_ context.Context, sessionID string, items []uuid.UUID) error {
	stored := make([]uuid.UUID, len(items))
	copy(stored, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = stored
	return nil
}

func (s *MemoryCartStore) Remove(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
