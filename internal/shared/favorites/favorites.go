package favorites

import (
	"context"
	"sort"
	"sync"
)

// Store is a durable key-set of favorite character IDs. Implementations
// must be safe for concurrent use.
type Store interface {
	Add(ctx context.Context, characterID int) error
	Remove(ctx context.Context, characterID int) error
	Contains(ctx context.Context, characterID int) (bool, error)
	List(ctx context.Context) ([]int, error)
	Count(ctx context.Context) (int, error)
}

// MemoryStore keeps favorites in process memory. Suitable for tests and
// single-instance deployments that accept losing favorites on restart.
type MemoryStore struct {
	mu  sync.RWMutex
	ids map[int]struct{}
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: make(map[int]struct{})}
}

func (s *MemoryStore) Add(_ context.Context, characterID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids[characterID] = struct{}{}
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, characterID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.ids, characterID)
	return nil
}

func (s *MemoryStore) Contains(_ context.Context, characterID int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.ids[characterID]
	return exists, nil
}

func (s *MemoryStore) List(_ context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.ids), nil
}
