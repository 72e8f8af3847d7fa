package session

import (
	"context"
	"sync"
)

// MemoryStore is the default single-instance backend: a mutex-guarded map
// that lives as long as the process. A restart forces re-validation, which
// the system accepts as the cost of simplicity.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[int64]Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[int64]Profile)}
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	return p, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, userID int64, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[userID] = p
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
	return nil
}
