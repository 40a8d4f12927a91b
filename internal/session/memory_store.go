package session

import (
	"context"
	"sync"
	"time"

	"staff-forge.com/staff-forge/internal/query"
)

// MemoryStore is an in-process Store for tests and single-node setups
// without redis.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	sorts    map[string]query.SortState
	visits   map[string]int64
}

type memorySession struct {
	workerID  string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memorySession),
		sorts:    make(map[string]query.SortState),
		visits:   make(map[string]int64),
	}
}

func (s *MemoryStore) SetSession(ctx context.Context, token, workerID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = memorySession{
		workerID:  workerID,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) GetSession(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return "", ErrSessionNotFound
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return "", ErrSessionNotFound
	}
	return sess.workerID, nil
}

func (s *MemoryStore) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) SortState(ctx context.Context, key string) (query.SortState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sorts[key]
	return state, ok, nil
}

func (s *MemoryStore) SetSortState(ctx context.Context, key string, state query.SortState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sorts[key] = state
	return nil
}

func (s *MemoryStore) IncrementVisits(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.visits[key]++
	return s.visits[key], nil
}
