package store

import (
	"context"
	"sync"
	"time"

	"github.com/pokerduel/pokerduel/internal/duel"
)

// MemoryStore is an in-process MatchStore for tests and local simulation.
// It applies the same optimistic revision discipline as the Redis store.
type MemoryStore struct {
	mu      sync.Mutex
	matches map[string]memoryEntry
}

type memoryEntry struct {
	match     *duel.Match
	expiresAt time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{matches: make(map[string]memoryEntry)}
}

// Load returns a copy of the stored match.
func (s *MemoryStore) Load(_ context.Context, id string) (*duel.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.matches[id]
	if !ok || (!entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt)) {
		delete(s.matches, id)
		return nil, ErrMatchNotFound
	}
	return entry.match.Clone(), nil
}

// Save stores a copy of the match after the revision check.
func (s *MemoryStore) Save(_ context.Context, m *duel.Match, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.matches[m.ID]; ok {
		if entry.match.Revision != m.Revision {
			return ErrConcurrentModification
		}
	} else if m.Revision != 0 {
		return ErrConcurrentModification
	}

	m.Revision++
	stored := m.Clone()
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	s.matches[m.ID] = memoryEntry{match: stored, expiresAt: expiresAt}
	return nil
}
