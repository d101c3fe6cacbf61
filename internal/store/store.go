// Package store persists match state between requests. The engine treats the
// store as authoritative: one Load and one Save per action, no caching.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/pokerduel/pokerduel/internal/duel"
)

var (
	// ErrMatchNotFound means no match exists under the given id, or its
	// record has expired.
	ErrMatchNotFound = errors.New("match not found or expired")

	// ErrStoreUnavailable covers transport failures: timeouts, refused
	// connections. Distinct from ErrMatchNotFound so callers can retry.
	ErrStoreUnavailable = errors.New("state store unavailable")

	// ErrConcurrentModification is returned by Save when the stored
	// revision no longer matches the one the caller loaded.
	ErrConcurrentModification = errors.New("match was modified concurrently")
)

// MatchStore is the durable load/save capability the engine is constructed
// with. Save performs an optimistic revision check: it succeeds only if the
// stored revision still equals the revision the match was loaded at, and
// bumps the revision on success.
type MatchStore interface {
	Load(ctx context.Context, id string) (*duel.Match, error)
	Save(ctx context.Context, m *duel.Match, ttl time.Duration) error
}
