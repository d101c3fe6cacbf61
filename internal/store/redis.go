package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pokerduel/pokerduel/internal/duel"
)

const matchKeyPrefix = "match:"

// Connect opens and pings a Redis client.
func Connect(addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

// RedisStore keeps match state in Redis as JSON blobs with a TTL. Saves run
// inside a WATCH transaction keyed on the match, so a concurrent writer
// either trips the revision check or aborts the transaction.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore on an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func matchKey(id string) string {
	return matchKeyPrefix + id
}

// Load fetches and decodes a match.
func (s *RedisStore) Load(ctx context.Context, id string) (*duel.Match, error) {
	payload, err := s.client.Get(ctx, matchKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var m duel.Match
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return nil, fmt.Errorf("decode match %s: %w", id, err)
	}
	return &m, nil
}

// Save writes the match if its stored revision still matches m.Revision,
// then bumps m.Revision. A concurrent writer surfaces as
// ErrConcurrentModification.
func (s *RedisStore) Save(ctx context.Context, m *duel.Match, ttl time.Duration) error {
	key := matchKey(m.ID)
	next := m.Revision + 1

	serialized := m.Clone()
	serialized.Revision = next
	payload, err := json.Marshal(serialized)
	if err != nil {
		return fmt.Errorf("encode match %s: %w", m.ID, err)
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			if m.Revision != 0 {
				return ErrConcurrentModification
			}
		case err != nil:
			return err
		default:
			var current struct {
				Revision int64 `json:"revision"`
			}
			if err := json.Unmarshal([]byte(stored), &current); err != nil {
				return fmt.Errorf("decode stored match %s: %w", m.ID, err)
			}
			if current.Revision != m.Revision {
				return ErrConcurrentModification
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, ttl)
			return nil
		})
		return err
	}, key)

	switch {
	case errors.Is(err, ErrConcurrentModification):
		return ErrConcurrentModification
	case errors.Is(err, redis.TxFailedErr):
		return ErrConcurrentModification
	case err != nil:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	m.Revision = next
	return nil
}
