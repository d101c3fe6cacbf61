// Package invite tracks pending match invites with a short expiry.
package invite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoInvite means there is no pending invite for the participant.
var ErrNoInvite = errors.New("no pending invite found")

// TTL is how long an invite stays open.
const TTL = 10 * time.Minute

// Invites manages pending invites in Redis, keyed per match and phone.
type Invites struct {
	client *redis.Client
}

// New creates an invite manager on an existing client.
func New(client *redis.Client) *Invites {
	return &Invites{client: client}
}

func key(matchID, phone string) string {
	return fmt.Sprintf("%s:pending:%s", matchID, phone)
}

// Send opens a pending invite for each participant.
func (i *Invites) Send(ctx context.Context, matchID string, phones []string) error {
	for _, phone := range phones {
		if err := i.client.Set(ctx, key(matchID, phone), "1", TTL).Err(); err != nil {
			return fmt.Errorf("send invite: %w", err)
		}
	}
	return nil
}

// Accept consumes a pending invite. Fails with ErrNoInvite if none is open.
func (i *Invites) Accept(ctx context.Context, matchID, phone string) error {
	deleted, err := i.client.Del(ctx, key(matchID, phone)).Result()
	if err != nil {
		return fmt.Errorf("accept invite: %w", err)
	}
	if deleted == 0 {
		return ErrNoInvite
	}
	return nil
}
