// Package registry maps phone numbers to player names and tracks each
// player's availability for duels, including weekly schedule windows.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrInvalidPhone means the phone number is not in E.164-ish form.
	ErrInvalidPhone = errors.New("phone number must start with + followed by digits")

	// ErrNotRegistered means no player record exists for the identifier.
	ErrNotRegistered = errors.New("player not registered")
)

const (
	nameKeyPrefix     = "player_name:"
	phoneKeyPrefix    = "player_phone:"
	availabilityKey   = "user_availability:"
	scheduleKeySuffix = ":schedule"
)

// Registry is the Redis-backed player directory. Phone numbers are the
// primary key; names are aliases for lookups in either direction.
type Registry struct {
	client *redis.Client
	clock  quartz.Clock
	logger *log.Logger
}

// New creates a Registry. The clock is injected so schedule checks are
// testable against a fixed time.
func New(client *redis.Client, clock quartz.Clock, logger *log.Logger) *Registry {
	return &Registry{
		client: client,
		clock:  clock,
		logger: logger.WithPrefix("registry"),
	}
}

// Register stores the phone→name mapping and the reverse name→phone alias.
func (r *Registry) Register(ctx context.Context, phone, name string) error {
	if err := validatePhone(phone); err != nil {
		return err
	}
	if name == "" {
		return errors.New("name is required")
	}

	if err := r.client.Set(ctx, nameKeyPrefix+phone, name, 0).Err(); err != nil {
		return fmt.Errorf("store player name: %w", err)
	}
	if err := r.client.Set(ctx, phoneKeyPrefix+name, phone, 0).Err(); err != nil {
		return fmt.Errorf("store player phone: %w", err)
	}

	r.logger.Info("Player registered", "phone", phone, "name", name)
	return nil
}

// ResolvePhone turns a player identifier (phone number or registered name)
// into a phone number. Fails with ErrNotRegistered for unknown names.
func (r *Registry) ResolvePhone(ctx context.Context, identifier string) (string, error) {
	if looksLikePhone(identifier) {
		return identifier, nil
	}

	phone, err := r.client.Get(ctx, phoneKeyPrefix+identifier).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrNotRegistered, identifier)
	}
	if err != nil {
		return "", fmt.Errorf("resolve phone: %w", err)
	}
	return phone, nil
}

// Name returns the registered display name for a phone number, or the phone
// number itself when no alias exists.
func (r *Registry) Name(ctx context.Context, phone string) string {
	name, err := r.client.Get(ctx, nameKeyPrefix+phone).Result()
	if err != nil {
		return phone
	}
	return name
}

// IsRegistered reports whether the phone number has a player record.
func (r *Registry) IsRegistered(ctx context.Context, phone string) (bool, error) {
	_, err := r.client.Get(ctx, nameKeyPrefix+phone).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup player: %w", err)
	}
	return true, nil
}

// ToggleAvailability flips the availability flag and returns the new state.
func (r *Registry) ToggleAvailability(ctx context.Context, phone string) (bool, error) {
	if err := validatePhone(phone); err != nil {
		return false, err
	}

	key := availabilityKey + phone
	current, err := r.client.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("read availability: %w", err)
	}

	next := !strings.EqualFold(current, "true")
	if err := r.client.Set(ctx, key, fmt.Sprintf("%t", next), 0).Err(); err != nil {
		return false, fmt.Errorf("store availability: %w", err)
	}
	return next, nil
}

// Available reports whether the player has availability enabled and, when a
// schedule is set, whether the current time falls inside one of its windows.
func (r *Registry) Available(ctx context.Context, phone string) (bool, error) {
	flag, err := r.client.Get(ctx, availabilityKey+phone).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read availability: %w", err)
	}
	if !strings.EqualFold(flag, "true") {
		return false, nil
	}

	schedule, err := r.GetSchedule(ctx, phone)
	if err != nil {
		return false, err
	}
	if schedule == nil {
		return true, nil
	}
	return schedule.Contains(r.clock.Now()), nil
}

func validatePhone(phone string) error {
	if !looksLikePhone(phone) {
		return ErrInvalidPhone
	}
	return nil
}

func looksLikePhone(s string) bool {
	return strings.HasPrefix(s, "+") && len(s) > 5
}
