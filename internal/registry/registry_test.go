package registry

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*Registry, *quartz.Mock) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clock := quartz.NewMock(t)
	return New(client, clock, log.New(io.Discard)), clock
}

func TestRegisterAndResolve(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.Register(ctx, "+31600000001", "alice"))

	phone, err := r.ResolvePhone(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "+31600000001", phone)

	// Phone numbers pass through untouched.
	phone, err = r.ResolvePhone(ctx, "+31600000002")
	require.NoError(t, err)
	assert.Equal(t, "+31600000002", phone)

	_, err = r.ResolvePhone(ctx, "mallory")
	assert.ErrorIs(t, err, ErrNotRegistered)

	assert.Equal(t, "alice", r.Name(ctx, "+31600000001"))
	assert.Equal(t, "+31600000009", r.Name(ctx, "+31600000009"))

	registered, err := r.IsRegistered(ctx, "+31600000001")
	require.NoError(t, err)
	assert.True(t, registered)
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	assert.ErrorIs(t, r.Register(ctx, "0612345678", "alice"), ErrInvalidPhone)
	assert.Error(t, r.Register(ctx, "+31600000001", ""))
}

func TestToggleAvailability(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	on, err := r.ToggleAvailability(ctx, "+31600000001")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := r.ToggleAvailability(ctx, "+31600000001")
	require.NoError(t, err)
	assert.False(t, off)
}

func TestAvailable(t *testing.T) {
	r, clock := newTestRegistry(t)
	ctx := context.Background()
	const phone = "+31600000001"

	// No flag set yet.
	available, err := r.Available(ctx, phone)
	require.NoError(t, err)
	assert.False(t, available)

	// Flag on with no schedule means always available.
	_, err = r.ToggleAvailability(ctx, phone)
	require.NoError(t, err)
	available, err = r.Available(ctx, phone)
	require.NoError(t, err)
	assert.True(t, available)

	_, err = r.SetSchedule(ctx, phone, "19:00-22:00, Mon-Fri")
	require.NoError(t, err)

	// Monday evening inside the window.
	clock.Set(time.Date(2026, 8, 24, 20, 0, 0, 0, time.UTC))
	available, err = r.Available(ctx, phone)
	require.NoError(t, err)
	assert.True(t, available)

	// Monday, but past the end of the window.
	clock.Set(time.Date(2026, 8, 24, 23, 0, 0, 0, time.UTC))
	available, err = r.Available(ctx, phone)
	require.NoError(t, err)
	assert.False(t, available)

	// Right time of day on a Sunday, outside the window's days.
	clock.Set(time.Date(2026, 8, 23, 20, 0, 0, 0, time.UTC))
	available, err = r.Available(ctx, phone)
	require.NoError(t, err)
	assert.False(t, available)

	// Flag off overrides an in-window schedule.
	clock.Set(time.Date(2026, 8, 24, 20, 0, 0, 0, time.UTC))
	_, err = r.ToggleAvailability(ctx, phone)
	require.NoError(t, err)
	available, err = r.Available(ctx, phone)
	require.NoError(t, err)
	assert.False(t, available)
}
