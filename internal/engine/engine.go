// Package engine orchestrates duel actions: each operation is one
// load-validate-mutate-save cycle against the state store, followed by the
// notifications the reducer's events call for.
package engine

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/pokerduel/pokerduel/internal/duel"
	"github.com/pokerduel/pokerduel/internal/matchid"
	"github.com/pokerduel/pokerduel/internal/metrics"
	"github.com/pokerduel/pokerduel/internal/notify"
	"github.com/pokerduel/pokerduel/internal/randutil"
	"github.com/pokerduel/pokerduel/internal/store"
)

// DefaultTTL is how long a match record lives in the store between actions.
const DefaultTTL = time.Hour

// Engine exposes the duel operations to the request layer. All collaborators
// are injected at construction; the engine keeps no state of its own between
// calls.
type Engine struct {
	store    store.MatchStore
	notifier notify.Notifier
	logger   *log.Logger
	metrics  *metrics.Metrics
	newID    matchid.Generator
	newRNG   func() *rand.Rand
	clock    quartz.Clock
	rules    duel.Rules
	ttl      time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules overrides the default duel rules.
func WithRules(rules duel.Rules) Option {
	return func(e *Engine) { e.rules = rules }
}

// WithTTL overrides the match record TTL.
func WithTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.ttl = ttl }
}

// WithIDGenerator overrides match id generation, for deterministic tests.
func WithIDGenerator(gen matchid.Generator) Option {
	return func(e *Engine) { e.newID = gen }
}

// WithRNG overrides the per-operation RNG source, for deterministic deals.
func WithRNG(newRNG func() *rand.Rand) Option {
	return func(e *Engine) { e.newRNG = newRNG }
}

// WithClock overrides the wall clock, for deterministic timestamps in tests.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithMetrics attaches Prometheus instruments.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New constructs an Engine.
func New(matchStore store.MatchStore, notifier notify.Notifier, logger *log.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:    matchStore,
		notifier: notifier,
		logger:   logger.WithPrefix("engine"),
		newID:    matchid.New,
		newRNG:   randutil.FromClock,
		clock:    quartz.NewReal(),
		rules:    duel.DefaultRules(),
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartMatch creates a duel between two participants, persists it, and
// notifies the first actor.
func (e *Engine) StartMatch(ctx context.Context, participants []string) (*Snapshot, error) {
	id := e.newID()
	m, err := duel.NewMatch(id, participants, e.rules, e.newRNG(), e.clock.Now())
	if err != nil {
		e.countError(err)
		return nil, err
	}

	if err := e.store.Save(ctx, m, e.ttl); err != nil {
		return nil, err
	}

	e.logger.Info("Match started", "match", id, "players", participants)
	if e.metrics != nil {
		e.metrics.MatchesStarted.Inc()
	}

	e.sendNotification(ctx, m.ID, m.Current,
		"Poker duel started! Your turn to bet first. Check your hand and make your move!")

	return e.snapshot(m, "", nil), nil
}

// PlaceBet applies a bet, call, raise, or fold for the actor.
func (e *Engine) PlaceBet(ctx context.Context, matchID, actor, action string, amount int) (*Snapshot, error) {
	parsed, err := duel.ParseAction(action)
	if err != nil {
		e.countError(err)
		return nil, fmt.Errorf("%w: %q", duel.ErrInvalidAction, action)
	}

	return e.apply(ctx, matchID, actor, string(parsed), func(m *duel.Match) ([]duel.Event, error) {
		return m.Act(e.newRNG(), actor, parsed, amount)
	})
}

// Discard replaces up to three cards in the actor's hand.
func (e *Engine) Discard(ctx context.Context, matchID, actor string, indices []int) (*Snapshot, error) {
	return e.apply(ctx, matchID, actor, "discard", func(m *duel.Match) ([]duel.Event, error) {
		return m.Discard(actor, indices)
	})
}

// GetStatus returns the current match state. When requester is a
// participant, their own hand (and only theirs) is attached.
func (e *Engine) GetStatus(ctx context.Context, matchID, requester string) (*Snapshot, error) {
	m, err := e.store.Load(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return e.snapshot(m, requester, nil), nil
}

// GetHand returns a participant-scoped view including their hand. Fails with
// ErrNotParticipant for outsiders.
func (e *Engine) GetHand(ctx context.Context, matchID, participant string) (*Snapshot, error) {
	m, err := e.store.Load(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.HasParticipant(participant) {
		return nil, ErrNotParticipant
	}
	return e.snapshot(m, participant, nil), nil
}

// apply runs one load-mutate-save cycle. The reducer mutates a loaded copy,
// so a validation failure or a lost revision race never leaves a partial
// write behind.
func (e *Engine) apply(ctx context.Context, matchID, actor, action string, reduce func(*duel.Match) ([]duel.Event, error)) (*Snapshot, error) {
	m, err := e.store.Load(ctx, matchID)
	if err != nil {
		return nil, err
	}

	events, err := reduce(m)
	if err != nil {
		e.countError(err)
		return nil, err
	}

	if err := e.store.Save(ctx, m, e.ttl); err != nil {
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.Actions.WithLabelValues(action).Inc()
	}
	e.processEvents(ctx, m, events)

	return e.snapshot(m, actor, events), nil
}

// processEvents logs settlements and turns due notifications into calls on
// the notifier. Notification failures are logged, never surfaced: a missed
// nudge must not fail a game action.
func (e *Engine) processEvents(ctx context.Context, m *duel.Match, events []duel.Event) {
	for _, event := range events {
		switch ev := event.(type) {
		case duel.TurnChangedEvent:
			e.sendNotification(ctx, m.ID, ev.Actor,
				fmt.Sprintf("Your turn in the poker duel (%s). Check your hand and make your move!", ev.Phase))
		case duel.DrawOpenEvent:
			e.sendNotification(ctx, m.ID, ev.Actor,
				"Bets matched! Your turn to discard up to 3 cards.")
		case duel.HandSettledEvent:
			e.logger.Info("Hand settled", "match", m.ID, "hand", ev.HandNum,
				"winner", ev.Winner, "amount", ev.Amount, "reason", ev.Reason)
			if e.metrics != nil {
				e.metrics.HandsSettled.WithLabelValues(string(ev.Reason)).Inc()
			}
		case duel.MatchEndedEvent:
			outcome := "win"
			if ev.Draw {
				outcome = "draw"
			}
			e.logger.Info("Match ended", "match", m.ID, "winner", ev.Winner, "draw", ev.Draw)
			if e.metrics != nil {
				e.metrics.MatchesEnded.WithLabelValues(outcome).Inc()
			}
		}
	}
}

func (e *Engine) sendNotification(ctx context.Context, matchID, participant, message string) {
	err := e.notifier.TurnDue(ctx, notify.Notification{
		MatchID:     matchID,
		Participant: participant,
		Message:     message,
		GameType:    "poker",
		Action:      "your_turn",
	})
	if err != nil {
		e.logger.Warn("Failed to notify participant", "match", matchID,
			"participant", participant, "error", err)
	}
}

func (e *Engine) countError(err error) {
	if e.metrics == nil {
		return
	}
	e.metrics.ActionErrors.WithLabelValues(Kind(err)).Inc()
}
