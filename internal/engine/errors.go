package engine

import (
	"errors"

	"github.com/pokerduel/pokerduel/internal/duel"
	"github.com/pokerduel/pokerduel/internal/store"
	"github.com/pokerduel/pokerduel/poker"
)

// ErrNotParticipant means the requester is not one of the match's two
// participants.
var ErrNotParticipant = errors.New("not a participant in this match")

// Kind returns the machine-readable error kind for an engine error, so
// callers can decide between retrying (store errors) and re-prompting the
// user (validation errors).
func Kind(err error) string {
	switch {
	case errors.Is(err, duel.ErrInvalidParticipantCount):
		return "invalid_participant_count"
	case errors.Is(err, duel.ErrNotCurrentActor):
		return "not_current_actor"
	case errors.Is(err, duel.ErrInvalidPhase):
		return "invalid_phase"
	case errors.Is(err, duel.ErrInvalidAction):
		return "invalid_action"
	case errors.Is(err, duel.ErrBetTooSmall):
		return "bet_too_small"
	case errors.Is(err, duel.ErrInsufficientChips):
		return "insufficient_chips"
	case errors.Is(err, duel.ErrTooManyDiscards):
		return "too_many_discards"
	case errors.Is(err, duel.ErrInvalidCardIndex):
		return "invalid_card_index"
	case errors.Is(err, poker.ErrInvalidHandSize):
		return "invalid_hand_size"
	case errors.Is(err, poker.ErrDeckExhausted):
		return "deck_exhausted"
	case errors.Is(err, store.ErrMatchNotFound):
		return "match_not_found"
	case errors.Is(err, store.ErrConcurrentModification):
		return "concurrent_modification"
	case errors.Is(err, store.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrNotParticipant):
		return "not_participant"
	default:
		return "internal"
	}
}

// Retryable reports whether the caller may safely retry the same request.
func Retryable(err error) bool {
	return errors.Is(err, store.ErrStoreUnavailable) ||
		errors.Is(err, store.ErrConcurrentModification)
}
