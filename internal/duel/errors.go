package duel

import "errors"

// Validation errors returned by the reducers. Every one of these is detected
// before any state mutation, so a failed call leaves the Match unchanged.
var (
	ErrInvalidParticipantCount = errors.New("exactly 2 distinct participants required")
	ErrNotCurrentActor         = errors.New("not your turn")
	ErrInvalidPhase            = errors.New("action not allowed in current phase")
	ErrInvalidAction           = errors.New("invalid action")
	ErrBetTooSmall             = errors.New("bet below minimum")
	ErrInsufficientChips       = errors.New("not enough chips")
	ErrTooManyDiscards         = errors.New("maximum 3 cards can be discarded")
	ErrInvalidCardIndex        = errors.New("card indices must be distinct positions in 1..5")
)
