// Package duel implements the five-card-draw duel state machine: a Match
// aggregate played over up to five hands, mutated exclusively by the Act and
// Discard reducers. The package has no I/O; persistence and notification are
// the caller's concern.
package duel
