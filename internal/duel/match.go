package duel

import (
	rand "math/rand/v2"
	"time"

	"github.com/pokerduel/pokerduel/poker"
)

// Phase is the current stage within a hand's lifecycle.
type Phase string

const (
	PhaseBet1      Phase = "bet1"
	PhaseDraw      Phase = "draw"
	PhaseBet2      Phase = "bet2"
	PhaseShowdown  Phase = "showdown"
	PhaseMatchOver Phase = "match_over"
)

// Action represents a betting action.
type Action string

const (
	ActionBet   Action = "bet"
	ActionCall  Action = "call"
	ActionRaise Action = "raise"
	ActionFold  Action = "fold"
)

// ParseAction validates an action string from the wire.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionBet, ActionCall, ActionRaise, ActionFold:
		return Action(s), nil
	default:
		return "", ErrInvalidAction
	}
}

// Rules holds the tunable parameters of a duel.
type Rules struct {
	StartingChips int `json:"starting_chips"`
	MinBet        int `json:"min_bet"`
	MaxHands      int `json:"max_hands"`
}

// DefaultRules returns the standard duel parameters: 100 chips each, 5-chip
// minimum bet, 5 hands.
func DefaultRules() Rules {
	return Rules{StartingChips: 100, MinBet: 5, MaxHands: 5}
}

// Match is the aggregate root for one duel. It is a plain data structure so
// it serializes directly to the state store; all mutation goes through the
// reducers in this package.
type Match struct {
	ID        string                  `json:"match_id"`
	Players   [2]string               `json:"players"`
	Chips     map[string]int          `json:"chips"`
	Hands     map[string][]poker.Card `json:"hands"`
	HandNum   int                     `json:"current_hand"`
	Pot       int                     `json:"pot"`
	Bets      map[string]int          `json:"bets"`
	Phase     Phase                   `json:"phase"`
	Deck      []poker.Card            `json:"deck"`
	Current   string                  `json:"current_player"`
	Winner    string                  `json:"winner,omitempty"`
	Rules     Rules                   `json:"rules"`
	Revision  int64                   `json:"revision"`
	CreatedAt time.Time               `json:"created_at"`
}

// NewMatch creates a fresh Match: shuffled deck, two dealt hands, phase bet1,
// participant A to act. Fails with ErrInvalidParticipantCount unless exactly
// two distinct participants are given.
func NewMatch(id string, participants []string, rules Rules, rng *rand.Rand, now time.Time) (*Match, error) {
	if len(participants) != 2 || participants[0] == participants[1] ||
		participants[0] == "" || participants[1] == "" {
		return nil, ErrInvalidParticipantCount
	}

	m := &Match{
		ID:        id,
		Players:   [2]string{participants[0], participants[1]},
		Chips:     map[string]int{participants[0]: rules.StartingChips, participants[1]: rules.StartingChips},
		HandNum:   1,
		Rules:     rules,
		CreatedAt: now,
	}
	m.dealHand(rng)
	return m, nil
}

// Opponent returns the other participant.
func (m *Match) Opponent(p string) string {
	if p == m.Players[0] {
		return m.Players[1]
	}
	return m.Players[0]
}

// HasParticipant reports whether p is one of the two participants.
func (m *Match) HasParticipant(p string) bool {
	return p == m.Players[0] || p == m.Players[1]
}

// Over reports whether the match has finished.
func (m *Match) Over() bool {
	return m.Phase == PhaseMatchOver
}

// Hand returns a copy of the participant's current hand.
func (m *Match) Hand(p string) []poker.Card {
	hand := m.Hands[p]
	out := make([]poker.Card, len(hand))
	copy(out, hand)
	return out
}

// ValidActions returns the betting actions currently legal for the actor.
func (m *Match) ValidActions() []Action {
	if m.Phase != PhaseBet1 && m.Phase != PhaseBet2 {
		return nil
	}
	actions := []Action{ActionFold}
	oppBet := m.Bets[m.Opponent(m.Current)]
	if oppBet == 0 {
		if m.Chips[m.Current] >= m.Rules.MinBet {
			actions = append(actions, ActionBet)
		}
	} else {
		if m.Chips[m.Current] >= oppBet {
			actions = append(actions, ActionCall)
		}
		if m.Chips[m.Current] >= oppBet+m.Rules.MinBet {
			actions = append(actions, ActionRaise)
		}
	}
	return actions
}

// dealHand resets the per-hand state: fresh shuffled deck, five cards each,
// pot and bets zeroed, first seat to act.
func (m *Match) dealHand(rng *rand.Rand) {
	deck := poker.NewDeck(rng)
	a, _ := deck.Deal(5)
	b, _ := deck.Deal(5)
	m.Hands = map[string][]poker.Card{
		m.Players[0]: a,
		m.Players[1]: b,
	}
	m.Deck = deck.Cards()
	m.Pot = 0
	m.Bets = map[string]int{m.Players[0]: 0, m.Players[1]: 0}
	m.Phase = PhaseBet1
	m.Current = m.Players[0]
}

// Clone returns a deep copy of the match. The store clones on load and save
// so callers never share mutable state with the persistence layer.
func (m *Match) Clone() *Match {
	c := *m
	c.Chips = copyIntMap(m.Chips)
	c.Bets = copyIntMap(m.Bets)
	c.Hands = make(map[string][]poker.Card, len(m.Hands))
	for p, hand := range m.Hands {
		cards := make([]poker.Card, len(hand))
		copy(cards, hand)
		c.Hands[p] = cards
	}
	c.Deck = make([]poker.Card, len(m.Deck))
	copy(c.Deck, m.Deck)
	return &c
}

func copyIntMap(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
