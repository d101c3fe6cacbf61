package engine

import (
	"github.com/pokerduel/pokerduel/internal/duel"
	"github.com/pokerduel/pokerduel/poker"
)

// Snapshot is the read model returned by every engine operation. Only the
// requesting participant's own hand is ever attached; the request layer
// never sees the opponent's cards.
type Snapshot struct {
	MatchID      string         `json:"match_id"`
	Phase        duel.Phase     `json:"phase"`
	Current      string         `json:"current_player,omitempty"`
	Pot          int            `json:"pot"`
	Chips        map[string]int `json:"chips"`
	Bets         map[string]int `json:"bets"`
	HandNum      int            `json:"current_hand"`
	GameOver     bool           `json:"game_over,omitempty"`
	Winner       string         `json:"winner,omitempty"`
	Draw         bool           `json:"draw,omitempty"`
	Hand         []string       `json:"hand,omitempty"`
	HandPretty   []string       `json:"hand_pretty,omitempty"`
	ValidActions []duel.Action  `json:"valid_actions,omitempty"`
	Events       []duel.Event   `json:"-"`
}

// snapshot builds the read model for a requester. An empty requester (or an
// outsider) gets the public view with no hand attached.
func (e *Engine) snapshot(m *duel.Match, requester string, events []duel.Event) *Snapshot {
	s := &Snapshot{
		MatchID:  m.ID,
		Phase:    m.Phase,
		Current:  m.Current,
		Pot:      m.Pot,
		Chips:    copyIntMap(m.Chips),
		Bets:     copyIntMap(m.Bets),
		HandNum:  m.HandNum,
		GameOver: m.Over(),
		Events:   events,
	}
	if m.Over() {
		s.Winner = m.Winner
		s.Draw = m.Winner == ""
	}
	if m.HasParticipant(requester) {
		hand := m.Hand(requester)
		s.Hand = cardStrings(hand)
		s.HandPretty = poker.FormatCards(hand)
		if requester == m.Current {
			s.ValidActions = m.ValidActions()
		}
	}
	return s
}

func cardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func copyIntMap(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
