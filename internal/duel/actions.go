package duel

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/thoas/go-funk"

	"github.com/pokerduel/pokerduel/poker"
)

// Act applies a betting action for the given actor and returns the events it
// produced. The RNG is only consumed when the hand settles and the next one
// is dealt. All validation happens before any mutation: on error the Match
// is untouched.
func (m *Match) Act(rng *rand.Rand, actor string, action Action, amount int) ([]Event, error) {
	if actor != m.Current {
		return nil, ErrNotCurrentActor
	}
	if m.Phase != PhaseBet1 && m.Phase != PhaseBet2 {
		return nil, ErrInvalidPhase
	}

	opp := m.Opponent(actor)
	oppBet := m.Bets[opp]

	switch action {
	case ActionFold:
		m.Chips[opp] += m.Pot
		events := []Event{
			ActionTakenEvent{Actor: actor, Action: ActionFold, Pot: 0},
			HandSettledEvent{HandNum: m.HandNum, Winner: opp, Amount: m.Pot, Reason: SettleFold},
		}
		return append(events, m.finishHand(rng)...), nil

	case ActionBet:
		if oppBet != 0 {
			return nil, fmt.Errorf("%w: opponent has an open bet, call or raise", ErrInvalidAction)
		}
		if amount < m.Rules.MinBet {
			return nil, fmt.Errorf("%w: minimum bet is %d chips", ErrBetTooSmall, m.Rules.MinBet)
		}

	case ActionRaise:
		if oppBet == 0 {
			return nil, fmt.Errorf("%w: nothing to raise, bet instead", ErrInvalidAction)
		}
		if min := oppBet + m.Rules.MinBet; amount < min {
			return nil, fmt.Errorf("%w: minimum raise is %d chips", ErrBetTooSmall, min)
		}

	case ActionCall:
		amount = oppBet

	default:
		return nil, ErrInvalidAction
	}

	if m.Chips[actor] < amount {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientChips, m.Chips[actor], amount)
	}

	// Commit the wager and pass the turn.
	m.Chips[actor] -= amount
	m.Bets[actor] = amount
	m.Pot += amount
	m.Current = opp

	events := []Event{ActionTakenEvent{Actor: actor, Action: action, Amount: amount, Pot: m.Pot}}

	// Matched positive bets close the betting round. The turn has already
	// flipped, so the participant who did not close the round acts first in
	// the next phase.
	if m.Bets[actor] == m.Bets[opp] && m.Bets[actor] > 0 {
		if m.Phase == PhaseBet1 {
			m.Phase = PhaseDraw
			return append(events, DrawOpenEvent{Actor: m.Current}), nil
		}
		m.Phase = PhaseShowdown
		return append(events, m.resolveShowdown(rng)...), nil
	}

	return append(events, TurnChangedEvent{Actor: m.Current, Phase: m.Phase}), nil
}

// Discard removes up to three cards from the actor's hand and replaces them
// from the remaining deck. If the deck runs dry the missing positions stay
// unfilled rather than aborting the hand. On success the second betting
// round opens with the opponent to act.
func (m *Match) Discard(actor string, indices []int) ([]Event, error) {
	if m.Phase != PhaseDraw {
		return nil, ErrInvalidPhase
	}
	if actor != m.Current {
		return nil, ErrNotCurrentActor
	}
	if len(indices) > 3 {
		return nil, ErrTooManyDiscards
	}
	for _, i := range indices {
		if i < 1 || i > 5 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidCardIndex, i)
		}
	}
	if len(funk.UniqInt(indices)) != len(indices) {
		return nil, fmt.Errorf("%w: duplicate index", ErrInvalidCardIndex)
	}

	// Remove from the highest position down so earlier removals don't shift
	// the remaining indices.
	hand := m.Hands[actor]
	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, i := range sorted {
		hand = append(hand[:i-1], hand[i:]...)
	}

	deck := poker.NewDeckFromCards(m.Deck)
	drawn := deck.DealUpTo(5 - len(hand))
	m.Hands[actor] = append(hand, drawn...)
	m.Deck = deck.Cards()

	m.Phase = PhaseBet2
	m.Bets = map[string]int{m.Players[0]: 0, m.Players[1]: 0}
	m.Current = m.Opponent(actor)

	return []Event{
		CardsDrawnEvent{Actor: actor, Discarded: len(indices), Drawn: len(drawn)},
		TurnChangedEvent{Actor: m.Current, Phase: PhaseBet2},
	}, nil
}

// resolveShowdown settles the pot by comparing both hands. There is no
// player input in showdown, so the caller runs it immediately when the
// second betting round closes.
func (m *Match) resolveShowdown(rng *rand.Rand) []Event {
	rankA, _ := poker.Evaluate(m.Hands[m.Players[0]])
	rankB, _ := poker.Evaluate(m.Hands[m.Players[1]])

	var events []Event
	switch poker.Compare(rankA, rankB) {
	case 1:
		m.Chips[m.Players[0]] += m.Pot
		events = append(events, HandSettledEvent{
			HandNum: m.HandNum, Winner: m.Players[0], Amount: m.Pot,
			Reason: SettleShowdown, Category: rankA.Category.String(),
		})
	case -1:
		m.Chips[m.Players[1]] += m.Pot
		events = append(events, HandSettledEvent{
			HandNum: m.HandNum, Winner: m.Players[1], Amount: m.Pot,
			Reason: SettleShowdown, Category: rankB.Category.String(),
		})
	default:
		// Split pot. Integer division would drop the odd chip, so it goes
		// to the first seat to keep the chip total conserved.
		half := m.Pot / 2
		m.Chips[m.Players[0]] += half + m.Pot%2
		m.Chips[m.Players[1]] += half
		events = append(events, HandSettledEvent{
			HandNum: m.HandNum, Amount: m.Pot,
			Reason: SettleTie, Category: rankA.Category.String(),
		})
	}

	return append(events, m.finishHand(rng)...)
}

// finishHand advances the hand counter and either ends the match or deals
// the next hand. The pot has already been distributed.
func (m *Match) finishHand(rng *rand.Rand) []Event {
	m.Pot = 0
	m.Bets = map[string]int{m.Players[0]: 0, m.Players[1]: 0}
	m.HandNum++

	if m.HandNum > m.Rules.MaxHands {
		m.Phase = PhaseMatchOver
		chipsA, chipsB := m.Chips[m.Players[0]], m.Chips[m.Players[1]]
		ended := MatchEndedEvent{FinalChips: copyIntMap(m.Chips)}
		switch {
		case chipsA > chipsB:
			m.Winner = m.Players[0]
			ended.Winner = m.Players[0]
		case chipsB > chipsA:
			m.Winner = m.Players[1]
			ended.Winner = m.Players[1]
		default:
			// Level stacks after the last hand are reported as a draw
			// rather than handing the match to an arbitrary seat.
			ended.Draw = true
		}
		m.Current = ""
		return []Event{ended}
	}

	m.dealHand(rng)
	return []Event{
		HandStartedEvent{HandNum: m.HandNum},
		TurnChangedEvent{Actor: m.Current, Phase: PhaseBet1},
	}
}
