package poker

import (
	"errors"
	"sort"
)

// ErrInvalidHandSize is returned when a hand does not hold exactly 5 cards.
var ErrInvalidHandSize = errors.New("hand must contain exactly 5 cards")

// Category enumerates the hand categories ordered from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the machine-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "high_card"
	case Pair:
		return "pair"
	case TwoPair:
		return "two_pair"
	case ThreeOfAKind:
		return "three_of_a_kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	case RoyalFlush:
		return "royal_flush"
	default:
		return "unknown"
	}
}

// Describe returns a human-readable category name.
func (c Category) Describe() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the result of evaluating a 5-card hand: a category plus an
// ordered tie-break key. Ranks holds the rank value(s) that define the
// category (the paired rank for a pair, the high card of a straight, all
// five cards descending for flushes and high cards). Kickers holds the
// remaining ranks in descending order.
type HandRank struct {
	Category Category
	Ranks    []int
	Kickers  []int
}

// Evaluate classifies a 5-card hand. It is deterministic and total: any five
// distinct cards produce exactly one category.
func Evaluate(cards []Card) (HandRank, error) {
	if len(cards) != 5 {
		return HandRank{}, ErrInvalidHandSize
	}

	ranks := make([]int, 5)
	suits := make([]Suit, 5)
	for i, c := range cards {
		ranks[i] = c.Rank.Value()
		suits[i] = c.Suit
	}

	// Group ranks by occurrence count, ordered by (count desc, rank desc).
	counts := map[int]int{}
	for _, r := range ranks {
		counts[r]++
	}
	type group struct {
		rank  int
		count int
	}
	groups := make([]group, 0, len(counts))
	for r, n := range counts {
		groups = append(groups, group{rank: r, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	shape := make([]int, len(groups))
	values := make([]int, len(groups))
	for i, g := range groups {
		shape[i] = g.count
		values[i] = g.rank
	}

	flush := isFlush(suits)
	straightHigh := straightHighCard(ranks)

	switch {
	case flush && straightHigh == int(Ace):
		return HandRank{Category: RoyalFlush, Ranks: []int{}, Kickers: []int{}}, nil
	case flush && straightHigh > 0:
		return HandRank{Category: StraightFlush, Ranks: []int{straightHigh}, Kickers: []int{}}, nil
	case matchShape(shape, 4, 1):
		return HandRank{Category: FourOfAKind, Ranks: values[:1], Kickers: values[1:]}, nil
	case matchShape(shape, 3, 2):
		return HandRank{Category: FullHouse, Ranks: values[:1], Kickers: values[1:]}, nil
	case flush:
		return HandRank{Category: Flush, Ranks: sortedDescending(ranks), Kickers: []int{}}, nil
	case straightHigh > 0:
		return HandRank{Category: Straight, Ranks: []int{straightHigh}, Kickers: []int{}}, nil
	case matchShape(shape, 3, 1, 1):
		return HandRank{Category: ThreeOfAKind, Ranks: values[:1], Kickers: values[1:]}, nil
	case matchShape(shape, 2, 2, 1):
		return HandRank{Category: TwoPair, Ranks: values[:1], Kickers: values[1:]}, nil
	case matchShape(shape, 2, 1, 1, 1):
		return HandRank{Category: Pair, Ranks: values[:1], Kickers: values[1:]}, nil
	default:
		return HandRank{Category: HighCard, Ranks: sortedDescending(ranks), Kickers: []int{}}, nil
	}
}

// isFlush reports whether all five suits are identical.
func isFlush(suits []Suit) bool {
	for i := 1; i < len(suits); i++ {
		if suits[i] != suits[0] {
			return false
		}
	}
	return true
}

// straightHighCard returns the high card value of a straight, or 0 if the
// ranks do not form one. The wheel (A-2-3-4-5) counts as a five-high
// straight so that it ranks below a 6-high straight.
func straightHighCard(ranks []int) int {
	sorted := sortedAscending(ranks)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return 0
		}
	}
	if sorted[len(sorted)-1]-sorted[0] == 4 {
		return sorted[len(sorted)-1]
	}
	// Wheel: A-2-3-4-5 plays as five-high.
	if sorted[0] == int(Two) && sorted[3] == int(Five) && sorted[4] == int(Ace) {
		return int(Five)
	}
	return 0
}

func matchShape(shape []int, want ...int) bool {
	if len(shape) != len(want) {
		return false
	}
	for i := range shape {
		if shape[i] != want[i] {
			return false
		}
	}
	return true
}

func sortedAscending(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	sort.Ints(out)
	return out
}

func sortedDescending(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
