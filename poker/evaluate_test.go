package poker

import (
	"errors"
	"testing"
)

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		category Category
		ranks    []int
		kickers  []int
	}{
		{
			name:     "royal flush",
			cards:    "AsKsQsJsTs",
			category: RoyalFlush,
			ranks:    []int{},
			kickers:  []int{},
		},
		{
			name:     "straight flush",
			cards:    "9h8h7h6h5h",
			category: StraightFlush,
			ranks:    []int{9},
			kickers:  []int{},
		},
		{
			name:     "steel wheel is a five-high straight flush not royal",
			cards:    "Ad5d4d3d2d",
			category: StraightFlush,
			ranks:    []int{5},
			kickers:  []int{},
		},
		{
			name:     "four of a kind",
			cards:    "7s7h7d7c2s",
			category: FourOfAKind,
			ranks:    []int{7},
			kickers:  []int{2},
		},
		{
			name:     "full house",
			cards:    "TsThTd4c4s",
			category: FullHouse,
			ranks:    []int{10},
			kickers:  []int{4},
		},
		{
			name:     "flush",
			cards:    "KcJc9c6c3c",
			category: Flush,
			ranks:    []int{13, 11, 9, 6, 3},
			kickers:  []int{},
		},
		{
			name:     "straight",
			cards:    "8s7h6d5c4s",
			category: Straight,
			ranks:    []int{8},
			kickers:  []int{},
		},
		{
			name:     "wheel straight plays five high",
			cards:    "As2h3d4c5s",
			category: Straight,
			ranks:    []int{5},
			kickers:  []int{},
		},
		{
			name:     "ace high straight",
			cards:    "AsKhQdJcTs",
			category: Straight,
			ranks:    []int{14},
			kickers:  []int{},
		},
		{
			name:     "three of a kind",
			cards:    "QsQhQd8c3s",
			category: ThreeOfAKind,
			ranks:    []int{12},
			kickers:  []int{8, 3},
		},
		{
			name:     "two pair",
			cards:    "JsJh4d4cKs",
			category: TwoPair,
			ranks:    []int{11},
			kickers:  []int{4, 13},
		},
		{
			name:     "pair",
			cards:    "9s9hKdQc5s",
			category: Pair,
			ranks:    []int{9},
			kickers:  []int{13, 12, 5},
		},
		{
			name:     "high card",
			cards:    "KsJh8d5c2s",
			category: HighCard,
			ranks:    []int{13, 11, 8, 5, 2},
			kickers:  []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hr, err := Evaluate(MustParseCards(tt.cards))
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if hr.Category != tt.category {
				t.Errorf("category = %v, want %v", hr.Category, tt.category)
			}
			if !equalInts(hr.Ranks, tt.ranks) {
				t.Errorf("ranks = %v, want %v", hr.Ranks, tt.ranks)
			}
			if !equalInts(hr.Kickers, tt.kickers) {
				t.Errorf("kickers = %v, want %v", hr.Kickers, tt.kickers)
			}
		})
	}
}

func TestEvaluateKickerArity(t *testing.T) {
	// The kicker list length must match the category's remaining-card count.
	tests := []struct {
		cards      string
		category   Category
		numKickers int
	}{
		{"9s9hKdQc5s", Pair, 3},
		{"JsJh4d4cKs", TwoPair, 2},
		{"QsQhQd8c3s", ThreeOfAKind, 2},
		{"7s7h7d7c2s", FourOfAKind, 1},
		{"TsThTd4c4s", FullHouse, 1},
	}

	for _, tt := range tests {
		hr, err := Evaluate(MustParseCards(tt.cards))
		if err != nil {
			t.Fatalf("Evaluate(%s) error = %v", tt.cards, err)
		}
		if hr.Category != tt.category {
			t.Errorf("Evaluate(%s) category = %v, want %v", tt.cards, hr.Category, tt.category)
		}
		if len(hr.Kickers) != tt.numKickers {
			t.Errorf("Evaluate(%s) has %d kickers, want %d", tt.cards, len(hr.Kickers), tt.numKickers)
		}
	}
}

func TestEvaluateInvalidHandSize(t *testing.T) {
	for _, cards := range []string{"", "AsKs", "AsKsQsJsTs9s"} {
		if _, err := Evaluate(MustParseCards(cards)); !errors.Is(err, ErrInvalidHandSize) {
			t.Errorf("Evaluate(%q) error = %v, want ErrInvalidHandSize", cards, err)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
