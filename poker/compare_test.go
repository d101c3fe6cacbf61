package poker

import "testing"

func TestCompareCategoryPrecedence(t *testing.T) {
	// Category ordering holds regardless of raw rank values.
	tests := []struct {
		name   string
		winner string
		loser  string
	}{
		{"quads beat full house", "7s7h7d7c2s", "AsAhAdKcKs"},
		{"full house beats flush", "2s2h2d3c3s", "AcKcQcJc9c"},
		{"flush beats straight", "7c5c4c3c2c", "AsKhQdJcTs"},
		{"straight beats trips", "6s5h4d3c2s", "AsAhAdKcQs"},
		{"trips beat two pair", "2s2h2dKcQs", "AsAhKdKcQs"},
		{"two pair beats pair", "3s3h2d2cKs", "AsAhKdQc5s"},
		{"pair beats high card", "2s2h5d6c7s", "AsKhQdJc9s"},
		{"royal flush beats straight flush", "AsKsQsJsTs", "KhQhJhTh9h"},
		{"straight flush beats quads", "6h5h4h3h2h", "AsAhAdAcKs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CompareHands(MustParseCards(tt.winner), MustParseCards(tt.loser))
			if err != nil {
				t.Fatalf("CompareHands() error = %v", err)
			}
			if result != 1 {
				t.Errorf("CompareHands(%s, %s) = %d, want 1", tt.winner, tt.loser, result)
			}
		})
	}
}

func TestCompareWithinCategory(t *testing.T) {
	tests := []struct {
		name   string
		winner string
		loser  string
	}{
		{"higher pair wins", "KsKh8d5c2s", "QsQhAdKc9s"},
		{"pair kickers break ties", "9s9hAdQc5s", "9d9cKdQh5h"},
		{"six high straight beats the wheel", "6s5h4d3c2s", "As2h3d4c5d"},
		{"higher straight wins", "9s8h7d6c5s", "8c7s6h5d4c"},
		{"flush compared card by card", "AcKcQcJc8c", "AhKhQhTh9h"},
		{"two pair high pair first", "AsAh3d3c4s", "KsKhQdQcJs"},
		{"two pair kicker decides", "JsJh4d4cKs", "JdJc4h4sQh"},
		{"quads kicker decides", "7s7h7d7cAs", "7s7h7d7cKs"},
		{"full house trips first", "9s9h9d2c2s", "8s8h8dAcAs"},
		{"high card runs all five", "KsJh8d5c3s", "KdJc8h5s2h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CompareHands(MustParseCards(tt.winner), MustParseCards(tt.loser))
			if err != nil {
				t.Fatalf("CompareHands() error = %v", err)
			}
			if result != 1 {
				t.Errorf("CompareHands(%s, %s) = %d, want 1", tt.winner, tt.loser, result)
			}
			// Symmetry: the reverse comparison must lose.
			reverse, err := CompareHands(MustParseCards(tt.loser), MustParseCards(tt.winner))
			if err != nil {
				t.Fatalf("CompareHands() error = %v", err)
			}
			if reverse != -1 {
				t.Errorf("CompareHands(%s, %s) = %d, want -1", tt.loser, tt.winner, reverse)
			}
		})
	}
}

func TestCompareTies(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"same hand different suits", "AsKhQd9c5s", "AdKcQs9h5d"},
		{"equal straights", "9s8h7d6c5s", "9d8c7h6s5d"},
		{"equal pairs and kickers", "TsThAdKc2s", "TdTcAhKs2h"},
		{"two royal flushes", "AsKsQsJsTs", "AhKhQhJhTh"},
		{"wheel ties wheel", "As2h3d4c5s", "Ad2c3h4s5d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CompareHands(MustParseCards(tt.a), MustParseCards(tt.b))
			if err != nil {
				t.Fatalf("CompareHands() error = %v", err)
			}
			if result != 0 {
				t.Errorf("CompareHands(%s, %s) = %d, want 0", tt.a, tt.b, result)
			}
		})
	}
}

func TestCompareSameHandIsTie(t *testing.T) {
	hands := []string{
		"AsKsQsJsTs",
		"7s7h7d7c2s",
		"KsJh8d5c2s",
		"As2h3d4c5s",
	}
	for _, cards := range hands {
		hr, err := Evaluate(MustParseCards(cards))
		if err != nil {
			t.Fatalf("Evaluate(%s) error = %v", cards, err)
		}
		if Compare(hr, hr) != 0 {
			t.Errorf("Compare(%s, %s) != 0", cards, cards)
		}
	}
}
