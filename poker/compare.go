package poker

// Compare returns 1 if a beats b, -1 if b beats a, and 0 on a tie.
// Category precedence decides first; within a category the tie-break key is
// compared element-wise (defining ranks, then kickers).
func Compare(a, b HandRank) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	if c := compareValues(a.Ranks, b.Ranks); c != 0 {
		return c
	}
	return compareValues(a.Kickers, b.Kickers)
}

// CompareHands evaluates and compares two 5-card hands directly.
func CompareHands(a, b []Card) (int, error) {
	rankA, err := Evaluate(a)
	if err != nil {
		return 0, err
	}
	rankB, err := Evaluate(b)
	if err != nil {
		return 0, err
	}
	return Compare(rankA, rankB), nil
}

func compareValues(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] > b[i] {
			return 1
		}
		if a[i] < b[i] {
			return -1
		}
	}
	return 0
}
