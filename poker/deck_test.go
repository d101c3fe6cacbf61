package poker

import (
	"errors"
	"testing"

	"github.com/pokerduel/pokerduel/internal/randutil"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := NewDeck(randutil.New(1))

	if d.Remaining() != 52 {
		t.Fatalf("Remaining() = %d, want 52", d.Remaining())
	}

	seen := make(map[Card]bool)
	for _, c := range d.Cards() {
		if seen[c] {
			t.Errorf("duplicate card %v in deck", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("deck has %d unique cards, want 52", len(seen))
	}
}

func TestDeckDeal(t *testing.T) {
	d := NewDeck(randutil.New(2))

	first, err := d.Deal(5)
	if err != nil {
		t.Fatalf("Deal(5) error = %v", err)
	}
	if len(first) != 5 {
		t.Fatalf("Deal(5) returned %d cards", len(first))
	}
	if d.Remaining() != 47 {
		t.Errorf("Remaining() = %d, want 47", d.Remaining())
	}

	// Dealt cards must not reappear.
	second, err := d.Deal(47)
	if err != nil {
		t.Fatalf("Deal(47) error = %v", err)
	}
	for _, a := range first {
		for _, b := range second {
			if a == b {
				t.Errorf("card %v dealt twice", a)
			}
		}
	}
}

func TestDeckDealExhausted(t *testing.T) {
	d := NewDeck(randutil.New(3))

	if _, err := d.Deal(53); !errors.Is(err, ErrDeckExhausted) {
		t.Errorf("Deal(53) error = %v, want ErrDeckExhausted", err)
	}
	if d.Remaining() != 52 {
		t.Errorf("failed deal consumed cards: Remaining() = %d", d.Remaining())
	}

	if _, err := d.Deal(52); err != nil {
		t.Fatalf("Deal(52) error = %v", err)
	}
	if _, err := d.Deal(1); !errors.Is(err, ErrDeckExhausted) {
		t.Errorf("Deal(1) on empty deck error = %v, want ErrDeckExhausted", err)
	}
}

func TestDeckDealUpTo(t *testing.T) {
	d := NewDeck(randutil.New(4))
	d.DealUpTo(50)

	cards := d.DealUpTo(3)
	if len(cards) != 2 {
		t.Errorf("DealUpTo(3) with 2 left returned %d cards", len(cards))
	}
	if d.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", d.Remaining())
	}
	if cards = d.DealUpTo(3); len(cards) != 0 {
		t.Errorf("DealUpTo(3) on empty deck returned %d cards", len(cards))
	}
}

func TestNewDeckFromCardsPreservesOrder(t *testing.T) {
	cards := MustParseCards("AsKhQd")
	d := NewDeckFromCards(cards)

	got, err := d.Deal(3)
	if err != nil {
		t.Fatalf("Deal(3) error = %v", err)
	}
	for i := range cards {
		if got[i] != cards[i] {
			t.Errorf("card %d = %v, want %v", i, got[i], cards[i])
		}
	}
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	a := NewDeck(randutil.New(42))
	b := NewDeck(randutil.New(42))
	c := NewDeck(randutil.New(43))

	aCards, bCards, cCards := a.Cards(), b.Cards(), c.Cards()
	same := true
	for i := range aCards {
		if aCards[i] != bCards[i] {
			same = false
		}
	}
	if !same {
		t.Error("same seed produced different shuffles")
	}

	diff := false
	for i := range aCards {
		if aCards[i] != cCards[i] {
			diff = true
		}
	}
	if !diff {
		t.Error("different seeds produced identical shuffles")
	}
}
