package quiz

import (
	"math/rand"
	"testing"

	"github.com/mdelacru/fichas/internal/deck"
)

func deckOf(n int) *deck.Deck {
	var cards []deck.Card
	for i := 1; i <= n; i++ {
		cards = append(cards, deck.Card{ID: i, Term: "t", Definition: "def"})
	}
	return deck.New("d", deck.TypeTest, cards)
}

func TestBuild_GeneratedDistractors(t *testing.T) {
	d := deckOf(6)
	rng := rand.New(rand.NewSource(1))

	opts := Build(d, &d.Cards[0], rng)

	if len(opts) != 4 {
		t.Fatalf("got %d options, want 4", len(opts))
	}
	correct := 0
	for _, o := range opts {
		if o.IsCorrect {
			correct++
			if o.Text != d.Cards[0].Definition {
				t.Errorf("correct option text = %q", o.Text)
			}
		}
	}
	if correct != 1 {
		t.Errorf("correct options = %d, want exactly 1", correct)
	}
}

func TestBuild_SmallDeck(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	d3 := deckOf(3)
	if got := len(Build(d3, &d3.Cards[0], rng)); got != 3 {
		t.Errorf("3-card deck: %d options, want 3", got)
	}

	d1 := deckOf(1)
	opts := Build(d1, &d1.Cards[0], rng)
	if len(opts) != 1 || !opts[0].IsCorrect {
		t.Errorf("1-card deck: opts = %+v, want only the correct option", opts)
	}
}

func TestBuild_AuthoredOptionsVerbatim(t *testing.T) {
	d := deckOf(5)
	c := &d.Cards[0]
	c.Options = []deck.Option{
		{Text: "w1"}, {Text: "right", IsCorrect: true}, {Text: "w2"},
	}
	rng := rand.New(rand.NewSource(1))

	opts := Build(d, c, rng)

	if len(opts) != 3 {
		t.Fatalf("got %d options, want authored count", len(opts))
	}
	texts := make(map[string]bool)
	for _, o := range opts {
		texts[o.Text] = true
	}
	for _, want := range []string{"w1", "right", "w2"} {
		if !texts[want] {
			t.Errorf("authored option %q missing", want)
		}
	}
	if c := Correct(opts); c < 0 || opts[c].Text != "right" {
		t.Errorf("Correct = %d (%+v)", c, opts)
	}
}

func TestBuild_DoesNotMutateAuthoredOrder(t *testing.T) {
	d := deckOf(2)
	c := &d.Cards[0]
	c.Options = []deck.Option{{Text: "a", IsCorrect: true}, {Text: "b"}}
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 10; i++ {
		Build(d, c, rng)
	}
	if c.Options[0].Text != "a" || c.Options[1].Text != "b" {
		t.Errorf("authored options reordered: %+v", c.Options)
	}
}
