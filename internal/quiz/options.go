// Package quiz builds the multiple-choice option set for test-mode cards.
package quiz

import (
	"math/rand"

	"github.com/mdelacru/fichas/internal/deck"
)

// distractorCount is how many wrong options accompany the correct one.
const distractorCount = 3

// Build returns the shuffled options to display for a card. Cards with
// authored options use them verbatim (already normalized to exactly one
// correct), shuffled in order only. Cards without draw up to three other
// cards' definitions as distractors, fewer when the deck is smaller than
// four cards.
func Build(d *deck.Deck, c *deck.Card, rng *rand.Rand) []deck.Option {
	if c.HasOptions() {
		opts := make([]deck.Option, len(c.Options))
		copy(opts, c.Options)
		shuffle(opts, rng)
		return opts
	}

	others := make([]*deck.Card, 0, len(d.Cards))
	for i := range d.Cards {
		if d.Cards[i].ID != c.ID {
			others = append(others, &d.Cards[i])
		}
	}
	shuffleCards(others, rng)
	if len(others) > distractorCount {
		others = others[:distractorCount]
	}

	opts := make([]deck.Option, 0, len(others)+1)
	opts = append(opts, deck.Option{Text: c.Definition, IsCorrect: true})
	for _, o := range others {
		opts = append(opts, deck.Option{Text: o.Definition})
	}
	shuffle(opts, rng)
	return opts
}

// Correct returns the index of the correct option in a built set.
func Correct(opts []deck.Option) int {
	for i, o := range opts {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}

func shuffle(opts []deck.Option, rng *rand.Rand) {
	for i := len(opts) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		opts[i], opts[j] = opts[j], opts[i]
	}
}

func shuffleCards(cards []*deck.Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
