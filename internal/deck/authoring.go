package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCards is returned when authoring input produced no valid cards.
var ErrNoCards = errors.New("no valid cards found")

// ParseCards turns authoring text into a card list. Each line is split at its
// first comma into term and definition; lines without a comma or with an
// empty side are skipped. Card ids are assigned sequentially from 1 so that
// two cards authored within the same clock tick can never collide.
func ParseCards(text string) ([]Card, error) {
	var cards []Card
	for _, line := range strings.Split(text, "\n") {
		comma := strings.Index(line, ",")
		if comma < 0 {
			continue
		}
		term := strings.TrimSpace(line[:comma])
		def := strings.TrimSpace(line[comma+1:])
		if term == "" || def == "" {
			continue
		}
		cards = append(cards, Card{
			ID:         len(cards) + 1,
			Term:       term,
			Definition: def,
		})
	}
	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	return cards, nil
}

// Normalize validates an authored card before it may enter a deck. Cards with
// options are normalized to exactly one correct option: when none is marked
// the first becomes correct, when several are marked only the first survives.
func Normalize(c *Card) error {
	if strings.TrimSpace(c.Term) == "" {
		return fmt.Errorf("card %d: empty term", c.ID)
	}
	if strings.TrimSpace(c.Definition) == "" {
		return fmt.Errorf("card %d: empty definition", c.ID)
	}
	if len(c.Options) == 0 {
		return nil
	}

	seen := false
	for i := range c.Options {
		if !c.Options[i].IsCorrect {
			continue
		}
		if seen {
			c.Options[i].IsCorrect = false
			continue
		}
		seen = true
	}
	if !seen {
		c.Options[0].IsCorrect = true
	}
	return nil
}

// NormalizeAll normalizes every card and reassigns sequential ids.
func NormalizeAll(cards []Card) error {
	for i := range cards {
		cards[i].ID = i + 1
		if err := Normalize(&cards[i]); err != nil {
			return err
		}
	}
	return nil
}
