package deck

import "time"

// Type distinguishes how a deck is played.
type Type string

const (
	// TypeFlashcard presents term/definition cards with a manual flip.
	TypeFlashcard Type = "flashcard"
	// TypeTest presents each card as a multiple-choice question.
	TypeTest Type = "test"
)

// Option is one multiple-choice answer for a quiz-type card.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Card is a single term/definition unit. Quiz-type cards may carry authored
// options; after normalization exactly one option is marked correct.
type Card struct {
	ID          int      `json:"id"`
	Term        string   `json:"term"`
	Definition  string   `json:"definition"`
	Options     []Option `json:"options,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// HasOptions reports whether the card carries authored multiple-choice options.
func (c *Card) HasOptions() bool {
	return len(c.Options) > 0
}

// CorrectOption returns the index of the correct option, or -1 if the card has
// no options. Cards that went through authoring always have exactly one.
func (c *Card) CorrectOption() int {
	for i, o := range c.Options {
		if o.IsCorrect {
			return i
		}
	}
	return -1
}

// Deck is a named collection of cards plus its persisted mastery state.
type Deck struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Type      Type         `json:"type"`
	Cards     []Card       `json:"cards"`
	SubjectID *int64       `json:"subjectId,omitempty"`
	TopicID   *int64       `json:"topicId,omitempty"`
	Stats     MasteryState `json:"stats"`
}

// New creates a deck with a creation-timestamp-derived id and empty mastery.
func New(title string, typ Type, cards []Card) *Deck {
	return &Deck{
		ID:    time.Now().UnixMilli(),
		Title: title,
		Type:  typ,
		Cards: cards,
	}
}

// Card returns the card with the given id, or nil if absent.
func (d *Deck) Card(id int) *Card {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return &d.Cards[i]
		}
	}
	return nil
}

// Replace swaps the deck's cards for a re-authored list and resets mastery:
// card ids regenerate on edit, so the old known/unknown sets are meaningless.
func (d *Deck) Replace(cards []Card) {
	d.Cards = cards
	d.Stats.Reset()
}

// Subject is a flat categorization record decks may reference.
type Subject struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Topic is a sub-categorization record belonging to a subject.
type Topic struct {
	ID        int64  `json:"id"`
	SubjectID int64  `json:"subjectId"`
	Name      string `json:"name"`
}
