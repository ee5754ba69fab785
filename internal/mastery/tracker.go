// Package mastery maintains the per-deck known/unknown card sets and writes
// every outcome through to the deck store.
package mastery

import (
	"context"
	"fmt"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/store"
)

// Tracker records card outcomes against the collection and persists after
// every successful update (write-through, no batching). Callers tolerate the
// latency of that write; remote failures are absorbed by the store.
type Tracker struct {
	col     *deck.Collection
	backend store.Backend
}

// NewTracker creates a tracker over the given collection and backend.
func NewTracker(col *deck.Collection, backend store.Backend) *Tracker {
	return &Tracker{col: col, backend: backend}
}

// RecordOutcome moves the card id into exactly one of the deck's known or
// unknown sets and persists the collection. Recording the same outcome twice
// is a no-op beyond the removal-then-add. Fails with deck.ErrDeckNotFound
// when the deck id does not resolve.
func (t *Tracker) RecordOutcome(ctx context.Context, deckID int64, cardID int, known bool) error {
	d, err := t.col.Deck(deckID)
	if err != nil {
		return err
	}
	d.Stats.Record(cardID, known)
	if err := t.backend.Save(ctx, t.col); err != nil {
		return fmt.Errorf("persist outcome: %w", err)
	}
	return nil
}

// Reset empties both mastery sets of the deck, persists, and returns the new
// (zero) counts.
func (t *Tracker) Reset(ctx context.Context, deckID int64) (known, unknown int, err error) {
	d, err := t.col.Deck(deckID)
	if err != nil {
		return 0, 0, err
	}
	d.Stats.Reset()
	if err := t.backend.Save(ctx, t.col); err != nil {
		return 0, 0, fmt.Errorf("persist reset: %w", err)
	}
	return len(d.Stats.KnownIDs), len(d.Stats.UnknownIDs), nil
}

// Counts returns the persisted known/unknown counts for library display.
func (t *Tracker) Counts(deckID int64) (known, unknown int, err error) {
	d, err := t.col.Deck(deckID)
	if err != nil {
		return 0, 0, err
	}
	return len(d.Stats.KnownIDs), len(d.Stats.UnknownIDs), nil
}
