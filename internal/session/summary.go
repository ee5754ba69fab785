package session

import "time"

// Summary holds the data displayed on the results screen and logged to
// session history.
type Summary struct {
	SessionID string
	DeckID    int64
	DeckTitle string
	Total     int
	// Missed is zero by construction: a completed session has driven every
	// queued card to known.
	Missed   int
	Rounds   int
	Known    int
	Duration time.Duration
}

// Summarize builds the completion summary for a finished session.
func (e *Engine) Summarize() Summary {
	return Summary{
		SessionID: e.ID,
		DeckID:    e.deck.ID,
		DeckTitle: e.deck.Title,
		Total:     len(e.deck.Cards),
		Missed:    0,
		Rounds:    e.rounds,
		Known:     e.knownCount,
		Duration:  time.Since(e.startedAt),
	}
}
