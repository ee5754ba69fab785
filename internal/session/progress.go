package session

// Progress is a read-only snapshot of session state, recomputed after every
// queue mutation.
type Progress struct {
	// CompletedInRound counts cards cleared from the current run:
	// total - (queue + deferred). The active card counts as completed.
	CompletedInRound int
	// TotalInDeck is the full deck size, not just this run's pool.
	TotalInDeck int
	// KnownCount is the session counter, seeded from the persisted known set.
	KnownCount int
	// UnknownCount is the deferred-replay count while a session is running.
	UnknownCount int
	// PercentMastery is |knownIds| / |cards| * 100; zero for an empty deck.
	PercentMastery float64
}

// Progress computes the current snapshot.
func (e *Engine) Progress() Progress {
	total := len(e.deck.Cards)
	p := Progress{
		TotalInDeck:      total,
		CompletedInRound: total - (len(e.queue) + len(e.nextRound)),
		KnownCount:       e.knownCount,
		UnknownCount:     len(e.nextRound),
	}
	if total > 0 {
		p.PercentMastery = float64(len(e.deck.Stats.KnownIDs)) / float64(total) * 100
	}
	return p
}

// DeckMastery is the library-display variant of PercentMastery, computed
// from persisted state without an engine.
func DeckMastery(known, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(known) / float64(total) * 100
}
