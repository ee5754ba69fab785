package session

import (
	"context"
	"math/rand"
	"testing"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/mastery"
)

type nopBackend struct{ saves int }

func (b *nopBackend) Load(context.Context) (*deck.Collection, error) { return nil, nil }

func (b *nopBackend) Save(context.Context, *deck.Collection) error {
	b.saves++
	return nil
}

func newEngine(t *testing.T, cards []deck.Card) (*Engine, *deck.Deck) {
	t.Helper()
	col := deck.NewCollection()
	d := deck.New("test", deck.TypeFlashcard, cards)
	col.AddDeck(d)
	tracker := mastery.NewTracker(col, &nopBackend{})
	return New(d, tracker, rand.New(rand.NewSource(1))), d
}

func twoCards() []deck.Card {
	return []deck.Card{
		{ID: 1, Term: "a", Definition: "A"},
		{ID: 2, Term: "b", Definition: "B"},
	}
}

func TestEngine_AllKnown_FinishesInOneRound(t *testing.T) {
	e, d := newEngine(t, twoCards())
	ctx := context.Background()
	e.Start()

	for e.Phase() == PhasePresenting {
		if err := e.SubmitAnswer(ctx, true); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
	}

	if e.Phase() != PhaseFinished {
		t.Fatalf("phase = %v, want PhaseFinished", e.Phase())
	}
	p := e.Progress()
	if p.CompletedInRound != len(d.Cards) {
		t.Errorf("completed = %d, want %d", p.CompletedInRound, len(d.Cards))
	}
	if p.UnknownCount != 0 {
		t.Errorf("deferred queue = %d, want 0", p.UnknownCount)
	}
	if e.Rounds() != 1 {
		t.Errorf("rounds = %d, want 1", e.Rounds())
	}
}

func TestEngine_MissedCardReplaysNextRound(t *testing.T) {
	e, d := newEngine(t, twoCards())
	ctx := context.Background()
	e.Start()

	first := e.Current()
	if first == nil {
		t.Fatal("no current card after Start")
	}
	if err := e.SubmitAnswer(ctx, false); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	// First card deferred; one left in the round.
	if got := e.Progress().UnknownCount; got != 1 {
		t.Fatalf("deferred = %d, want 1", got)
	}
	second := e.Current()
	if second.ID == first.ID {
		t.Fatal("missed card re-shown immediately")
	}

	if err := e.SubmitAnswer(ctx, true); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if e.Progress().KnownCount != 1 {
		t.Errorf("knownCount = %d, want 1", e.Progress().KnownCount)
	}
	if !d.Stats.Known(second.ID) {
		t.Errorf("card %d not persisted as known", second.ID)
	}

	// Round transition replays the deferred card.
	if e.Phase() != PhasePresenting {
		t.Fatalf("phase = %v, want replay round", e.Phase())
	}
	if e.Rounds() != 2 {
		t.Errorf("rounds = %d, want 2", e.Rounds())
	}
	if e.Current().ID != first.ID {
		t.Errorf("replayed card = %d, want %d", e.Current().ID, first.ID)
	}

	if err := e.SubmitAnswer(ctx, true); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if e.Phase() != PhaseFinished {
		t.Fatalf("phase = %v, want PhaseFinished", e.Phase())
	}
	if !d.Stats.Known(1) || !d.Stats.Known(2) {
		t.Errorf("knownIds = %v, want both cards", d.Stats.KnownIDs)
	}
	if len(d.Stats.UnknownIDs) != 0 {
		t.Errorf("unknownIds = %v, want empty", d.Stats.UnknownIDs)
	}

	sum := e.Summarize()
	if sum.Total != 2 || sum.Missed != 0 || sum.Rounds != 2 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestEngine_EmptyDeck_FinishesImmediately(t *testing.T) {
	e, _ := newEngine(t, nil)
	e.Start()

	if e.Phase() != PhaseFinished {
		t.Fatalf("phase = %v, want PhaseFinished with no decision", e.Phase())
	}
	p := e.Progress()
	if p.TotalInDeck != 0 || p.CompletedInRound != 0 {
		t.Errorf("progress = %+v", p)
	}
	if p.PercentMastery != 0 {
		t.Errorf("mastery = %f, want 0 for empty deck", p.PercentMastery)
	}
}

func TestEngine_FullyMastered_RaisesDecision(t *testing.T) {
	e, d := newEngine(t, twoCards())
	d.Stats.Record(1, true)
	d.Stats.Record(2, true)
	ctx := context.Background()

	e.Start()
	if e.Phase() != PhaseDeciding {
		t.Fatalf("phase = %v, want PhaseDeciding", e.Phase())
	}
	if e.Current() != nil {
		t.Error("queue built before decision resolved")
	}

	// Declining returns control with nothing mutated.
	if err := e.ResolveMasteryReached(ctx, false); err != nil {
		t.Fatalf("ResolveMasteryReached: %v", err)
	}
	if e.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want PhaseIdle after decline", e.Phase())
	}
	if len(d.Stats.KnownIDs) != 2 {
		t.Errorf("mastery mutated on decline: %v", d.Stats.KnownIDs)
	}

	// Accepting resets mastery and plays the full deck.
	e.Start()
	if err := e.ResolveMasteryReached(ctx, true); err != nil {
		t.Fatalf("ResolveMasteryReached: %v", err)
	}
	if e.Phase() != PhasePresenting {
		t.Fatalf("phase = %v, want PhasePresenting after accept", e.Phase())
	}
	if len(d.Stats.KnownIDs) != 0 || len(d.Stats.UnknownIDs) != 0 {
		t.Errorf("mastery not reset: %+v", d.Stats)
	}
	if got := e.Progress().KnownCount; got != 0 {
		t.Errorf("knownCount = %d, want fresh session", got)
	}
}

func TestEngine_KnownCountSeededFromPersistedState(t *testing.T) {
	cards := []deck.Card{
		{ID: 1, Term: "a", Definition: "A"},
		{ID: 2, Term: "b", Definition: "B"},
		{ID: 3, Term: "c", Definition: "C"},
	}
	e, d := newEngine(t, cards)
	d.Stats.Record(1, true)

	e.Start()
	p := e.Progress()
	if p.KnownCount != 1 {
		t.Errorf("knownCount = %d, want seeded from knownIds", p.KnownCount)
	}
	// Known card excluded from the queue; the active card counts as
	// completed, so 2 of 3 at round start.
	if p.CompletedInRound != 2 {
		t.Errorf("completed = %d, want 2", p.CompletedInRound)
	}
}

func TestEngine_SubmitAnswer_IgnoredWhenNoCard(t *testing.T) {
	e, d := newEngine(t, twoCards())

	// Before Start: no-op.
	if err := e.SubmitAnswer(context.Background(), true); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if len(d.Stats.KnownIDs) != 0 {
		t.Error("answer recorded with no active card")
	}
}

func TestEngine_RestartAll(t *testing.T) {
	e, d := newEngine(t, twoCards())
	ctx := context.Background()
	e.Start()
	e.SubmitAnswer(ctx, true)

	if err := e.RestartAll(ctx); err != nil {
		t.Fatalf("RestartAll: %v", err)
	}
	if len(d.Stats.KnownIDs) != 0 {
		t.Errorf("knownIds = %v, want reset", d.Stats.KnownIDs)
	}
	if e.Phase() != PhasePresenting {
		t.Fatalf("phase = %v, want PhasePresenting", e.Phase())
	}
	if got := e.Progress().CompletedInRound; got != 0 {
		t.Errorf("completed = %d, want 0", got)
	}
}

func TestEngine_RestartUnknown_KeepsMastery(t *testing.T) {
	e, d := newEngine(t, twoCards())
	ctx := context.Background()
	e.Start()
	e.SubmitAnswer(ctx, true)

	e.RestartUnknown()
	if len(d.Stats.KnownIDs) != 1 {
		t.Errorf("knownIds = %v, want the recorded card kept", d.Stats.KnownIDs)
	}
	if e.Phase() != PhasePresenting {
		t.Fatalf("phase = %v, want PhasePresenting", e.Phase())
	}
	if c := e.Current(); c == nil || d.Stats.Known(c.ID) {
		t.Error("expected the remaining unknown card to be active")
	}
}

func TestEngine_ToggleReveal_ClearedOnAdvance(t *testing.T) {
	e, _ := newEngine(t, twoCards())
	ctx := context.Background()
	e.Start()

	e.ToggleReveal()
	if !e.Revealed() {
		t.Fatal("card not revealed after toggle")
	}
	e.SubmitAnswer(ctx, true)
	if e.Revealed() {
		t.Error("reveal flag not cleared for next card")
	}
}

func TestEngine_ShuffleIsPermutation(t *testing.T) {
	var cards []deck.Card
	for i := 1; i <= 30; i++ {
		cards = append(cards, deck.Card{ID: i, Term: "t", Definition: "d"})
	}
	e, _ := newEngine(t, cards)
	ctx := context.Background()
	e.Start()

	seen := make(map[int]bool)
	for e.Phase() == PhasePresenting {
		id := e.Current().ID
		if seen[id] {
			t.Fatalf("card %d presented twice in one round", id)
		}
		seen[id] = true
		e.SubmitAnswer(ctx, true)
	}
	if len(seen) != 30 {
		t.Errorf("presented %d cards, want 30", len(seen))
	}
}
