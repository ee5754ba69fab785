// Package session drives one study run over a deck: a shuffled queue of
// not-yet-known cards, replayed round after round until every card has been
// answered "known" once.
package session

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/mastery"
)

// Phase is the engine's position in its lifecycle.
type Phase int

const (
	// PhaseIdle means Start has not been called, or the caller declined the
	// mastery-reached decision and got control back.
	PhaseIdle Phase = iota
	// PhaseDeciding means the deck is fully mastered and the engine is
	// suspended until the caller resolves the restart decision.
	PhaseDeciding
	// PhasePresenting means a card is active and awaiting an answer.
	PhasePresenting
	// PhaseFinished means every queued card has been cleared.
	PhaseFinished
)

// Engine holds all transient state of one deck-play. It is constructed per
// session with no ambient globals, so concurrent sessions in tests are safe
// and teardown is dropping the reference; an in-flight mastery write may
// complete afterwards with no inconsistency since it targets durable state
// keyed by card id.
type Engine struct {
	// ID identifies this session in the history log.
	ID string

	deck    *deck.Deck
	tracker *mastery.Tracker
	rng     *rand.Rand

	phase      Phase
	queue      []*deck.Card
	nextRound  []*deck.Card
	current    *deck.Card
	revealed   bool
	knownCount int
	rounds     int
	committing bool
	startedAt  time.Time
}

// New creates an engine for one play of the given deck. The deck is borrowed:
// its mastery state is written back through the tracker, never directly.
// rng may be nil, in which case a time-seeded source is used; tests inject a
// seeded one for deterministic shuffles.
func New(d *deck.Deck, tracker *mastery.Tracker, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		ID:      uuid.New().String(),
		deck:    d,
		tracker: tracker,
		rng:     rng,
		phase:   PhaseIdle,
	}
}

// Start computes the unknown pool and builds the first round.
//
// An empty deck finishes immediately with total 0 and raises no decision.
// A fully mastered, non-empty deck suspends in PhaseDeciding until the caller
// answers through ResolveMasteryReached; no queue is built and nothing is
// mutated until then.
func (e *Engine) Start() {
	e.startedAt = time.Now()
	e.rounds = 0
	e.current = nil
	e.nextRound = nil

	if len(e.deck.Cards) == 0 {
		e.phase = PhaseFinished
		return
	}

	unknown := e.unknownPool()
	if len(unknown) == 0 {
		e.phase = PhaseDeciding
		return
	}
	e.begin(unknown)
}

// ResolveMasteryReached answers the pending mastery-reached decision.
// reset=true wipes the deck's mastery state (persisted) and starts a fresh
// session over the full card list; reset=false aborts and returns control to
// the caller with no state mutated.
func (e *Engine) ResolveMasteryReached(ctx context.Context, reset bool) error {
	if e.phase != PhaseDeciding {
		return nil
	}
	if !reset {
		e.phase = PhaseIdle
		return nil
	}
	if _, _, err := e.tracker.Reset(ctx, e.deck.ID); err != nil {
		return err
	}
	e.begin(e.unknownPool())
	return nil
}

// RestartAll resets mastery and starts over with the full card list.
func (e *Engine) RestartAll(ctx context.Context) error {
	if _, _, err := e.tracker.Reset(ctx, e.deck.ID); err != nil {
		return err
	}
	e.Start()
	return nil
}

// RestartUnknown starts a new session over the remaining unknown pool. Start
// already recomputes that pool, so this is not a distinct code path.
func (e *Engine) RestartUnknown() {
	e.Start()
}

// SubmitAnswer records the outcome for the current card and advances.
// Guarded: calls are ignored while no card is active or an answer is already
// being committed, so rapid repeated input cannot double-submit. The outcome
// is persisted before the queue advances; a persistence failure leaves the
// engine on the same card.
func (e *Engine) SubmitAnswer(ctx context.Context, known bool) error {
	if e.phase != PhasePresenting || e.current == nil || e.committing {
		return nil
	}
	e.committing = true
	defer func() { e.committing = false }()

	if err := e.tracker.RecordOutcome(ctx, e.deck.ID, e.current.ID, known); err != nil {
		return err
	}

	if known {
		e.knownCount++
	} else {
		// Deferred to the end of the round, not re-inserted immediately:
		// the same card is never shown twice in a row.
		e.nextRound = append(e.nextRound, e.current)
	}
	e.loadNext()
	return nil
}

// Current returns the active card, or nil outside PhasePresenting.
func (e *Engine) Current() *deck.Card {
	return e.current
}

// Phase returns the engine's current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Deck returns the deck this session plays.
func (e *Engine) Deck() *deck.Deck {
	return e.deck
}

// Rounds returns the number of rounds started so far.
func (e *Engine) Rounds() int {
	return e.rounds
}

// Revealed reports whether the current card's back is showing.
func (e *Engine) Revealed() bool {
	return e.revealed
}

// ToggleReveal flips the current card.
func (e *Engine) ToggleReveal() {
	if e.current != nil {
		e.revealed = !e.revealed
	}
}

// begin seeds a fresh session over the given pool. The session counter starts
// from the persisted known count, not zero, so cross-session mastery display
// is preserved.
func (e *Engine) begin(pool []*deck.Card) {
	e.queue = e.shuffled(pool)
	e.nextRound = nil
	e.knownCount = len(e.deck.Stats.KnownIDs)
	e.rounds = 1
	e.phase = PhasePresenting
	e.loadNext()
}

// loadNext pops the head of the queue into current, or runs the round
// transition when the queue is drained.
func (e *Engine) loadNext() {
	if len(e.queue) == 0 {
		e.roundTransition()
		return
	}
	e.current = e.queue[0]
	e.queue = e.queue[1:]
	e.revealed = false
}

// roundTransition replays the cards missed this round, reshuffled, or
// finishes the session when none were.
func (e *Engine) roundTransition() {
	if len(e.nextRound) > 0 {
		e.queue = e.shuffled(e.nextRound)
		e.nextRound = nil
		e.rounds++
		e.loadNext()
		return
	}
	e.current = nil
	e.revealed = false
	e.phase = PhaseFinished
}

// unknownPool returns the deck's cards not yet in the known set, in authoring
// order. Cards marked known are not re-tested even if never seen this run.
func (e *Engine) unknownPool() []*deck.Card {
	var pool []*deck.Card
	for i := range e.deck.Cards {
		c := &e.deck.Cards[i]
		if !e.deck.Stats.Known(c.ID) {
			pool = append(pool, c)
		}
	}
	return pool
}

// shuffled returns a uniformly Fisher–Yates-shuffled copy of cards.
func (e *Engine) shuffled(cards []*deck.Card) []*deck.Card {
	cp := make([]*deck.Card, len(cards))
	copy(cp, cards)
	for i := len(cp) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp
}
