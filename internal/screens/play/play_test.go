package play

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/mastery"
	"github.com/mdelacru/fichas/internal/router"
	"github.com/mdelacru/fichas/internal/screens/summary"
	"github.com/mdelacru/fichas/internal/session"
)

type nopBackend struct{}

func (nopBackend) Load(context.Context) (*deck.Collection, error) { return nil, nil }
func (nopBackend) Save(context.Context, *deck.Collection) error   { return nil }

func newPlayFixture(t *testing.T, cards []deck.Card) *PlayScreen {
	t.Helper()
	col := deck.NewCollection()
	d := deck.New("Bio", deck.TypeFlashcard, cards)
	col.AddDeck(d)
	tracker := mastery.NewTracker(col, nopBackend{})
	return New(d, tracker, nil)
}

// drive runs one key through the screen and resolves the resulting command,
// feeding any engine messages back in, the way the program loop would.
func drive(t *testing.T, p *PlayScreen, msg tea.Msg) tea.Msg {
	t.Helper()
	_, cmd := p.Update(msg)
	if cmd == nil {
		return nil
	}
	out := cmd()
	if _, ok := out.(recordedMsg); ok {
		_, next := p.Update(out)
		if next != nil {
			return next()
		}
	}
	return out
}

func TestPlayScreen_FlashcardAnswersAdvance(t *testing.T) {
	p := newPlayFixture(t, []deck.Card{
		{ID: 1, Term: "cell", Definition: "basic unit"},
		{ID: 2, Term: "gene", Definition: "unit of heredity"},
	})
	p.Init()

	if p.engine.Phase() != session.PhasePresenting {
		t.Fatalf("phase = %v, want PhasePresenting", p.engine.Phase())
	}
	first := p.engine.Current()

	drive(t, p, tea.KeyPressMsg{Code: tea.KeyRight})
	if p.engine.Current() == first {
		t.Error("known answer should advance to the next card")
	}
}

func TestPlayScreen_FinishReplacesWithSummary(t *testing.T) {
	p := newPlayFixture(t, []deck.Card{
		{ID: 1, Term: "cell", Definition: "basic unit"},
	})
	p.Init()

	out := drive(t, p, tea.KeyPressMsg{Code: tea.KeyRight})
	rep, ok := out.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg after the last card, got %T", out)
	}
	if _, ok := rep.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected a summary screen, got %T", rep.Screen)
	}
}

func TestPlayScreen_EmptyDeckFinishesImmediately(t *testing.T) {
	p := newPlayFixture(t, nil)
	cmd := p.Init()
	if cmd == nil {
		t.Fatal("expected a finish command for an empty deck")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("empty deck should go straight to the summary")
	}
}

func TestPlayScreen_RapidAnswersCommitOnce(t *testing.T) {
	p := newPlayFixture(t, []deck.Card{
		{ID: 1, Term: "cell", Definition: "basic unit"},
		{ID: 2, Term: "gene", Definition: "unit of heredity"},
	})
	p.Init()
	first := p.engine.Current()

	// Two rapid answer presses, with neither commit resolved yet: only the
	// first may produce a command, or the second would record against the
	// next card before it is ever shown.
	_, cmd1 := p.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if cmd1 == nil {
		t.Fatal("expected a commit command for the first answer")
	}
	_, cmd2 := p.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if cmd2 != nil {
		t.Fatal("second answer accepted while the first was still committing")
	}

	p.Update(cmd1())
	d := p.engine.Deck()
	if len(d.Stats.KnownIDs) != 1 || !d.Stats.Known(first.ID) {
		t.Errorf("knownIds = %v, want only the shown card %d", d.Stats.KnownIDs, first.ID)
	}

	// Once the commit has landed, answering works again.
	if _, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyRight}); cmd == nil {
		t.Error("expected answers to be accepted again after the commit landed")
	}
}

func TestPlayScreen_EscAsksBeforeLeaving(t *testing.T) {
	p := newPlayFixture(t, []deck.Card{
		{ID: 1, Term: "cell", Definition: "basic unit"},
	})
	p.Init()

	if out := drive(t, p, tea.KeyPressMsg{Code: tea.KeyEscape}); out != nil {
		t.Fatalf("esc should only raise the confirm, got %T", out)
	}
	if !p.quitConfirm {
		t.Fatal("expected the quit confirm to be showing")
	}

	out := drive(t, p, tea.KeyPressMsg{Code: 'y'})
	if _, ok := out.(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg on confirm, got %T", out)
	}
}

func TestPlayScreen_MasteredDeckRaisesDecision(t *testing.T) {
	p := newPlayFixture(t, []deck.Card{
		{ID: 1, Term: "cell", Definition: "basic unit"},
	})
	p.engine.Deck().Stats.Record(1, true)
	p.Init()

	if p.engine.Phase() != session.PhaseDeciding {
		t.Fatalf("phase = %v, want PhaseDeciding", p.engine.Phase())
	}

	drive(t, p, tea.KeyPressMsg{Code: 'y'})
	if p.engine.Phase() != session.PhasePresenting {
		t.Errorf("accepting the restart should present a card, phase = %v", p.engine.Phase())
	}
}
