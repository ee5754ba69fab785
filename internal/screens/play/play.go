package play

import (
	"context"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/history"
	"github.com/mdelacru/fichas/internal/mastery"
	"github.com/mdelacru/fichas/internal/quiz"
	"github.com/mdelacru/fichas/internal/router"
	"github.com/mdelacru/fichas/internal/screen"
	"github.com/mdelacru/fichas/internal/screens/summary"
	"github.com/mdelacru/fichas/internal/session"
	"github.com/mdelacru/fichas/internal/ui/components"
	"github.com/mdelacru/fichas/internal/ui/layout"
)

// PlayScreen runs one study session over a deck.
type PlayScreen struct {
	engine  *session.Engine
	tracker *mastery.Tracker
	history *history.Store
	rng     *rand.Rand

	// choice is rebuilt for every card of a quiz deck.
	choice      components.MultiChoice
	settleGen   int
	quitConfirm bool
	committing  bool
	finishing   bool
	errMsg      string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a play screen for the given deck.
func New(d *deck.Deck, tracker *mastery.Tracker, hist *history.Store) *PlayScreen {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &PlayScreen{
		engine:  session.New(d, tracker, rng),
		tracker: tracker,
		history: hist,
		rng:     rng,
	}
}

func (p *PlayScreen) Init() tea.Cmd {
	p.engine.Start()
	switch p.engine.Phase() {
	case session.PhaseFinished:
		// Empty deck: nothing to study.
		return p.finish()
	case session.PhasePresenting:
		p.prepareCard()
	}
	return nil
}

func (p *PlayScreen) Title() string {
	return p.engine.Deck().Title
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	if p.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep studying"},
		}
	}
	switch p.engine.Phase() {
	case session.PhaseDeciding:
		return []layout.KeyHint{
			{Key: "Y", Description: "Start over"},
			{Key: "N", Description: "Back to library"},
		}
	case session.PhasePresenting:
		if p.quizMode() {
			return []layout.KeyHint{
				{Key: "1-4", Description: "Answer"},
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "Leave"},
			}
		}
		return []layout.KeyHint{
			{Key: "Space", Description: "Flip"},
			{Key: "→", Description: "I knew it"},
			{Key: "←", Description: "Still learning"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	return nil
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case settleTickMsg:
		if msg.gen != p.settleGen {
			return p, nil
		}
		return p, p.commit(p.choice.IsCorrect())

	case recordedMsg:
		p.committing = false
		if msg.Err != nil {
			p.errMsg = "could not save progress: " + msg.Err.Error()
			return p, nil
		}
		p.errMsg = ""
		if p.engine.Phase() == session.PhaseFinished {
			return p, p.finish()
		}
		p.prepareCard()
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.finishing {
		return p, nil
	}

	if p.quitConfirm {
		switch key {
		case "y", "Y":
			// Progress is persisted per answer, so leaving loses nothing.
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			p.quitConfirm = false
		}
		return p, nil
	}

	switch p.engine.Phase() {
	case session.PhaseDeciding:
		switch key {
		case "y", "Y":
			if err := p.engine.ResolveMasteryReached(context.Background(), true); err != nil {
				p.errMsg = err.Error()
				return p, nil
			}
			p.prepareCard()
		case "n", "N", "esc":
			_ = p.engine.ResolveMasteryReached(context.Background(), false)
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return p, nil

	case session.PhasePresenting:
		if key == "esc" {
			p.quitConfirm = true
			return p, nil
		}
		if p.quizMode() {
			return p.handleQuizKey(msg)
		}
		return p.handleFlashcardKey(key)
	}

	return p, nil
}

func (p *PlayScreen) handleFlashcardKey(key string) (screen.Screen, tea.Cmd) {
	// While an answer is in flight the engine has not advanced yet; a second
	// answer key would commit against whatever card comes next.
	if p.committing {
		return p, nil
	}
	switch key {
	case " ", "space", "enter":
		p.engine.ToggleReveal()
	case "right", "l":
		return p, p.commit(true)
	case "left", "h":
		return p, p.commit(false)
	}
	return p, nil
}

func (p *PlayScreen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if p.choice.Submitted {
		return p, nil
	}

	switch msg.String() {
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		if idx < len(p.choice.Options) {
			p.choice = p.choice.Choose(idx)
			return p, p.settle()
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.choice, cmd = p.choice.Update(msg)
	if p.choice.Submitted {
		return p, p.settle()
	}
	return p, cmd
}

// settle schedules the delayed advance so the answer colors stay readable.
func (p *PlayScreen) settle() tea.Cmd {
	p.settleGen++
	gen := p.settleGen
	return tea.Tick(settleDelay, func(time.Time) tea.Msg {
		return settleTickMsg{gen: gen}
	})
}

// commit records the outcome and advances the engine. Answer keys stay
// gated until the resulting recordedMsg clears the in-flight flag.
func (p *PlayScreen) commit(known bool) tea.Cmd {
	p.committing = true
	engine := p.engine
	return func() tea.Msg {
		err := engine.SubmitAnswer(context.Background(), known)
		return recordedMsg{Err: err}
	}
}

// prepareCard sets up presentation state for the newly active card.
func (p *PlayScreen) prepareCard() {
	card := p.engine.Current()
	if card == nil {
		return
	}
	if p.quizMode() {
		opts := quiz.Build(p.engine.Deck(), card, p.rng)
		p.choice = components.NewMultiChoice(card.Term, opts)
	}
}

// finish logs the session and swaps in the summary screen.
func (p *PlayScreen) finish() tea.Cmd {
	p.finishing = true
	sum := p.engine.Summarize()
	prog := p.engine.Progress()
	d := p.engine.Deck()
	tracker := p.tracker
	hist := p.history
	var replay func(resetAll bool) tea.Msg
	if sum.Total > 0 {
		replay = func(resetAll bool) tea.Msg {
			if resetAll {
				// A failed reset leaves mastery intact; the fresh session
				// then opens on the mastery-reached prompt instead.
				_, _, _ = tracker.Reset(context.Background(), d.ID)
			}
			return router.ReplaceScreenMsg{Screen: New(d, tracker, hist)}
		}
	}
	return func() tea.Msg {
		if hist != nil && sum.Total > 0 {
			_ = hist.Append(context.Background(), history.Record{
				SessionID:  sum.SessionID,
				DeckID:     sum.DeckID,
				DeckTitle:  sum.DeckTitle,
				Total:      sum.Total,
				Rounds:     sum.Rounds,
				Duration:   sum.Duration,
				FinishedAt: time.Now(),
			})
		}
		return router.ReplaceScreenMsg{Screen: summary.New(sum, prog, replay)}
	}
}

func (p *PlayScreen) quizMode() bool {
	return p.engine.Deck().Type == deck.TypeTest
}
