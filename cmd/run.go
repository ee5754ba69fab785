package cmd

import (
	"fmt"
	"os"

	"github.com/mdelacru/fichas/internal/app"
	"github.com/mdelacru/fichas/internal/deckgen"
	"github.com/mdelacru/fichas/internal/history"
	"github.com/mdelacru/fichas/internal/llm"
	"github.com/mdelacru/fichas/internal/mastery"
	"github.com/mdelacru/fichas/internal/store"
	"github.com/spf13/cobra"
)

// runApp loads the collection, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	backend, err := openBackend(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	col, err := backend.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load decks: %w", err)
	}

	opts := app.Options{
		Backend:    backend,
		Collection: col,
		Tracker:    mastery.NewTracker(col, backend),
	}
	if dual, ok := backend.(*store.Dual); ok {
		opts.Synced = dual.Synced
	}

	// Session history is optional. A failure to open the database degrades
	// the app, it does not stop it.
	dbPath, err := store.DefaultDBPath()
	if err == nil {
		hist, herr := history.Open(dbPath)
		if herr == nil {
			defer hist.Close()
			opts.History = hist
		} else {
			fmt.Fprintln(os.Stderr, "session history unavailable:", herr)
		}
	}

	// The LLM provider is optional too (generation is hidden without it).
	llmCfg := llm.ConfigFromEnv()
	if err := llmCfg.Validate(); err == nil {
		provider, perr := llm.NewProvider(llmCfg)
		if perr == nil {
			opts.Generator = deckgen.New(provider, deckgen.DefaultConfig())
		}
	}

	return app.Run(opts)
}
