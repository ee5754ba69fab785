package cmd

import (
	"fmt"

	"github.com/mdelacru/fichas/internal/history"
	"github.com/mdelacru/fichas/internal/session"
	"github.com/mdelacru/fichas/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-deck mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := openBackend(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		col, err := backend.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load decks: %w", err)
		}

		if len(col.Decks) == 0 {
			fmt.Println("No decks yet.")
			return nil
		}

		var hist *history.Store
		if dbPath, derr := store.DefaultDBPath(); derr == nil {
			if h, herr := history.Open(dbPath); herr == nil {
				hist = h
				defer hist.Close()
			}
		}

		for _, d := range col.Decks {
			pct := session.DeckMastery(len(d.Stats.KnownIDs), len(d.Cards))
			line := fmt.Sprintf("%-32s %3d cards  %3.0f%% mastered", d.Title, len(d.Cards), pct)
			if hist != nil {
				if n, err := hist.CountForDeck(cmd.Context(), d.ID); err == nil && n > 0 {
					line += fmt.Sprintf("  (%d sessions)", n)
				}
			}
			fmt.Println(line)
		}
		return nil
	},
}
