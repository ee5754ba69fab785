package cmd

import (
	"fmt"

	"github.com/mdelacru/fichas/internal/mastery"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <deck-id>",
	Short: "Reset a deck's mastery state",
	Long:  "Reset clears the known/unknown sets of one deck so the next session starts from scratch. Find deck ids with fichas export.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var deckID int64
		if _, err := fmt.Sscanf(args[0], "%d", &deckID); err != nil {
			return fmt.Errorf("invalid deck id %q", args[0])
		}

		backend, err := openBackend(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		col, err := backend.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load decks: %w", err)
		}

		tracker := mastery.NewTracker(col, backend)
		// Reset reports the post-reset counts, which are always zero; grab
		// what is about to be cleared first.
		known, unknown, err := tracker.Counts(deckID)
		if err != nil {
			return err
		}
		if _, _, err := tracker.Reset(cmd.Context(), deckID); err != nil {
			return err
		}

		cmd.Printf("Cleared %d known and %d unknown cards\n", known, unknown)
		return nil
	},
}
