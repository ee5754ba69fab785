package cmd

import (
	"fmt"
	"strings"

	"github.com/mdelacru/fichas/internal/deckgen"
	"github.com/mdelacru/fichas/internal/llm"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a deck with an LLM",
	Long: "Generate asks the configured LLM provider for a set of flashcards " +
		"covering the topic and saves them as a new deck. Set ANTHROPIC_API_KEY " +
		"or OPENAI_API_KEY (or the FICHAS_* variants) to enable it.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")

		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		provider, err := llm.NewProvider(cfg)
		if err != nil {
			return fmt.Errorf("create provider: %w", err)
		}

		count, _ := cmd.Flags().GetInt("count")
		gen := deckgen.New(provider, deckgen.DefaultConfig())

		fmt.Printf("Generating cards for %q with %s...\n", topic, provider.ModelID())
		d, err := gen.Generate(cmd.Context(), deckgen.Input{Topic: topic, Count: count})
		if err != nil {
			return fmt.Errorf("generate deck: %w", err)
		}

		backend, err := openBackend(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		col, err := backend.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load decks: %w", err)
		}
		col.AddDeck(d)
		if err := backend.Save(cmd.Context(), col); err != nil {
			return fmt.Errorf("save decks: %w", err)
		}

		fmt.Printf("Created %q with %d cards\n", d.Title, len(d.Cards))
		return nil
	},
}

func init() {
	generateCmd.Flags().Int("count", 0, "Number of cards to generate (default 12)")
}
