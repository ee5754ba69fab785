package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a library export, replacing the current library",
	Long: "Import reads a JSON library export (the output of fichas export, or " +
		"a legacy bare deck array) and replaces the entire library with it. " +
		"This is destructive; pass --force to skip the confirmation.\n\n" +
		"With --cards the file is read as plain text instead, one card per " +
		"line split at the first comma, and added as a single new deck without " +
		"touching the rest of the library.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cards, _ := cmd.Flags().GetBool("cards"); cards {
			return importCards(cmd, args[0])
		}
		return importCollection(cmd, args[0])
	},
}

func importCollection(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	// Validate before touching the store so a bad file leaves it intact.
	col, err := deck.Decode(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if force, _ := cmd.Flags().GetBool("force"); !force {
		fmt.Printf("This replaces your whole library with %d decks from %s. Continue? [y/N] ", len(col.Decks), path)
		line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	backend, err := openBackend(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if err := backend.Save(cmd.Context(), col); err != nil {
		return fmt.Errorf("save decks: %w", err)
	}

	fmt.Printf("Imported %d decks\n", len(col.Decks))
	return nil
}

func importCards(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	cards, err := deck.ParseCards(string(data))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	deckType := deck.TypeFlashcard
	if quiz, _ := cmd.Flags().GetBool("quiz"); quiz {
		deckType = deck.TypeTest
	}

	backend, err := openBackend(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	col, err := backend.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load decks: %w", err)
	}

	d := deck.New(title, deckType, cards)
	col.AddDeck(d)
	if err := backend.Save(cmd.Context(), col); err != nil {
		return fmt.Errorf("save decks: %w", err)
	}

	fmt.Printf("Imported %q with %d cards\n", title, len(cards))
	return nil
}

func init() {
	importCmd.Flags().Bool("force", false, "Replace the library without asking")
	importCmd.Flags().Bool("cards", false, "Treat the file as term,definition lines and add one deck")
	importCmd.Flags().String("title", "", "Deck title for --cards (defaults to the file name)")
	importCmd.Flags().Bool("quiz", false, "With --cards, create a multiple-choice quiz deck")
}
