package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the whole library as JSON",
	Long: "Export writes the full collection (decks, subjects, topics and " +
		"mastery state) to a file, or to stdout when no file is given. The " +
		"output can be imported again by placing it at the data path or " +
		"POSTing it to a fichas serve instance.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := openBackend(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		col, err := backend.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load decks: %w", err)
		}

		data, err := col.Encode()
		if err != nil {
			return fmt.Errorf("encode collection: %w", err)
		}

		if len(args) == 0 {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		fmt.Printf("Exported %d decks to %s\n", len(col.Decks), args[0])
		return nil
	},
}
