package cmd

import (
	"github.com/mdelacru/fichas/internal/config"
	"github.com/mdelacru/fichas/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fichas",
	Short: "Flashcard study sessions in your terminal",
	Long:  "Fichas is a terminal flashcard and quiz app that replays missed cards round after round until every one sticks.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the deck collection JSON file (overrides FICHAS_DATA)")
	rootCmd.PersistentFlags().String("remote", "", "Remote sync endpoint URL (overrides FICHAS_REMOTE and the config file)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataPath returns the collection path using --data (highest priority),
// then FICHAS_DATA, then the default XDG path.
func resolveDataPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDataPath()
}

// openBackend builds the persistence backend: always the local JSON file,
// wrapped in a dual read-through/write-through pair when a remote endpoint is
// configured.
func openBackend(cmd *cobra.Command) (store.Backend, error) {
	dataPath, err := resolveDataPath(cmd)
	if err != nil {
		return nil, err
	}
	local := store.NewLocal(dataPath)

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return nil, err
	}
	flagRemote, _ := cmd.Flags().GetString("remote")
	remoteURL := cfg.RemoteURL(flagRemote)
	if remoteURL == "" {
		return local, nil
	}

	remote := store.NewRemote(remoteURL, cfg.RemoteTimeout())
	return store.NewDual(local, remote), nil
}
