package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mdelacru/fichas/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sync backend other fichas instances can point at",
	Long: "Serve exposes the deck collection over HTTP so several machines can " +
		"share one library. Point clients at it with --remote or FICHAS_REMOTE.",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		dataPath, err := resolveDataPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve data path: %w", err)
		}

		logger := log.New(os.Stderr, "fichas-serve ", log.LstdFlags)
		srv := &http.Server{
			Addr:              addr,
			Handler:           server.New(dataPath, logger),
			ReadHeaderTimeout: 5 * time.Second,
		}

		logger.Printf("serving %s on %s%s", dataPath, addr, server.CollectionPath)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
