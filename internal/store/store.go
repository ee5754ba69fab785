// Package store persists the deck collection. A required local JSON file
// backend is optionally composed with a remote HTTP backend through Dual,
// which writes local-first and syncs to the remote best-effort.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mdelacru/fichas/internal/deck"
)

// Backend loads and saves the full collection. Writes replace the stored
// collection wholesale; there is no partial update.
type Backend interface {
	Load(ctx context.Context) (*deck.Collection, error)
	Save(ctx context.Context, c *deck.Collection) error
}

// DefaultDataPath resolves the collection file path in priority order:
// 1. FICHAS_DATA environment variable
// 2. $XDG_DATA_HOME/fichas/collection.json
// 3. ~/.local/share/fichas/collection.json
func DefaultDataPath() (string, error) {
	if p := os.Getenv("FICHAS_DATA"); p != "" {
		return p, EnsureDir(p)
	}
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "collection.json")
	return p, EnsureDir(p)
}

// DefaultDBPath resolves the session history database path, honoring the
// FICHAS_DB environment variable before the XDG default.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("FICHAS_DB"); p != "" {
		return p, EnsureDir(p)
	}
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "fichas.db")
	return p, EnsureDir(p)
}

func dataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fichas"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
