package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mdelacru/fichas/internal/deck"
)

// Local is the file-backed collection store. It is always written first,
// synchronously, so the app never blocks on (or loses data to) the network.
type Local struct {
	path string
}

// NewLocal creates a local store writing to the given file path.
func NewLocal(path string) *Local {
	return &Local{path: path}
}

// Path returns the collection file path.
func (l *Local) Path() string {
	return l.path
}

// Load reads and decodes the collection. A missing file is an empty
// collection, not an error.
func (l *Local) Load(_ context.Context) (*deck.Collection, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return deck.NewCollection(), nil
		}
		return nil, fmt.Errorf("read collection: %w", err)
	}
	c, err := deck.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", l.path, err)
	}
	return c, nil
}

// Save encodes and writes the collection. The write goes through a temp file
// and rename so a crash mid-write cannot corrupt the stored collection.
func (l *Local) Save(_ context.Context, c *deck.Collection) error {
	data, err := c.Encode()
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := EnsureDir(l.path); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(l.path), ".collection-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace collection: %w", err)
	}
	return nil
}
