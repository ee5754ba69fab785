package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/store"
)

func TestResetCommand_ReportsClearedCounts(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FICHAS_REMOTE", "")

	dataPath := filepath.Join(t.TempDir(), "collection.json")
	col := deck.NewCollection()
	d := deck.New("Bio", deck.TypeFlashcard, []deck.Card{
		{ID: 1, Term: "cell", Definition: "basic unit"},
		{ID: 2, Term: "gene", Definition: "unit of heredity"},
		{ID: 3, Term: "atp", Definition: "energy carrier"},
	})
	d.Stats.Record(1, true)
	d.Stats.Record(2, true)
	d.Stats.Record(3, false)
	col.AddDeck(d)
	if err := store.NewLocal(dataPath).Save(context.Background(), col); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"reset", fmt.Sprint(d.ID), "--data", dataPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if !strings.Contains(out.String(), "Cleared 2 known and 1 unknown cards") {
		t.Errorf("output = %q, want the counts that were cleared", out.String())
	}

	reloaded, err := store.NewLocal(dataPath).Load(context.Background())
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	got, err := reloaded.Deck(d.ID)
	if err != nil {
		t.Fatalf("deck after reset: %v", err)
	}
	if len(got.Stats.KnownIDs) != 0 || len(got.Stats.UnknownIDs) != 0 {
		t.Errorf("mastery not cleared: known %v unknown %v", got.Stats.KnownIDs, got.Stats.UnknownIDs)
	}
}
