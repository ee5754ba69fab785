package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "fichas.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_AppendRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := Record{
		SessionID: "s1", DeckID: 10, DeckTitle: "Bio",
		Total: 5, Rounds: 2, Duration: 90 * time.Second,
		FinishedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	newer := Record{
		SessionID: "s2", DeckID: 10, DeckTitle: "Bio",
		Total: 5, Rounds: 1, Duration: 40 * time.Second,
		FinishedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}
	if err := s.Append(ctx, older); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, newer); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].SessionID != "s2" {
		t.Errorf("first record = %s, want newest first", got[0].SessionID)
	}
	if got[1].Rounds != 2 || got[1].Duration != 90*time.Second {
		t.Errorf("record = %+v", got[1])
	}
}

func TestStore_Append_DuplicateSessionIgnored(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := Record{SessionID: "s1", DeckID: 1, DeckTitle: "d", Total: 1, Rounds: 1, FinishedAt: time.Now()}

	s.Append(ctx, r)
	s.Append(ctx, r)

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d records, want duplicate ignored", len(got))
	}
}

func TestStore_CountForDeck(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	s.Append(ctx, Record{SessionID: "a", DeckID: 1, DeckTitle: "d", FinishedAt: time.Now()})
	s.Append(ctx, Record{SessionID: "b", DeckID: 1, DeckTitle: "d", FinishedAt: time.Now()})
	s.Append(ctx, Record{SessionID: "c", DeckID: 2, DeckTitle: "e", FinishedAt: time.Now()})

	n, err := s.CountForDeck(ctx, 1)
	if err != nil {
		t.Fatalf("CountForDeck: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}
