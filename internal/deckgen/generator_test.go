package deckgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/llm"
)

func validDeckJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Spanish Greetings",
		"cards": [
			{"term": "hola", "definition": "hello", "explanation": ""},
			{"term": "adios", "definition": "goodbye", "explanation": "Also spelled adiós."},
			{"term": "buenos dias", "definition": "good morning", "explanation": ""}
		]
	}`)
}

func TestGenerate_ValidDeck(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validDeckJSON()})
	gen := New(mock, DefaultConfig())

	d, err := gen.Generate(context.Background(), Input{Topic: "basic Spanish greetings"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "Spanish Greetings" {
		t.Errorf("unexpected title: %q", d.Title)
	}
	if d.Type != deck.TypeFlashcard {
		t.Errorf("expected flashcard deck, got %q", d.Type)
	}
	if len(d.Cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(d.Cards))
	}
	for i, c := range d.Cards {
		if c.ID != i+1 {
			t.Errorf("card %d: expected sequential id %d, got %d", i, i+1, c.ID)
		}
	}
	if d.Cards[1].Explanation != "Also spelled adiós." {
		t.Errorf("explanation not carried through: %q", d.Cards[1].Explanation)
	}
}

func TestGenerate_EmptyTopic(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validDeckJSON()})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "   "})
	if !errors.Is(err, ErrEmptyTopic) {
		t.Fatalf("expected ErrEmptyTopic, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider should not be called for an empty topic")
	}
}

func TestGenerate_EmptyCardList(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"title": "Empty", "cards": []}`),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "anything"})
	if !errors.Is(err, deck.ErrNoCards) {
		t.Fatalf("expected ErrNoCards, got %v", err)
	}
}

func TestGenerate_BlankDefinitionRejected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"title": "Broken",
			"cards": [{"term": "hola", "definition": "  ", "explanation": ""}]
		}`),
	})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "broken"})
	if err == nil {
		t.Fatal("expected validation error for blank definition")
	}
	if !strings.Contains(err.Error(), "failed validation") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestGenerate_TitleFallsBackToTopic(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"title": "",
			"cards": [{"term": "hola", "definition": "hello", "explanation": ""}]
		}`),
	})
	gen := New(mock, DefaultConfig())

	d, err := gen.Generate(context.Background(), Input{Topic: "Spanish basics"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "Spanish basics" {
		t.Errorf("expected title to fall back to topic, got %q", d.Title)
	}
}

func TestGenerate_CountCappedInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validDeckJSON()})
	cfg := DefaultConfig()
	cfg.MaxCards = 20
	gen := New(mock, cfg)

	_, err := gen.Generate(context.Background(), Input{Topic: "geography", Count: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prompt := mock.Calls[0].Prompt
	if !strings.Contains(prompt, "Number of cards: 20") {
		t.Errorf("expected capped count in prompt, got:\n%s", prompt)
	}
}

func TestGenerate_DefaultCountInPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validDeckJSON()})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "geography"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mock.Calls[0].Prompt, "Number of cards: 12") {
		t.Errorf("expected default count in prompt, got:\n%s", mock.Calls[0].Prompt)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("API error")})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "anything"})
	if err == nil {
		t.Fatal("expected error from provider")
	}
	if !strings.Contains(err.Error(), "LLM generation failed") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestGenerate_SchemaAttached(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validDeckJSON()})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "anything"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls[0].Schema != DeckSchema {
		t.Error("expected DeckSchema to be attached to the request")
	}
}
