package deckgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mdelacru/fichas/internal/deck"
	"github.com/mdelacru/fichas/internal/llm"
)

// ErrEmptyTopic is returned when the topic is blank.
var ErrEmptyTopic = errors.New("topic must not be empty")

// Input describes a single deck generation request.
type Input struct {
	// Topic is the subject matter to cover, in the learner's own words.
	Topic string
	// Count is the desired number of cards. Zero means Config.DefaultCount.
	Count int
	// Audience optionally narrows the tone, e.g. "high school biology".
	Audience string
}

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// DefaultCount is used when the request does not specify a card count.
	DefaultCount int

	// MaxCards caps the card count regardless of the request.
	MaxCards int
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:    2048,
		Temperature:  0.7,
		DefaultCount: 12,
		MaxCards:     50,
	}
}

// Generator produces study decks from a topic using an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// deckOutput is the raw LLM response before validation.
type deckOutput struct {
	Title string `json:"title"`
	Cards []struct {
		Term        string `json:"term"`
		Definition  string `json:"definition"`
		Explanation string `json:"explanation"`
	} `json:"cards"`
}

// Generate produces a flashcard deck for the given input. Generated cards
// pass through the same validation as hand-authored ones.
func (g *Generator) Generate(ctx context.Context, input Input) (*deck.Deck, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return nil, ErrEmptyTopic
	}

	req := llm.Request{
		System:      systemPrompt,
		Prompt:      buildUserMessage(input, g.config),
		Schema:      DeckSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw deckOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	cards := make([]deck.Card, 0, len(raw.Cards))
	for _, c := range raw.Cards {
		cards = append(cards, deck.Card{
			Term:        strings.TrimSpace(c.Term),
			Definition:  strings.TrimSpace(c.Definition),
			Explanation: strings.TrimSpace(c.Explanation),
		})
	}
	if len(cards) == 0 {
		return nil, deck.ErrNoCards
	}
	if err := deck.NormalizeAll(cards); err != nil {
		return nil, fmt.Errorf("generated deck failed validation: %w", err)
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = strings.TrimSpace(input.Topic)
	}
	return deck.New(title, deck.TypeFlashcard, cards), nil
}
