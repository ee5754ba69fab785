package deckgen

import "github.com/mdelacru/fichas/internal/llm"

// DeckSchema defines the JSON schema for LLM deck generation responses.
var DeckSchema = &llm.Schema{
	Name:        "study-deck",
	Description: "A list of flashcards covering a study topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A short title for the deck, suitable for a list view",
			},
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term": map[string]any{
							"type":        "string",
							"description": "The front of the card: a word, concept, or question",
						},
						"definition": map[string]any{
							"type":        "string",
							"description": "The back of the card: the answer or meaning, one or two sentences",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Optional extra context shown after the learner answers. Empty string when nothing useful to add.",
						},
					},
					"required":             []any{"term", "definition", "explanation"},
					"additionalProperties": false,
				},
				"description": "The requested number of cards, each covering a distinct fact of the topic",
			},
		},
		"required":             []any{"title", "cards"},
		"additionalProperties": false,
	},
}
