package deckgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a study assistant creating flashcard decks for self-study.

Rules:
- Generate the requested number of cards for the given topic.
- Each card has a term (front) and a definition (back). Keep both concise: the term is a word, name, or short question; the definition is one or two sentences.
- Every card must cover a distinct fact. Never produce two cards whose terms differ only in wording.
- Use plain text. No markdown, no numbered prefixes, no "Q:"/"A:" labels.
- Definitions must be factually correct and self-contained; a learner should understand them without seeing the other cards.
- Use the explanation field only when a short clarifying note genuinely helps; otherwise leave it empty.
- Write all cards in the same language as the topic description.`

// buildUserMessage constructs the user message for a generation request.
func buildUserMessage(input Input, cfg Config) string {
	count := input.Count
	if count <= 0 {
		count = cfg.DefaultCount
	}
	if cfg.MaxCards > 0 && count > cfg.MaxCards {
		count = cfg.MaxCards
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", strings.TrimSpace(input.Topic))
	fmt.Fprintf(&b, "Number of cards: %d\n", count)
	if input.Audience != "" {
		fmt.Fprintf(&b, "Audience: %s\n", input.Audience)
	}
	return b.String()
}
