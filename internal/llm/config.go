package llm

import (
	"fmt"
	"os"
)

// Config selects and configures a provider.
type Config struct {
	// Provider is "anthropic", "openai" or "mock".
	Provider string

	Anthropic AnthropicConfig
	OpenAI    OpenAIConfig
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional override for OpenAI-compatible APIs.
}

// DefaultConfig returns a Config with default models and no keys.
func DefaultConfig() Config {
	return Config{
		Provider:  "anthropic",
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		OpenAI:    OpenAIConfig{Model: "gpt-4o-mini"},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back to
// defaults for unset values. The standard ANTHROPIC_API_KEY/OPENAI_API_KEY
// variables are honored when the FICHAS-specific ones are not set.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("FICHAS_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	cfg.Anthropic.APIKey = firstEnv("FICHAS_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	if m := os.Getenv("FICHAS_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	cfg.OpenAI.APIKey = firstEnv("FICHAS_OPENAI_API_KEY", "OPENAI_API_KEY")
	if m := os.Getenv("FICHAS_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("FICHAS_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	// No provider selected explicitly: pick the first one with a key.
	if os.Getenv("FICHAS_LLM_PROVIDER") == "" {
		switch {
		case cfg.Anthropic.APIKey != "":
			cfg.Provider = "anthropic"
		case cfg.OpenAI.APIKey != "":
			cfg.Provider = "openai"
		}
	}

	return cfg
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
