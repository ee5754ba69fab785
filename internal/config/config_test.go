package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileIsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Remote.URL != nil {
		t.Errorf("Remote.URL = %v, want unset", *cfg.Remote.URL)
	}
}

func TestLoad_ParsesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[remote]\nurl = \"http://localhost:8080/api/decks\"\ntimeout-seconds = 3\n\n[llm]\nprovider = \"openai\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Remote.URL == nil || *cfg.Remote.URL != "http://localhost:8080/api/decks" {
		t.Errorf("Remote.URL = %v", cfg.Remote.URL)
	}
	if cfg.RemoteTimeout() != 3*time.Second {
		t.Errorf("RemoteTimeout = %v", cfg.RemoteTimeout())
	}
	if cfg.LLM.Provider == nil || *cfg.LLM.Provider != "openai" {
		t.Errorf("LLM.Provider = %v", cfg.LLM.Provider)
	}
}

func TestRemoteURL_Precedence(t *testing.T) {
	url := "http://cfg/api/decks"
	cfg := FileConfig{Remote: RemoteConfig{URL: &url}}

	if got := cfg.RemoteURL("http://flag/api/decks"); got != "http://flag/api/decks" {
		t.Errorf("flag precedence: got %q", got)
	}

	t.Setenv("FICHAS_REMOTE", "http://env/api/decks")
	if got := cfg.RemoteURL(""); got != "http://env/api/decks" {
		t.Errorf("env precedence: got %q", got)
	}

	t.Setenv("FICHAS_REMOTE", "")
	if got := cfg.RemoteURL(""); got != url {
		t.Errorf("config fallback: got %q", got)
	}
}
