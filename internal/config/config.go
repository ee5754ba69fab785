// Package config reads the optional TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Pointer fields
// distinguish "unset" from zero values so flags and env can layer on top.
type FileConfig struct {
	Remote RemoteConfig `toml:"remote"`
	LLM    LLMConfig    `toml:"llm"`
}

// RemoteConfig maps the [remote] section: the optional storage backend.
type RemoteConfig struct {
	URL            *string `toml:"url"`
	TimeoutSeconds *int    `toml:"timeout-seconds"`
}

// LLMConfig maps the [llm] section for deck generation.
type LLMConfig struct {
	Provider *string `toml:"provider"`
	Model    *string `toml:"model"`
}

// Load reads a TOML config from the given path. A missing file is not an
// error; the zero config means local-only operation.
func Load(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// RemoteURL resolves the storage backend URL: flag value, then FICHAS_REMOTE,
// then the config file. Empty means no remote.
func (c FileConfig) RemoteURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("FICHAS_REMOTE"); v != "" {
		return v
	}
	if c.Remote.URL != nil {
		return *c.Remote.URL
	}
	return ""
}

// RemoteTimeout resolves the remote call timeout, zero meaning the store
// default.
func (c FileConfig) RemoteTimeout() time.Duration {
	if c.Remote.TimeoutSeconds == nil {
		return 0
	}
	return time.Duration(*c.Remote.TimeoutSeconds) * time.Second
}

// DefaultPath returns the default TOML config path.
func DefaultPath() string {
	return filepath.Join(configHome(), "fichas", "config.toml")
}

func configHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}
