package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Pattern     PatternConfig     `toml:"pattern"`
	Output      OutputConfig      `toml:"output"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type PatternConfig struct {
	Escape string `toml:"escape"` // single-character override of the default '#' escape
}

type OutputConfig struct {
	Terminator string `toml:"terminator"` // "lf", "nul", or a literal string
	Color      bool   `toml:"color"`
	// Seed is nil unless the config file sets one explicitly. A nil Seed
	// means the CLI falls back to an OS-random seed at startup rather than
	// any fixed value; an explicit seed (including 0) is deterministic.
	Seed *int64 `toml:"seed"`
}

type DiagnosticsConfig struct {
	Format string `toml:"format"` // "", "json", or "yaml"
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Pattern: PatternConfig{Escape: "#"},
		Output: OutputConfig{
			Terminator: "lf",
			Color:      true,
			Seed:       nil,
		},
		Diagnostics: DiagnosticsConfig{Format: ""},
	}
}

// Load reads config from file, merging with defaults. Returns defaults if file missing.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := configPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func configPath() string {
	if p := os.Getenv("REW_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "rew", "config.toml")
}
