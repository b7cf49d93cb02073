package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Pattern.Escape != "#" {
		t.Errorf("expected default escape '#', got %q", cfg.Pattern.Escape)
	}
	if cfg.Output.Terminator != "lf" {
		t.Errorf("expected default terminator 'lf', got %q", cfg.Output.Terminator)
	}
	if !cfg.Output.Color {
		t.Error("expected color enabled by default")
	}
	if cfg.Diagnostics.Format != "" {
		t.Errorf("expected no diagnostics format by default, got %q", cfg.Diagnostics.Format)
	}
	if cfg.Output.Seed != nil {
		t.Errorf("expected no default seed (OS-random fallback), got %v", *cfg.Output.Seed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("REW_CONFIG", "/tmp/nonexistent-rew-config-test.toml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Terminator != "lf" {
		t.Errorf("expected defaults when file missing, got output.terminator=%q", cfg.Output.Terminator)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[pattern]
escape = "%"

[output]
terminator = "nul"
seed = 42
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("REW_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pattern.Escape != "%" {
		t.Errorf("expected escape %%, got %q", cfg.Pattern.Escape)
	}
	if cfg.Output.Terminator != "nul" {
		t.Errorf("expected terminator 'nul', got %q", cfg.Output.Terminator)
	}
	if cfg.Output.Seed == nil || *cfg.Output.Seed != 42 {
		t.Errorf("expected seed 42, got %v", cfg.Output.Seed)
	}
}
