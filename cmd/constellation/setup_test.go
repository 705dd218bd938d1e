package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/constellation/internal/config"
	"github.com/vovakirdan/constellation/internal/registry"
)

const customPack = `id: tiny
words:
  easy: [cat]
  medium: [planet]
  hard: [quantum]
  bonus: [dragon]
`

func TestResolvePack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.yaml")
	if err := os.WriteFile(path, []byte(customPack), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	fromFile := config.DefaultTyperConfig()
	fromFile.Words.File = path

	tests := []struct {
		name     string
		cfg      config.TyperConfig
		words    string
		pack     string
		expected string
	}{
		{"config default", config.DefaultTyperConfig(), "", "", registry.DefaultPack},
		{"pack flag", config.DefaultTyperConfig(), "", "terminal", "terminal"},
		{"words flag wins", config.DefaultTyperConfig(), path, "terminal", "tiny"},
		{"config file", fromFile, "", "", "tiny"},
		{"pack flag beats config file", fromFile, "", "terminal", "terminal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := resolvePack(tt.cfg, tt.words, tt.pack)
			if err != nil {
				t.Fatalf("resolvePack() failed: %v", err)
			}
			if p.ID != tt.expected {
				t.Errorf("resolvePack() = %q, expected %q", p.ID, tt.expected)
			}
		})
	}
}

func TestResolvePackUnknown(t *testing.T) {
	if _, err := resolvePack(config.DefaultTyperConfig(), "", "nope"); err == nil {
		t.Error("resolvePack() should fail for an unknown pack")
	}
}

func TestLoadConfigDifficulty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	flagConfig = ""
	defer func() { flagDifficulty = "" }()

	flagDifficulty = "fixed"
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Progression.Enabled {
		t.Error("fixed difficulty should disable progression")
	}

	flagDifficulty = "impossible"
	if _, err := loadConfig(); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("loadConfig() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	defer func() { flagLogLevel = "info" }()

	flagLogLevel = "debug"
	if _, err := newLogger(os.Stderr, "test"); err != nil {
		t.Errorf("newLogger(debug) failed: %v", err)
	}

	flagLogLevel = "loud"
	if _, err := newLogger(os.Stderr, "test"); err == nil {
		t.Error("newLogger() should reject an unknown level")
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"[::1]:22":       "22",
		"no-port-at-all": "no-port-at-all",
	}
	for addr, expected := range tests {
		if got := portOf(addr); got != expected {
			t.Errorf("portOf(%q) = %q, expected %q", addr, got, expected)
		}
	}
}
