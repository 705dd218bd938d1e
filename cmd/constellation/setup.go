package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/constellation/internal/config"
	"github.com/vovakirdan/constellation/internal/registry"
	"github.com/vovakirdan/constellation/internal/words"
)

// loadConfig loads typer.yaml from the search path and applies --difficulty.
func loadConfig() (config.TyperConfig, error) {
	cfg, err := config.LoadTyper(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyTyperPreset(&cfg, preset)
	return cfg, nil
}

// resolvePack picks the word pack: --words, then --pack, then the config's
// words.file, then the config's words.pack.
func resolvePack(cfg config.TyperConfig, wordsPath, packID string) (words.Pack, error) {
	switch {
	case wordsPath != "":
		return config.LoadPack(wordsPath)
	case packID != "":
		return createPack(packID)
	case cfg.Words.File != "":
		return config.LoadPack(cfg.Words.File)
	case cfg.Words.Pack != "":
		return createPack(cfg.Words.Pack)
	default:
		return createPack(registry.DefaultPack)
	}
}

func createPack(id string) (words.Pack, error) {
	if !registry.Exists(id) {
		return words.Pack{}, fmt.Errorf("unknown word pack %q (run 'constellation packs' to list them)", id)
	}
	return registry.Create(id)
}

// newLogger builds a logger writing to w with the --log-level threshold.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens ~/.constellation/constellation.log for local play, where
// stderr belongs to the alt screen. Falls back to discarding.
func openLogFile() (io.Writer, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return io.Discard, func() {}
	}

	dir := filepath.Join(home, ".constellation")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard, func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, "constellation.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}
