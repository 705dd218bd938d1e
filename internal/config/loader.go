package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/constellation/internal/words"
)

// LoadTyper loads the typing game configuration.
// Search order: customPath -> ~/.constellation/configs/typer.yaml -> ./configs/typer.yaml -> embedded default
//
// Files only need to set the values they change; everything else keeps its default.
// A custom path must exist and validate. Broken files further down the search
// path are skipped.
func LoadTyper(customPath string) (TyperConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TyperConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseTyper(data)
		if err != nil {
			return TyperConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("typer.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseTyper(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "typer.yaml")); err == nil {
		if cfg, err := parseTyper(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseTyper(defaultTyperYAML)
	if err != nil {
		return DefaultTyperConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseTyper decodes data over the hardcoded defaults and validates the result.
func parseTyper(data []byte) (TyperConfig, error) {
	cfg := DefaultTyperConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TyperConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TyperConfig{}, err
	}
	return cfg, nil
}

// Marshal renders a configuration as YAML.
func Marshal(cfg TyperConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// packFile is the on-disk layout of a custom word pack.
type packFile struct {
	ID    string              `yaml:"id"`
	Title string              `yaml:"title"`
	Words map[string][]string `yaml:"words"`
}

// LoadPack reads a word pack from a YAML file:
//
//	id: animals
//	title: Animals
//	words:
//	  easy: [cat, dog]
//	  medium: [badger]
//	  hard: [armadillo]
//	  bonus: [axolotl]
//
// The ID defaults to the file name without extension.
func LoadPack(path string) (words.Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return words.Pack{}, fmt.Errorf("failed to read pack %s: %w", path, err)
	}

	var pf packFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return words.Pack{}, fmt.Errorf("failed to parse pack %s: %w", path, err)
	}

	pack := words.Pack{
		ID:    pf.ID,
		Title: pf.Title,
		Lists: make(map[words.Tier][]string, len(pf.Words)),
	}
	if pack.ID == "" {
		pack.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if pack.Title == "" {
		pack.Title = pack.ID
	}

	for name, list := range pf.Words {
		tier, err := words.ParseTier(name)
		if err != nil {
			return words.Pack{}, fmt.Errorf("pack %s: %w", path, err)
		}
		pack.Lists[tier] = append(pack.Lists[tier], list...)
	}

	if err := pack.Validate(); err != nil {
		return words.Pack{}, fmt.Errorf("pack %s: %w", path, err)
	}
	return pack, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".constellation", "configs", filename)
}
