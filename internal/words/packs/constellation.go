// Package packs contains the built-in word packs.
// Each pack registers itself with the registry on import.
package packs

import (
	"github.com/vovakirdan/constellation/internal/registry"
	"github.com/vovakirdan/constellation/internal/words"
)

// Constellation returns the default space-themed pack.
func Constellation() words.Pack {
	return words.Pack{
		ID:    "constellation",
		Title: "Word Constellation",
		Lists: map[words.Tier][]string{
			words.TierEasy: {
				"cat", "dog", "run", "jump", "blue", "red", "sun", "moon",
				"star", "fire", "water", "earth", "wind", "light", "dark", "love",
				"hope", "dream", "wish", "play", "game", "code", "type", "word",
				"fast", "slow", "big", "small", "good", "nice", "cool", "warm",
				"cold", "hot", "new", "old", "yes", "no",
			},
			words.TierMedium: {
				"galaxy", "planet", "cosmic", "stellar", "nebula", "orbit", "meteor", "typing",
				"coding", "gaming", "puzzle", "rhythm", "energy", "magic", "forest", "ocean",
				"mountain", "desert", "castle", "bridge", "tunnel", "rocket", "engine", "system",
				"network", "circuit", "matrix", "vector", "chrome", "firefox", "cursor", "window",
				"folder", "binary", "pixel",
			},
			words.TierHard: {
				"constellation", "supernova", "parallax", "quantum", "infinity", "paradox",
				"algorithm", "programming", "javascript", "development", "architecture",
				"synchronize", "optimization", "authentication", "encryption", "deployment",
				"magnificent", "extraordinary", "phenomenal", "spectacular", "breathtaking",
				"revolutionary", "metamorphosis", "crystalline", "kaleidoscope", "symphony",
			},
			// "cosmic" lives in medium only; tiers must not share words.
			words.TierBonus: {
				"stardust", "moonbeam", "lightning", "thunder", "rainbow", "crystal",
				"diamond", "emerald", "sapphire", "phoenix", "dragon", "unicorn",
				"wizard", "enchant", "mystic", "astral", "eternal",
			},
		},
	}
}

func init() {
	registry.Register("constellation", Constellation)
}
