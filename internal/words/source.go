// Package words provides the word tables and point values for the typing game.
// A Source picks random words per difficulty tier and scores them by length.
package words

import (
	"math"
	"math/rand"
	"time"
)

// Word is a word revealed to the player. It is immutable once chosen.
type Word struct {
	Text       string
	Tier       Tier
	RevealedAt time.Time
}

// Len returns the number of letters in the word.
func (w Word) Len() int {
	return len(w.Text)
}

// Source picks words from a validated pack.
type Source struct {
	pack        Pack
	multipliers Multipliers
	rng         *rand.Rand
	lookup      map[string]Tier
}

// NewSource validates the pack and builds a word source.
// A nil rng is replaced by a time-seeded one; nil multipliers use the defaults.
func NewSource(pack Pack, multipliers Multipliers, rng *rand.Rand) (*Source, error) {
	if err := pack.Validate(); err != nil {
		return nil, err
	}
	if multipliers == nil {
		multipliers = DefaultMultipliers()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	lookup := make(map[string]Tier, pack.Size())
	// Iterate in precedence order so the first tier wins.
	for _, t := range Tiers {
		for _, w := range pack.Lists[t] {
			if _, ok := lookup[w]; !ok {
				lookup[w] = t
			}
		}
	}

	return &Source{
		pack:        pack,
		multipliers: multipliers,
		rng:         rng,
		lookup:      lookup,
	}, nil
}

// Pack returns the pack this source draws from.
func (s *Source) Pack() Pack {
	return s.pack
}

// PickWord samples a word uniformly from the tier's table.
func (s *Source) PickWord(tier Tier, now time.Time) Word {
	list := s.pack.Lists[tier]
	return Word{
		Text:       list[s.rng.Intn(len(list))],
		Tier:       tier,
		RevealedAt: now,
	}
}

// TierOf looks up the tier of a word by precedence easy, medium, hard, bonus.
func (s *Source) TierOf(text string) (Tier, bool) {
	t, ok := s.lookup[text]
	return t, ok
}

// PointsFor returns floor(len(word) * tier multiplier).
func (s *Source) PointsFor(w Word) int {
	return int(math.Floor(float64(w.Len()) * s.multipliers.For(w.Tier)))
}

// Multiplier returns the score multiplier of a tier.
func (s *Source) Multiplier(t Tier) float64 {
	return s.multipliers.For(t)
}
