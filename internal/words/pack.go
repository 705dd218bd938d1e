package words

import (
	"errors"
	"fmt"
)

// Pack validation errors.
var (
	ErrEmptyTier     = errors.New("words: empty tier")
	ErrInvalidWord   = errors.New("words: invalid word")
	ErrDuplicateWord = errors.New("words: word appears in more than one tier")
)

// Pack is a named set of per-tier word tables.
type Pack struct {
	ID    string
	Title string
	Lists map[Tier][]string
}

// Validate checks that every tier has words, that every word is lowercase a-z,
// and that no word appears in more than one tier.
func (p Pack) Validate() error {
	seen := make(map[string]Tier)
	for _, t := range Tiers {
		list := p.Lists[t]
		if len(list) == 0 {
			return fmt.Errorf("%w: pack %q has no %s words", ErrEmptyTier, p.ID, t)
		}
		for _, w := range list {
			if !IsWord(w) {
				return fmt.Errorf("%w: %q in %s tier of pack %q", ErrInvalidWord, w, t, p.ID)
			}
			if prev, ok := seen[w]; ok && prev != t {
				return fmt.Errorf("%w: %q in %s and %s of pack %q", ErrDuplicateWord, w, prev, t, p.ID)
			}
			seen[w] = t
		}
	}
	return nil
}

// Size returns the total number of words in the pack.
func (p Pack) Size() int {
	n := 0
	for _, list := range p.Lists {
		n += len(list)
	}
	return n
}

// IsWord reports whether s is a non-empty string of lowercase ASCII letters.
func IsWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !IsLetter(rune(s[i])) {
			return false
		}
	}
	return true
}

// IsLetter reports whether r is a single lowercase ASCII letter.
func IsLetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}
