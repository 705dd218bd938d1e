package round

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/constellation/internal/words"
)

func TestSpeedBonus(t *testing.T) {
	r := DefaultRules()

	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{-time.Second, 3},
		{0, 3},
		{time.Second, 2.5},
		{2 * time.Second, 2},
		{4 * time.Second, 1},
		{30 * time.Second, 1},
	}

	for _, tt := range tests {
		if got := r.SpeedBonus(tt.elapsed); got != tt.want {
			t.Errorf("SpeedBonus(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestComboMultiplier(t *testing.T) {
	r := DefaultRules()

	tests := []struct {
		combo int
		want  float64
	}{
		{0, 1},
		{1, 1},
		{2, 1.1},
		{11, 2},
		{21, 3},
		{50, 3},
	}

	for _, tt := range tests {
		got := r.ComboMultiplier(tt.combo)
		if got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("ComboMultiplier(%d) = %v, want %v", tt.combo, got, tt.want)
		}
	}
}

func TestPoints(t *testing.T) {
	r := DefaultRules()

	if got := r.Points(3, 0, 1); got != 9 {
		t.Errorf("Points(3, 0, 1) = %d, want 9", got)
	}
	if got := r.Points(7, 3*time.Second, 2); got != 11 {
		// 7 * 1.5 * 1.1 = 11.55
		t.Errorf("Points(7, 3s, 2) = %d, want 11", got)
	}
}

func TestWPM(t *testing.T) {
	tests := []struct {
		completed int
		typing    time.Duration
		want      int
	}{
		{0, time.Minute, 0},
		{10, 0, 0},
		{10, time.Minute, 10},
		{7, 30 * time.Second, 14},
		{5, 40 * time.Second, 7},
	}

	for _, tt := range tests {
		if got := WPM(tt.completed, tt.typing); got != tt.want {
			t.Errorf("WPM(%d, %v) = %d, want %d", tt.completed, tt.typing, got, tt.want)
		}
	}
}

func TestProgressionBaseTier(t *testing.T) {
	p := DefaultProgression()

	tests := []struct {
		completed int
		want      words.Tier
	}{
		{0, words.TierEasy},
		{4, words.TierEasy},
		{5, words.TierMedium},
		{14, words.TierMedium},
		{15, words.TierHard},
		{100, words.TierHard},
	}

	for _, tt := range tests {
		if got := p.BaseTier(tt.completed); got != tt.want {
			t.Errorf("BaseTier(%d) = %v, want %v", tt.completed, got, tt.want)
		}
	}
}

func TestProgressionBonusRate(t *testing.T) {
	p := DefaultProgression()
	rng := rand.New(rand.NewSource(5))

	bonus := 0
	const picks = 10000
	for i := 0; i < picks; i++ {
		if p.Pick(3, rng) == words.TierBonus {
			bonus++
		}
	}
	if bonus < 800 || bonus > 1200 {
		t.Errorf("bonus picks = %d of %d, expected about 10%%", bonus, picks)
	}

	for i := 0; i < 100; i++ {
		if p.Pick(0, rng) == words.TierBonus {
			t.Fatal("first pick of a round must never be a bonus word")
		}
	}
}

func TestRulesValidate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules should validate: %v", err)
	}

	mutations := map[string]func(r *Rules){
		"zero min speed":    func(r *Rules) { r.MinSpeedBonus = 0 },
		"max below min":     func(r *Rules) { r.MaxSpeedBonus = 0.5 },
		"combo mult below":  func(r *Rules) { r.MaxComboMultiplier = 0.9 },
		"zero idle timeout": func(r *Rules) { r.IdleComboTimeout = 0 },
		"bad threshold":     func(r *Rules) { r.TimerLowThresholds = []time.Duration{0} },
		"bonus chance":      func(r *Rules) { r.Progression.BonusChance = 1.5 },
	}

	for name, mutate := range mutations {
		r := DefaultRules()
		mutate(&r)
		if err := r.Validate(); err == nil {
			t.Errorf("%s: Validate() should fail", name)
		}
	}
}

func TestThresholdsSortedDescending(t *testing.T) {
	r := DefaultRules()
	r.TimerLowThresholds = []time.Duration{2 * time.Second, 10 * time.Second, 5 * time.Second}

	got := r.thresholds()
	if got[0] != 10*time.Second || got[1] != 5*time.Second || got[2] != 2*time.Second {
		t.Errorf("thresholds() = %v", got)
	}
	if r.TimerLowThresholds[0] != 2*time.Second {
		t.Error("thresholds() must not reorder the rules slice")
	}
}
