package core

import (
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{42, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(40, 12, 20, 5)
	if r.X != 30 || r.Y != 10 {
		t.Errorf("CenteredRect = %+v, expected origin (30, 10)", r)
	}
	if r.Right() != 50 || r.Bottom() != 15 {
		t.Errorf("CenteredRect = %+v, expected far corner (50, 15)", r)
	}
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)

	c.Advance(1500 * time.Millisecond)
	c.Advance(-time.Second) // ignored

	if got := c.Now().Sub(start); got != 1500*time.Millisecond {
		t.Errorf("clock advanced %v, expected 1.5s", got)
	}
}

func TestRuntimeConfigFrameInterval(t *testing.T) {
	cfg := RuntimeConfig{TickRate: 50}
	if cfg.FrameInterval() != 20*time.Millisecond {
		t.Errorf("FrameInterval() = %v", cfg.FrameInterval())
	}

	cfg.TickRate = 0
	if cfg.FrameInterval() != time.Second/60 {
		t.Errorf("zero tick rate should fall back to 60 fps, got %v", cfg.FrameInterval())
	}

	cfg.Seed = 7
	if cfg.ResolveSeed() != 7 {
		t.Error("explicit seed should be kept")
	}
}
