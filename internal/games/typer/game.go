// Package typer is the presentation layer of the typing game. A Game
// subscribes to a round engine, turns its events into short-lived visual
// effects, maps player intents onto engine operations and draws everything
// onto a core.Screen.
package typer

import (
	"time"

	"github.com/vovakirdan/constellation/internal/core"
	"github.com/vovakirdan/constellation/internal/round"
)

// Request is something the game asks its host to do.
type Request int

const (
	RequestNone   Request = iota
	RequestScores         // Show the scoreboard
	RequestQuit           // Exit the program
)

// Settings configures a Game.
type Settings struct {
	// Durations the player can pick between rounds. Must not be empty.
	Durations []time.Duration

	// Duration preselected on the title screen. Falls back to the first entry.
	Duration time.Duration

	// PackTitle is shown under the title.
	PackTitle string

	// HighScores is read to show the record for the selected duration
	// between rounds. Optional.
	HighScores round.HighScoreStore

	// OnDurationChange is called when the player picks another duration.
	OnDurationChange func(time.Duration)

	Effects EffectSettings
}

// Game drives one player's rounds.
type Game struct {
	engine   *round.Engine
	settings Settings

	selected  int
	fx        effects
	lastRound *round.RoundEnded
	idleBest  int // Stored record for the selected duration, shown between rounds

	screenW int
	screenH int
}

// New creates a game for engine and subscribes it to the engine's events.
func New(engine *round.Engine, settings Settings) *Game {
	if len(settings.Durations) == 0 {
		settings.Durations = []time.Duration{60 * time.Second}
	}
	if settings.Effects.Shake == 0 && settings.Effects.Flash == 0 && len(settings.Effects.StreakTiers) == 0 {
		settings.Effects = DefaultEffectSettings()
	}

	g := &Game{
		engine:   engine,
		settings: settings,
		fx:       newEffects(settings.Effects),
	}
	for i, d := range settings.Durations {
		if d == settings.Duration {
			g.selected = i
		}
	}
	g.refreshBest()

	engine.Subscribe(g)
	return g
}

// HandleEvent implements round.Sink.
func (g *Game) HandleEvent(ev round.Event) {
	g.fx.apply(ev)

	switch e := ev.(type) {
	case round.RoundStarted:
		g.lastRound = nil
	case round.RoundEnded:
		g.lastRound = &e
		g.idleBest = e.HighScore
	}
}

// Engine returns the round engine the game drives.
func (g *Game) Engine() *round.Engine {
	return g.engine
}

// Typing reports whether keystrokes currently go to the round.
func (g *Game) Typing() bool {
	return g.engine.Snapshot().IsActive
}

// Duration returns the currently selected round duration.
func (g *Game) Duration() time.Duration {
	return g.settings.Durations[g.selected]
}

// LastRound returns the summary of the most recent finished round, if any.
func (g *Game) LastRound() (round.RoundEnded, bool) {
	if g.lastRound == nil {
		return round.RoundEnded{}, false
	}
	return *g.lastRound, true
}

// HandleInput applies one player intent.
func (g *Game) HandleInput(in core.Input) Request {
	if in.Action == core.ActionQuit {
		return RequestQuit
	}

	if g.Typing() {
		switch in.Action {
		case core.ActionLetter:
			g.engine.HandleChar(in.Rune)
		case core.ActionBackspace:
			g.engine.HandleBackspace()
		case core.ActionClear:
			g.engine.HandleClearTyped()
		case core.ActionEnd:
			g.engine.Stop()
		}
		return RequestNone
	}

	switch in.Action {
	case core.ActionStart:
		// The selected duration is always positive, so Start cannot fail here
		_ = g.engine.Start(g.Duration())
	case core.ActionNextDuration:
		g.cycleDuration(1)
	case core.ActionPrevDuration:
		g.cycleDuration(-1)
	case core.ActionScores:
		return RequestScores
	}
	return RequestNone
}

// Update advances the effects and the round by dt. Effects run down first so
// that effects started by this tick's events are shown at full length.
func (g *Game) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	g.fx.advance(dt)
	g.engine.Tick(dt)
}

func (g *Game) cycleDuration(step int) {
	n := len(g.settings.Durations)
	g.selected = ((g.selected+step)%n + n) % n
	g.refreshBest()

	if g.settings.OnDurationChange != nil {
		g.settings.OnDurationChange(g.Duration())
	}
}

func (g *Game) refreshBest() {
	g.idleBest = 0
	if g.settings.HighScores != nil {
		g.idleBest = g.settings.HighScores.Load(round.DurationTier(g.Duration()))
	}
}
