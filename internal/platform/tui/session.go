package tui

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/constellation/internal/config"
	"github.com/vovakirdan/constellation/internal/core"
	"github.com/vovakirdan/constellation/internal/games/typer"
	"github.com/vovakirdan/constellation/internal/round"
	"github.com/vovakirdan/constellation/internal/storage"
	"github.com/vovakirdan/constellation/internal/words"
)

// GameOptions describes one player's game.
type GameOptions struct {
	Config config.TyperConfig
	Pack   words.Pack
	Store  *storage.Store // Optional; without it nothing is persisted
	Logger *log.Logger
	Player string
	Seed   int64
	Clock  core.Clock // Defaults to the system clock

	// Duration overrides the stored preference when it is one of the
	// configured durations.
	Duration time.Duration
}

// NewGame wires a word source, a round engine, persistence sinks and the
// presentation layer for one player.
func NewGame(opts GameOptions) (*typer.Game, error) {
	cfg := opts.Config
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = core.SystemClock{}
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	source, err := words.NewSource(opts.Pack, cfg.Multipliers(), rng)
	if err != nil {
		return nil, err
	}

	highScores := storage.NewHighScores(opts.Store, opts.Logger)
	engine, err := round.NewEngine(source,
		round.WithRules(cfg.Rules()),
		round.WithClock(opts.Clock),
		round.WithHighScores(highScores),
		round.WithRand(rng),
	)
	if err != nil {
		return nil, err
	}
	engine.Subscribe(storage.NewRecorder(opts.Store, opts.Logger, opts.Player, opts.Pack.ID))

	prefs := durationPreference{store: opts.Store, logger: opts.Logger, player: opts.Player}
	duration := prefs.load(cfg)
	if opts.Duration > 0 && cfg.HasDuration(round.DurationTier(opts.Duration)) {
		duration = opts.Duration
	}

	game := typer.New(engine, typer.Settings{
		Durations:        cfg.Durations(),
		Duration:         duration,
		PackTitle:        opts.Pack.Title,
		HighScores:       highScores,
		OnDurationChange: prefs.save,
		Effects: typer.EffectSettings{
			Shake:       config.EffectDuration(cfg.Effects.Shake),
			Flash:       config.EffectDuration(cfg.Effects.Flash),
			ComboBanner: config.EffectDuration(cfg.Effects.ComboBanner),
			TimerPulse:  config.EffectDuration(cfg.Effects.TimerPulse),
			StreakTiers: cfg.Effects.StreakTiers,
		},
	})

	opts.Logger.Debug("game ready", "player", opts.Player, "pack", opts.Pack.ID, "duration", duration)
	return game, nil
}

// durationPreference persists the last picked round duration per player.
type durationPreference struct {
	store  *storage.Store
	logger *log.Logger
	player string
}

func (p durationPreference) key() string {
	if p.player == "" {
		return "duration"
	}
	return "duration:" + p.player
}

// load returns the stored duration, or the configured default when none is
// stored or the stored one is no longer selectable.
func (p durationPreference) load(cfg config.TyperConfig) time.Duration {
	if p.store == nil {
		return cfg.DefaultDuration()
	}

	value, ok, err := p.store.Preference(p.key())
	if err != nil {
		p.logger.Warn("could not load duration preference", "player", p.player, "error", err)
		return cfg.DefaultDuration()
	}
	if !ok {
		return cfg.DefaultDuration()
	}

	secs, err := strconv.Atoi(value)
	if err != nil || !cfg.HasDuration(secs) {
		return cfg.DefaultDuration()
	}
	return time.Duration(secs) * time.Second
}

func (p durationPreference) save(d time.Duration) {
	if p.store == nil {
		return
	}
	if err := p.store.SetPreference(p.key(), strconv.Itoa(round.DurationTier(d))); err != nil {
		p.logger.Warn("could not save duration preference", "player", p.player, "error", err)
	}
}
