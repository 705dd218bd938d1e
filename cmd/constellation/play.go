package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/constellation/internal/core"
	"github.com/vovakirdan/constellation/internal/platform/tui"
	"github.com/vovakirdan/constellation/internal/storage"
)

var (
	flagDuration int
	flagPlayer   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the typing game in this terminal.

The clock starts on your first letter. Every completed word reveals the
next one; the longer your streak, the higher the multiplier. A wrong
letter or five seconds without finishing a word breaks the combo.

Controls:
  Space/Enter   - Start a round
  Tab/Arrows    - Change round length
  S             - Scoreboard
  Backspace     - Delete a letter
  Ctrl+U        - Clear the typed letters
  Esc           - End the round early
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Harder words arrive later, more bonus words
  normal - Medium after 5 words, hard after 15
  hard   - Harder words arrive early, fewer bonus words
  fixed  - Easy words only, no bonus words

Examples:
  constellation play
  constellation play --duration 30
  constellation play --pack terminal --difficulty hard
  constellation play --words ./my-words.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagDuration, "duration", 0, "Round length in seconds (default: last used)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for round history (default: $USER)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagDuration != 0 && !cfg.HasDuration(flagDuration) {
		return fmt.Errorf("unsupported duration %ds (configured: %v)", flagDuration, cfg.Round.Durations)
	}

	pack, err := resolvePack(cfg, flagWords, flagPack)
	if err != nil {
		return err
	}

	logOut, closeLog := openLogFile()
	defer closeLog()
	logger, err := newLogger(logOut, "constellation")
	if err != nil {
		return err
	}

	runtime := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}
	if flagFPS > 0 {
		runtime.TickRate = flagFPS
	}
	runtime.Seed = flagSeed

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	game, err := tui.NewGame(tui.GameOptions{
		Config:   cfg,
		Pack:     pack,
		Store:    store,
		Logger:   logger,
		Player:   player,
		Seed:     runtime.ResolveSeed(),
		Duration: time.Duration(flagDuration) * time.Second,
	})
	if err != nil {
		return err
	}

	if err := tui.Run(game, store, runtime, cfg.Round.Durations); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
