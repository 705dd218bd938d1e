package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/constellation/internal/platform/tui"
	"github.com/vovakirdan/constellation/internal/storage"
)

var (
	flagScoresDuration int
	flagScoresLimit    int
	flagScoresPlain    bool
	flagScoresClear    bool
	flagScoresPlayer   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and round history",
	Long: `Display the high score of every round length and the best rounds.

In a terminal the interactive scoreboard opens; with --plain, or when the
output is redirected, a text table is printed instead.

Examples:
  constellation scores
  constellation scores --duration 60 --limit 20
  constellation scores --plain
  constellation scores --player alice
  constellation scores --clear --duration 30`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresDuration, "duration", 0, "Only this round length in seconds (0 = all)")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a text table instead of the scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the history and high score (of --duration, or all)")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Print the latest rounds of one player")
}

func runScores(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(flagScoresDuration); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if flagScoresPlayer != "" {
		return printRecent(store, flagScoresPlayer, flagScoresLimit)
	}

	durations := cfg.Round.Durations
	if flagScoresDuration != 0 {
		durations = []int{flagScoresDuration}
	}

	if !flagScoresPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunScoreboard(store, durations, width, height)
	}

	for _, secs := range durations {
		if err := printRounds(store, secs, flagScoresLimit); err != nil {
			return err
		}
	}
	return nil
}

// printRounds prints the best rounds and aggregate stats of one duration.
func printRounds(store *storage.Store, secs, limit int) error {
	rounds, err := store.TopRounds(secs, limit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %d second rounds\n", secs)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-7s  %-5s  %-5s  %-4s  %-12s  %s\n", "Rank", "Score", "Words", "Combo", "WPM", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-5s  %-5s  %-4s  %-12s  %s\n", "----", "-----", "-----", "-----", "---", "------", "----")

	// Print rounds
	for i, r := range rounds {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-7d  %-5d  x%-4d  %-4d  %-12s  %s\n",
			i+1, r.Score, r.WordsCompleted, r.MaxCombo, r.WPM, r.Player, dateStr)
	}

	// Show high score and stats
	fmt.Println()
	if best, err := store.HighScore(secs); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.Stats(secs); err == nil && stats.RoundsCount > 0 {
		fmt.Printf("Rounds: %d  Average: %.0f  Best WPM: %d  Best combo: x%d  Words: %d\n",
			stats.RoundsCount, stats.AvgScore, stats.BestWPM, stats.BestCombo, stats.TotalWords)
	}
	fmt.Println()
	return nil
}

// printRecent prints the latest rounds of one player, newest first.
func printRecent(store *storage.Store, player string, limit int) error {
	rounds, err := store.RecentRounds(player, limit)
	if err != nil {
		return fmt.Errorf("retrieving rounds: %w", err)
	}

	fmt.Printf("Latest rounds - %s\n", player)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-5s  %-7s  %-5s  %-5s  %s\n", "Date", "Time", "Score", "Words", "Combo", "WPM")
	fmt.Printf("  %-16s  %-5s  %-7s  %-5s  %-5s  %s\n", "----", "----", "-----", "-----", "-----", "---")
	for _, r := range rounds {
		fmt.Printf("  %-16s  %-5s  %-7d  %-5d  x%-4d  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), fmt.Sprintf("%ds", r.DurationSecs),
			r.Score, r.WordsCompleted, r.MaxCombo, r.WPM)
	}
	return nil
}
