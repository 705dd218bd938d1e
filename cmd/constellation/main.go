// constellation is a terminal typing game: type the word before the clock
// runs out, keep the combo alive, beat the record for your round length.
//
// Usage:
//
//	constellation play            - Play a round in this terminal
//	constellation serve           - Start SSH server for remote play
//	constellation scores          - Show high scores and round history
//	constellation packs           - List built-in word packs
//	constellation config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible word picks
//	--db <path>           - Set database path (default: ~/.constellation/scores.db)
//	--config <path>       - Custom typer.yaml
//	--pack <id>           - Word pack to play
//	--words <path>        - Custom YAML word pack (overrides --pack)
//	--difficulty <preset> - easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn, error
//
// CONSTELLATION_DB and CONSTELLATION_CONFIG, from the environment or a .env
// file, change the defaults of --db and --config.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	// Import packs to register them
	_ "github.com/vovakirdan/constellation/internal/words/packs"
)

const defaultDBPath = "~/.constellation/scores.db"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagPack       string
	flagWords      string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	// Optional .env; a missing file is fine
	_ = godotenv.Load()

	registerFlags()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "constellation",
	Short: "Constellation - a typing game for your terminal",
	Long: `Constellation is a terminal typing game. A word appears, you type it
before the countdown ends. Fast words score more, and every word in a row
raises your combo multiplier.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View high scores and round history
  packs    - List word packs
  config   - Print the effective configuration

Examples:
  constellation play
  constellation play --duration 30 --difficulty hard
  constellation play --words ./my-words.yaml
  constellation serve --ssh :2222
  constellation scores --duration 60`,
	SilenceUsage: true,
}

// registerFlags binds the global flags. Defaults read the environment, so
// this runs after the .env file is loaded.
func registerFlags() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", envOr("CONSTELLATION_DB", defaultDBPath), "Path to scores database")
	flags.StringVar(&flagConfig, "config", envOr("CONSTELLATION_CONFIG", ""), "Path to custom typer.yaml")
	flags.StringVar(&flagPack, "pack", "", "Word pack ID (default from config)")
	flags.StringVar(&flagWords, "words", "", "Path to a custom YAML word pack")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(packsCmd)
	rootCmd.AddCommand(configCmd)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
