// safeordead is a terminal push-your-luck game: climb eight levels of
// tiles, avoid the DEAD ones and cash out before your luck runs out.
//
// Usage:
//
//	safeordead play              - Play in this terminal
//	safeordead serve             - Start SSH server for remote play
//	safeordead history           - Show recent rounds and totals
//	safeordead levels            - Show the level table and odds
//	safeordead verify <round-id> - Check a round against its commitment
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible deals
//	--db <path>       - Set database path (default: ~/.safeordead/rounds.db)
//	--config <path>   - Use a custom rules YAML
//	--log-level <lvl> - debug, info, warn or error
//	--log-file <path> - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/safe-or-dead/internal/config"
	"github.com/vovakirdan/safe-or-dead/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "safeordead",
	Short: "Safe or Dead - a push-your-luck tile game for the terminal",
	Long: `Safe or Dead is a terminal betting game. Place a bet, then pick one
tile per level. SAFE tiles take you up the tower and grow your winnings,
a DEAD tile loses the bet. Cash out at any time, or clear all eight
levels for the jackpot.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  history  - Show recent rounds and totals
  levels   - Show the level table and odds
  verify   - Check a finished round against its commitment

Examples:
  safeordead play
  safeordead play --seed 42 --db ""
  safeordead serve --ssh :2222
  safeordead history --limit 20
  safeordead levels --bet 50`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.safeordead/rounds.db", "Path to round history database (empty disables history)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(verifyCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadRules loads the game rules from --config or the default locations.
func loadRules() config.Config {
	rules, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	return rules
}

// newLogger builds a logger writing to --log-file, or to fallback when no
// file is given. The returned closer must be called on exit.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q: %v", flagLogLevel, err)
	}

	w, closer := fallback, func() {}
	if flagLogFile != "" {
		path, err := config.ExpandHome(flagLogFile)
		if err != nil {
			fail("%v", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			fail("cannot open log file: %v", err)
		}
		w, closer = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer
}

// openStore opens the history database, or returns nil if --db is empty.
func openStore() *storage.Store {
	if flagDBPath == "" {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening round history: %v", err)
	}
	return store
}

// mustOpenStore opens the history database for commands that need it.
func mustOpenStore() *storage.Store {
	store := openStore()
	if store == nil {
		fail("round history is disabled (--db is empty)")
	}
	return store
}
