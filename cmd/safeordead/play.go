package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/safe-or-dead/internal/core"
	"github.com/vovakirdan/safe-or-dead/internal/engine"
	"github.com/vovakirdan/safe-or-dead/internal/games/safeordead"
	"github.com/vovakirdan/safe-or-dead/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a local Safe or Dead session. The balance lives only as long
as the session; finished rounds are written to the history database.

Controls:
  0-9/Backspace  - Edit the bet
  Enter/Space    - Start a game, pick the tile under the cursor
  Left/Right     - Move the cursor (also A/D)
  C              - Cash out
  R              - Back to betting after game over
  X              - Reset balance
  Ctrl+S         - Save a screenshot
  Q/Ctrl+C       - Quit

Examples:
  safeordead play
  safeordead play --seed 42
  safeordead play --config ./hard.yaml --log-file ./play.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	rules := loadRules()

	// The alternate screen owns the terminal, so logs go nowhere unless a
	// file is given.
	logger, closeLog := newLogger(io.Discard, "safeordead")
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithSeed(flagSeed),
	}
	store := openStore()
	if store != nil {
		defer store.Close()
		opts = append(opts, engine.WithObserver(store))
	}

	game := safeordead.New(engine.New(rules, opts...))
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	if err := tui.Run(game, cfg); err != nil {
		fail("%v", err)
	}
}
