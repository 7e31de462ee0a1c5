// Package safeordead is the playable front of the session engine: it turns
// input frames into engine commands and draws the session into a screen
// buffer. The engine owns all game state; this package only owns the tile
// cursor and the bet being typed.
package safeordead

import (
	"strconv"
	"time"

	"github.com/vovakirdan/safe-or-dead/internal/core"
	"github.com/vovakirdan/safe-or-dead/internal/engine"
	"github.com/vovakirdan/safe-or-dead/internal/round"
)

const (
	// ID is the game identifier used in logs and window titles.
	ID = "safeordead"

	// maxBetDigits caps the length of the bet field.
	maxBetDigits = 4
)

// Controls lists which commands are available, mirroring which buttons the
// player can press.
type Controls struct {
	BetEntry     bool // Typing a bet
	Start        bool
	Pick         bool // Move the cursor and pick a tile
	CashOut      bool
	Restart      bool
	ResetBalance bool
}

// ControlsFor derives the available commands from a snapshot.
func ControlsFor(s engine.Snapshot) Controls {
	switch s.State {
	case engine.Active:
		return Controls{
			Pick:    s.InteractiveLevel >= 0,
			CashOut: s.CashOutEnabled,
		}
	case engine.GameOver:
		return Controls{Restart: true, ResetBalance: true}
	default:
		return Controls{BetEntry: true, Start: true, ResetBalance: true}
	}
}

// Game adapts an engine session to the platform's Step/Render loop.
type Game struct {
	eng     *engine.Engine
	maxBet  int
	betText string
	cursor  int

	screenW int
	screenH int
}

// New creates a game over an existing session.
func New(eng *engine.Engine) *Game {
	g := &Game{
		eng:    eng,
		maxBet: eng.Config().Bet.Max,
	}
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Safe or Dead"
}

// Reset prepares the view for a new screen. The session itself, including
// the balance, is kept.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.betText = strconv.Itoa(g.eng.Config().Bet.Default)
	g.cursor = round.TilesPerLevel / 2
}

// Resize updates the screen dimensions without touching input state.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Engine returns the session driven by the game.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// BetText returns the bet being typed.
func (g *Game) BetText() string {
	return g.betText
}

// Cursor returns the tile position under the cursor.
func (g *Game) Cursor() int {
	return g.cursor
}

// Controls returns the commands available right now.
func (g *Game) Controls() Controls {
	return ControlsFor(g.eng.Snapshot())
}

// Step applies one frame of input, then advances the engine clock by dt.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	snap := g.eng.Snapshot()
	ctl := ControlsFor(snap)

	if ctl.BetEntry {
		for _, r := range in.Text {
			g.typeBet(r)
		}
		if in.Has(core.ActionBackspace) && g.betText != "" {
			g.betText = g.betText[:len(g.betText)-1]
		}
	}

	if ctl.Pick {
		if in.Has(core.ActionLeft) {
			g.cursor = core.Clamp(g.cursor-1, 0, round.TilesPerLevel-1)
		}
		if in.Has(core.ActionRight) {
			g.cursor = core.Clamp(g.cursor+1, 0, round.TilesPerLevel-1)
		}
	}

	if in.Has(core.ActionConfirm) {
		switch {
		case ctl.Start:
			// A rejected bet is reported through a notice.
			_ = g.eng.StartGame(g.betText)
		case ctl.Pick:
			g.eng.SelectTile(snap.InteractiveLevel, g.cursor)
		}
	}
	if in.Has(core.ActionCashOut) && ctl.CashOut {
		_, _ = g.eng.CashOut()
	}
	if in.Has(core.ActionRestart) && ctl.Restart {
		_ = g.eng.Restart()
	}
	if in.Has(core.ActionResetBalance) && ctl.ResetBalance {
		g.eng.ResetBalance()
	}

	g.eng.Advance(dt)
	return core.StepResult{State: g.State()}
}

// typeBet appends a digit to the bet, dropping anything else and clamping
// values above the maximum bet to the maximum.
func (g *Game) typeBet(r rune) {
	if r < '0' || r > '9' {
		return
	}
	text := g.betText + string(r)
	if len(text) > maxBetDigits {
		text = text[:maxBetDigits]
	}
	if n, err := strconv.Atoi(text); err == nil && n > g.maxBet {
		text = strconv.Itoa(g.maxBet)
	}
	g.betText = text
}

// State returns the summary reported to the platform.
func (g *Game) State() core.GameState {
	s := g.eng.Snapshot()
	return core.GameState{
		Balance: s.Balance,
		InGame:  s.State == engine.Active,
	}
}
