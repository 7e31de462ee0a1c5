package safeordead

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/safe-or-dead/internal/config"
	"github.com/vovakirdan/safe-or-dead/internal/core"
	"github.com/vovakirdan/safe-or-dead/internal/engine"
	"github.com/vovakirdan/safe-or-dead/internal/round"
)

const testSeed = 2024

func newTestGame(t *testing.T) (*Game, round.Layouts) {
	t.Helper()
	cfg := config.Default()
	g := New(engine.New(cfg, engine.WithSeed(testSeed)))
	// The engine deals its first game from the same seeded generator.
	layouts := round.NewGenerator(cfg.Table(), testSeed).Deal()
	return g, layouts
}

func press(g *Game, dt time.Duration, actions ...core.Action) {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	g.Step(in, dt)
}

func typeText(g *Game, text string) {
	in := core.NewInputFrame()
	in.Type([]rune(text)...)
	g.Step(in, 0)
}

// moveTo steps the cursor to a tile position.
func moveTo(g *Game, pos int) {
	for g.Cursor() < pos {
		press(g, 0, core.ActionRight)
	}
	for g.Cursor() > pos {
		press(g, 0, core.ActionLeft)
	}
}

func safeOn(l round.Layout) int {
	for pos := 0; pos < round.TilesPerLevel; pos++ {
		if !l.Contains(pos) {
			return pos
		}
	}
	return -1
}

func TestBetEntry(t *testing.T) {
	g, _ := newTestGame(t)

	if g.BetText() != "10" {
		t.Fatalf("initial bet = %q, want the default 10", g.BetText())
	}

	press(g, 0, core.ActionBackspace)
	press(g, 0, core.ActionBackspace)
	press(g, 0, core.ActionBackspace)
	if g.BetText() != "" {
		t.Fatalf("after backspaces bet = %q, want empty", g.BetText())
	}

	tests := []struct {
		typed string
		want  string
	}{
		{"a5-0", "50"},
		{"0", "500"},
		{"0", "1000"},
		{"7", "1000"},
	}
	for _, tc := range tests {
		typeText(g, tc.typed)
		if g.BetText() != tc.want {
			t.Errorf("after typing %q bet = %q, want %q", tc.typed, g.BetText(), tc.want)
		}
	}
}

func TestStartGame(t *testing.T) {
	g, _ := newTestGame(t)
	press(g, 0, core.ActionConfirm)

	s := g.Engine().Snapshot()
	if s.State != engine.Active || s.Balance != 90 || s.Bet != 10 {
		t.Fatalf("State = %s, Balance = %d, Bet = %d", s.State, s.Balance, s.Bet)
	}
	if st := g.State(); !st.InGame || st.Balance != 90 {
		t.Errorf("State() = %+v", st)
	}

	typeText(g, "5")
	if g.BetText() != "10" {
		t.Errorf("bet edited during a game: %q", g.BetText())
	}
}

func TestRejectedBetShowsNotice(t *testing.T) {
	g, _ := newTestGame(t)
	typeText(g, "00")
	press(g, 0, core.ActionConfirm)

	s := g.Engine().Snapshot()
	if s.State != engine.Inactive || len(s.Notices) != 1 {
		t.Fatalf("bet 1000 with balance 100 should fail, got %s with %d notices", s.State, len(s.Notices))
	}
	if s.Notices[0].Text != "Insufficient Balance!" {
		t.Errorf("notice = %q", s.Notices[0].Text)
	}

	press(g, config.Default().Timing.Notice)
	if n := len(g.Engine().Snapshot().Notices); n != 0 {
		t.Errorf("notice still visible after its timeout: %d", n)
	}
}

func TestPickAndCashOut(t *testing.T) {
	g, layouts := newTestGame(t)
	press(g, 0, core.ActionConfirm)

	moveTo(g, safeOn(layouts[0]))
	press(g, 0, core.ActionConfirm)
	if !g.Engine().Snapshot().Pending {
		t.Fatal("pick was not forwarded to the engine")
	}
	if g.Controls().Pick || g.Controls().CashOut {
		t.Error("controls should be locked while a pick is pending")
	}

	press(g, 40*time.Millisecond)
	s := g.Engine().Snapshot()
	if s.Level != 2 || s.Winnings != 12 {
		t.Fatalf("Level = %d, Winnings = %d, want 2 and 12", s.Level, s.Winnings)
	}

	press(g, 0, core.ActionResetBalance)
	if g.Engine().Snapshot().Balance != 90 {
		t.Error("reset balance should be disabled during a game")
	}

	press(g, 0, core.ActionCashOut)
	s = g.Engine().Snapshot()
	if s.State != engine.GameOver || s.Balance != 102 {
		t.Errorf("State = %s, Balance = %d, want GAME_OVER 102", s.State, s.Balance)
	}

	typeText(g, "9")
	press(g, 0, core.ActionConfirm)
	if g.Engine().Snapshot().State != engine.GameOver {
		t.Error("start should be disabled after game over until restart")
	}

	press(g, 0, core.ActionRestart)
	if g.Engine().Snapshot().State != engine.Inactive {
		t.Error("restart key did not return to betting")
	}
}

func TestCursorClamped(t *testing.T) {
	g, _ := newTestGame(t)
	press(g, 0, core.ActionConfirm)

	for i := 0; i < 10; i++ {
		press(g, 0, core.ActionLeft)
	}
	if g.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", g.Cursor())
	}
	for i := 0; i < 10; i++ {
		press(g, 0, core.ActionRight)
	}
	if g.Cursor() != round.TilesPerLevel-1 {
		t.Errorf("Cursor() = %d, want %d", g.Cursor(), round.TilesPerLevel-1)
	}
}

func TestControlsFor(t *testing.T) {
	tests := []struct {
		name string
		snap engine.Snapshot
		want Controls
	}{
		{"inactive", engine.Snapshot{State: engine.Inactive, InteractiveLevel: -1},
			Controls{BetEntry: true, Start: true, ResetBalance: true}},
		{"active level one", engine.Snapshot{State: engine.Active, InteractiveLevel: 0},
			Controls{Pick: true}},
		{"active with winnings", engine.Snapshot{State: engine.Active, InteractiveLevel: 3, CashOutEnabled: true},
			Controls{Pick: true, CashOut: true}},
		{"pending", engine.Snapshot{State: engine.Active, InteractiveLevel: -1, Pending: true},
			Controls{}},
		{"game over", engine.Snapshot{State: engine.GameOver, InteractiveLevel: -1},
			Controls{Restart: true, ResetBalance: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ControlsFor(tc.snap); got != tc.want {
				t.Errorf("ControlsFor() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRenderTower(t *testing.T) {
	g, layouts := newTestGame(t)
	press(g, 0, core.ActionConfirm)
	moveTo(g, safeOn(layouts[0]))
	press(g, 0, core.ActionConfirm)
	press(g, 40*time.Millisecond)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(1), "Balance: 90 coins") || !strings.Contains(screen.Row(1), "Winnings: 12 coins") {
		t.Errorf("header = %q", screen.Row(1))
	}
	if !strings.Contains(screen.Row(levelY(7)), "Level 8  89.69x") {
		t.Errorf("top row = %q, want level 8", screen.Row(levelY(7)))
	}
	if !strings.Contains(screen.Row(levelY(0)), "[SAFE]") {
		t.Errorf("level 1 row = %q, want the revealed pick", screen.Row(levelY(0)))
	}
	if row := screen.Row(levelY(1)); !strings.Contains(row, "> Level 2") || !strings.Contains(row, "> ?? <") {
		t.Errorf("level 2 row = %q, want the current level with the cursor", row)
	}
	if !strings.Contains(screen.String(), "cash out 12 coins") {
		t.Error("status line should offer the cash out")
	}
}

func TestRenderNoticeBox(t *testing.T) {
	g, _ := newTestGame(t)
	g.Engine().ResetBalance()

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Balance reset to") || !strings.Contains(out, "100 coins.") {
		t.Errorf("notice not rendered:\n%s", out)
	}
	if !strings.Contains(out, "┌") {
		t.Error("notice should be drawn inside a box")
	}
}

func TestRenderRevealAfterDeath(t *testing.T) {
	g, layouts := newTestGame(t)
	press(g, 0, core.ActionConfirm)

	moveTo(g, layouts[0].Positions()[0])
	press(g, 0, core.ActionConfirm)
	press(g, 5*time.Second)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if strings.Contains(out, "??") {
		t.Error("every tile should be revealed after death")
	}
	if !strings.Contains(out, g.Engine().Snapshot().RoundID) {
		t.Error("finished game should show its full round ID")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g, _ := newTestGame(t)
	screen := core.NewScreen(40, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Errorf("small screen output:\n%s", screen.String())
	}
}

func TestFormatCoins(t *testing.T) {
	tests := map[int]string{
		0:     "0",
		100:   "100",
		1000:  "1,000",
		89690: "89,690",
	}
	for n, want := range tests {
		if got := FormatCoins(n); got != want {
			t.Errorf("FormatCoins(%d) = %q, want %q", n, got, want)
		}
	}
}
