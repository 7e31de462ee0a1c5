package safeordead

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/safe-or-dead/internal/core"
	"github.com/vovakirdan/safe-or-dead/internal/engine"
	"github.com/vovakirdan/safe-or-dead/internal/round"
)

// Layout constants
const (
	minWidth    = 60
	minHeight   = 23
	tileWidth   = 6
	tileGap     = 2
	labelWidth  = 18
	towerTop    = 4
	levelStride = 2
)

var printer = message.NewPrinter(language.English)

// FormatCoins renders an amount with thousands separators, e.g. "89,690".
func FormatCoins(n int) string {
	return printer.Sprintf("%d", n)
}

// Render draws the session into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() < minWidth || dst.Height() < minHeight {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", minWidth, minHeight), core.ColorGray)
		return
	}

	s := g.eng.Snapshot()
	ctl := ControlsFor(s)

	dst.DrawTextCentered(0, "S A F E   O R   D E A D", core.ColorBrightWhite)
	g.renderHeader(dst, s)
	g.renderBet(dst, s, ctl)
	g.renderTower(dst, s, ctl)
	g.renderStatus(dst, s)
	renderNotices(dst, s.Notices)
}

func (g *Game) renderHeader(dst *core.Screen, s engine.Snapshot) {
	balance := "Balance: " + FormatCoins(s.Balance) + " coins"
	winnings := "Winnings: " + FormatCoins(s.Winnings) + " coins"

	left := dst.Width()/4 - utf8.RuneCountInString(balance)/2
	right := dst.Width()*3/4 - utf8.RuneCountInString(winnings)/2
	dst.DrawTextColor(core.Max(left, 0), 1, balance, core.ColorYellow)
	dst.DrawTextColor(right, 1, winnings, core.ColorGreen)
}

func (g *Game) renderBet(dst *core.Screen, s engine.Snapshot, ctl Controls) {
	var line string
	color := core.ColorWhite
	if ctl.BetEntry {
		line = fmt.Sprintf("Bet: [%-4s_]  max %s", g.betText, FormatCoins(g.maxBet))
	} else {
		line = fmt.Sprintf("Bet: %s coins", FormatCoins(s.Bet))
		color = core.ColorGray
	}
	dst.DrawTextCentered(2, line, color)
}

// towerX returns the column of the first character of a level row.
func towerX(width int) int {
	rowW := labelWidth + round.TilesPerLevel*tileWidth + (round.TilesPerLevel-1)*tileGap
	return core.Max((width-rowW)/2, 0)
}

// levelY returns the screen row of a 0-based level; level 8 is on top.
func levelY(level int) int {
	return towerTop + (round.Levels-1-level)*levelStride
}

func (g *Game) renderTower(dst *core.Screen, s engine.Snapshot, ctl Controls) {
	table := g.eng.Table()
	x0 := towerX(dst.Width())

	for level := 0; level < round.Levels; level++ {
		y := levelY(level)
		current := s.State == engine.Active && level == s.Level-1

		labelColor := core.ColorGray
		switch {
		case current:
			labelColor = core.ColorBrightYellow
		case s.State == engine.Active && level < s.Level-1:
			labelColor = core.ColorGreen
		}
		marker := "  "
		if current {
			marker = "> "
		}
		label := fmt.Sprintf("%sLevel %d %6.2fx", marker, level+1, table.MultiplierFor(level+1))
		dst.DrawTextColor(x0, y, label, labelColor)

		for pos := 0; pos < round.TilesPerLevel; pos++ {
			x := x0 + labelWidth + pos*(tileWidth+tileGap)
			text, color := tileLook(s.Tiles[level][pos], level == s.InteractiveLevel)
			if ctl.Pick && level == s.InteractiveLevel && pos == g.cursor {
				text = ">" + text[1:tileWidth-1] + "<"
				color = core.ColorBrightYellow
			}
			dst.DrawTextColor(x, y, text, color)
		}
	}
}

func tileLook(t engine.TileState, interactive bool) (string, core.Color) {
	switch t {
	case engine.TileSafe:
		return "[SAFE]", core.ColorBrightGreen
	case engine.TileDead:
		return "[DEAD]", core.ColorBrightRed
	}
	if interactive {
		return "[ ?? ]", core.ColorWhite
	}
	return "[ ?? ]", core.ColorGray
}

func (g *Game) renderStatus(dst *core.Screen, s engine.Snapshot) {
	y := levelY(0) + levelStride
	dst.DrawHLine(0, y, dst.Width(), '─', core.ColorGray)

	var msg string
	color := core.ColorWhite
	switch {
	case s.State == engine.Inactive:
		msg = "Place your bet and press Enter to start"
	case s.Pending:
		msg = "Revealing..."
		color = core.ColorGray
	case s.State == engine.Active && s.CashOutEnabled:
		msg = fmt.Sprintf("Level %d: pick a tile or cash out %s coins", s.Level, FormatCoins(s.Winnings))
	case s.State == engine.Active:
		msg = fmt.Sprintf("Level %d: pick a tile", s.Level)
	default:
		msg = "Game over"
		color = core.ColorOrange
	}
	dst.DrawTextCentered(y+1, msg, color)

	if s.RoundID == "" {
		return
	}
	proof := "round " + shortHash(s.RoundID) + "  commit " + shortHash(s.Commitment)
	if s.Reveal != nil {
		// Full ID so it can be passed to the verify command.
		proof = "round " + s.RoundID + "  salt " + shortHash(s.Reveal.Salt)
	}
	dst.DrawTextCentered(y+2, proof, core.ColorGray)
}

func shortHash(s string) string {
	if len(s) <= 8 {
		return s
	}
	return s[:8]
}

var noticeColors = map[engine.NoticeKind]core.Color{
	engine.NoticeBetError:     core.ColorRed,
	engine.NoticeDeath:        core.ColorBrightRed,
	engine.NoticeCashOut:      core.ColorBrightGreen,
	engine.NoticeJackpot:      core.ColorBrightYellow,
	engine.NoticeBalanceReset: core.ColorCyan,
}

// renderNotices draws visible notices, oldest first, in a box centered on
// the tower.
func renderNotices(dst *core.Screen, notices []engine.Notice) {
	if len(notices) == 0 {
		return
	}

	type line struct {
		text  string
		color core.Color
	}
	var lines []line
	width := 0
	for i, n := range notices {
		if i > 0 {
			lines = append(lines, line{})
		}
		for _, text := range strings.Split(n.Text, "\n") {
			lines = append(lines, line{text: text, color: noticeColors[n.Kind]})
			width = core.Max(width, utf8.RuneCountInString(text))
		}
	}

	box := core.NewRect(0, towerTop, dst.Width(), round.Levels*levelStride).Centered(width+6, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, l := range lines {
		x := box.X + (box.W-utf8.RuneCountInString(l.text))/2
		dst.DrawTextColor(x, box.Y+1+i, l.text, l.color)
	}
}
