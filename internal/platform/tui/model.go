package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/safe-or-dead/internal/core"
	"github.com/vovakirdan/safe-or-dead/internal/games/safeordead"
)

// helpHeight is the number of rows reserved below the game for the help bar.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model running one Safe or Dead session.
type Model struct {
	game       *safeordead.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	dt         time.Duration // Engine time per tick
	keys       KeyMap
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *safeordead.Game, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	keys := DefaultKeyMap()
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-helpHeight, 0)),
		config:     cfg,
		dt:         time.Second / time.Duration(cfg.TickRate),
		keys:       keys,
		keyMapper:  NewKeyMapper(keys),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Resize(m.screen.Width(), m.screen.Height())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Actions are collected into the
// frame and applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The session is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-helpHeight, 0))
	m.game.Resize(m.screen.Width(), m.screen.Height())
	m.help.Width = msg.Width
	return m, nil
}

// handleTick applies the frame's input and advances the engine clock by
// one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.game.Step(m.inputFrame, m.dt)
	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".safeordead", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	keys := m.keys.ForControls(m.game.Controls())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(keys))
}

// Game returns the session the model drives.
func (m Model) Game() *safeordead.Game {
	return m.game
}

// Run starts the Bubble Tea program for the given game.
func Run(game *safeordead.Game, cfg core.RuntimeConfig) error {
	model := NewModel(game, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
