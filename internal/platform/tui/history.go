package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/safe-or-dead/internal/games/safeordead"
	"github.com/vovakirdan/safe-or-dead/internal/storage"
)

// History layout constants
const (
	maxRounds     = 200 // Max rounds to load
	historyChrome = 10  // Rows used by title, stats, borders and help
)

// HistoryStore is the part of the round store the history screen reads.
type HistoryStore interface {
	RecentRounds(limit int) ([]storage.RoundRecord, error)
	Stats() (storage.Stats, error)
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Top, k.Bottom},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "newest"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "oldest"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the round history screen.
type HistoryModel struct {
	store    HistoryStore
	rounds   []storage.RoundRecord
	stats    storage.Stats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history model and loads the rounds.
func NewHistoryModel(store HistoryStore, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Round", Width: 8},
		{Title: "Outcome", Width: 8},
		{Title: "Bet", Width: 6},
		{Title: "Levels", Width: 6},
		{Title: "Payout", Width: 8},
		{Title: "Net", Width: 8},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-historyChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads rounds and stats from the store.
func (m *HistoryModel) load() {
	m.rounds, m.stats, m.loadErr = nil, storage.Stats{}, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	rounds, err := m.store.RecentRounds(maxRounds)
	if err != nil {
		m.loadErr = err
		m.updateTableRows()
		return
	}
	stats, err := m.store.Stats()
	if err != nil {
		m.loadErr = err
	}
	m.rounds = rounds
	m.stats = stats
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded rounds.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		rows[i] = table.Row{
			shortID(r.RoundID),
			string(r.Outcome),
			safeordead.FormatCoins(r.Bet),
			fmt.Sprintf("%d/8", r.LevelsCleared),
			safeordead.FormatCoins(r.Payout),
			signed(r.Net()),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func signed(n int) string {
	if n > 0 {
		return "+" + safeordead.FormatCoins(n)
	}
	return safeordead.FormatCoins(n)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.table.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling is handled by the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("ROUND HISTORY"), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderStats(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderStats renders the aggregate line above the table.
func (m HistoryModel) renderStats() string {
	st := m.stats
	net := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	if st.Net() < 0 {
		net = net.Foreground(lipgloss.Color("9"))
	}
	return fmt.Sprintf("%d rounds  %d dead  %d cashed out  %d jackpots  best %s  net %s",
		st.Rounds, st.Deaths, st.CashOuts, st.Jackpots,
		safeordead.FormatCoins(st.BestPayout), net.Render(signed(st.Net())))
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Cannot read history:\n" + m.loadErr.Error())
	case len(m.rounds) == 0:
		return emptyStyle.Render("No rounds recorded yet.\nPlay a game to start your history!")
	}
	return m.table.View()
}

// centerText pads text on the left so it is centered in width columns.
// Multi-line text is centered line by line.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		w := lipgloss.Width(line)
		if w < width {
			lines[i] = strings.Repeat(" ", (width-w)/2) + line
		}
	}
	return strings.Join(lines, "\n")
}

// RunHistory runs the history screen until the user quits.
func RunHistory(store HistoryStore, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
