package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/safe-or-dead/internal/core"
	"github.com/vovakirdan/safe-or-dead/internal/games/safeordead"
)

// KeyMap defines the key bindings for a Safe or Dead session.
// It also drives the help bar.
type KeyMap struct {
	Left         key.Binding
	Right        key.Binding
	Confirm      key.Binding
	CashOut      key.Binding
	Restart      key.Binding
	ResetBalance key.Binding
	Backspace    key.Binding
	Screenshot   key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start/pick"),
		),
		CashOut: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cash out"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		ResetBalance: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset balance"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("0-9/⌫", "edit bet"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Backspace, k.Left, k.Right, k.Confirm, k.CashOut, k.Restart, k.ResetBalance, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Backspace, k.Confirm},
		{k.Left, k.Right, k.CashOut},
		{k.Restart, k.ResetBalance},
		{k.Screenshot, k.Quit},
	}
}

// ForControls returns a copy with only the bindings usable right now
// enabled, so the help bar mirrors the game's button states.
func (k KeyMap) ForControls(ctl safeordead.Controls) KeyMap {
	k.Backspace.SetEnabled(ctl.BetEntry)
	k.Left.SetEnabled(ctl.Pick)
	k.Right.SetEnabled(ctl.Pick)
	k.Confirm.SetEnabled(ctl.Start || ctl.Pick)
	k.CashOut.SetEnabled(ctl.CashOut)
	k.Restart.SetEnabled(ctl.Restart)
	k.ResetBalance.SetEnabled(ctl.ResetBalance)

	switch {
	case ctl.Start:
		k.Confirm.SetHelp("enter", "start")
	case ctl.Pick:
		k.Confirm.SetHelp("enter", "pick")
	}
	return k
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper over the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, k.CashOut):
		return core.ActionCashOut, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.ResetBalance):
		return core.ActionResetBalance, false
	case key.Matches(msg, k.Backspace):
		return core.ActionBackspace, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message. Unbound
// printable keys are typed into the frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	switch {
	case action != core.ActionNone:
		frame.Set(action)
	case msg.Type == tea.KeyRunes:
		frame.Type(msg.Runes...)
	}
	return isQuit
}
