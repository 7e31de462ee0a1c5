package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone         Action = iota
	ActionLeft                // A, Left arrow - move the tile cursor
	ActionRight               // D, Right arrow - move the tile cursor
	ActionConfirm             // Enter, Space - start a game or pick the tile under the cursor
	ActionCashOut             // C - bank winnings
	ActionRestart             // R - back to betting after game over
	ActionResetBalance        // X - reset balance
	ActionBackspace           // Backspace - edit the bet
	ActionQuit                // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionCashOut:
		return "CashOut"
	case ActionRestart:
		return "Restart"
	case ActionResetBalance:
		return "ResetBalance"
	case ActionBackspace:
		return "Backspace"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input collected during one frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Text holds printable runes typed this frame, in order.
	Text []rune
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Type appends typed runes to the frame.
func (f *InputFrame) Type(runes ...rune) {
	f.Text = append(f.Text, runes...)
}

// Empty reports whether nothing was pressed this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Text) == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Text = f.Text[:0]
}
