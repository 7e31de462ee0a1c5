package engine

import (
	"time"

	"github.com/vovakirdan/safe-or-dead/internal/round"
)

// State is the lifecycle state of a session.
type State int

const (
	Inactive State = iota
	Active
	GameOver
)

// String returns the state name as shown to players.
func (s State) String() string {
	switch s {
	case Inactive:
		return "INACTIVE"
	case Active:
		return "ACTIVE"
	case GameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// TileState is what a player currently sees on one tile.
type TileState int

const (
	TileHidden TileState = iota
	TileSafe
	TileDead
)

func (t TileState) String() string {
	switch t {
	case TileSafe:
		return "safe"
	case TileDead:
		return "dead"
	default:
		return "hidden"
	}
}

// Board holds the visible state of every tile, index 0 being level 1.
type Board [round.Levels][round.TilesPerLevel]TileState

// NoticeKind classifies a transient message.
type NoticeKind string

const (
	NoticeBetError     NoticeKind = "bet-error"
	NoticeDeath        NoticeKind = "death"
	NoticeCashOut      NoticeKind = "cash-out"
	NoticeJackpot      NoticeKind = "jackpot"
	NoticeBalanceReset NoticeKind = "balance-reset"
)

// Notice is a message shown to the player until it is dismissed by the
// engine clock.
type Notice struct {
	ID       int
	Kind     NoticeKind
	Text     string        // May span several lines
	PostedAt time.Duration // Engine time
}

// Reveal exposes the secret part of a finished game so the player can check
// it against the commitment published at start.
type Reveal struct {
	Salt    string
	Layouts round.Layouts
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Balance  int
	Bet      int
	Level    int // 1-based level being attempted
	Winnings int
	State    State
	Tiles    Board

	CashOutEnabled   bool
	InteractiveLevel int  // 0-based level accepting picks, -1 for none
	Pending          bool // A pick is waiting for its delayed resolution

	Notices    []Notice
	RoundID    string
	Commitment string
	Reveal     *Reveal // Set only in GameOver
}

// Outcome is how a game ended.
type Outcome string

const (
	OutcomeDead    Outcome = "dead"
	OutcomeCashOut Outcome = "cashout"
	OutcomeJackpot Outcome = "jackpot"
)

// Result describes a finished game.
type Result struct {
	RoundID       string
	Outcome       Outcome
	Bet           int
	LevelsCleared int
	Payout        int
	BalanceAfter  int
	Commitment    string
	Salt          string
	Layouts       round.Layouts
}

// ResultSaver receives every finished game.
type ResultSaver interface {
	SaveResult(r Result) error
}
