// Package engine implements the Safe or Dead session: the state machine that
// takes bets, resolves tile picks after staged delays, pays out and reports
// finished games.
//
// An Engine is driven by a single caller. Commands change state immediately;
// delayed consequences run only when the caller advances the engine clock
// with Advance. An Engine is not safe for concurrent use.
package engine

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/safe-or-dead/internal/config"
	"github.com/vovakirdan/safe-or-dead/internal/round"
)

const (
	textEnterValidBet  = "Enter a valid bet!"
	textBetNotPositive = "Invalid Bet!\nMust be greater than 0"
	textInsufficient   = "Insufficient Balance!"
	textDeath          = "Game Over!\nYou hit a DEAD tile."
)

// Engine owns one player's session.
type Engine struct {
	cfg    config.Config
	table  round.Table
	gen    *round.Generator
	seed   int64
	logger *log.Logger
	savers []ResultSaver
	clock  scheduler
	newID  func() string

	balance  int
	bet      int
	level    int
	winnings int
	state    State
	pending  bool
	tiles    Board

	round      uint64 // Incremented on every successful start
	dealt      bool   // layouts, salt and commitment belong to the current game
	layouts    round.Layouts
	roundID    string
	salt       string
	commitment string

	notices   []Notice
	noticeSeq int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for game events. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSeed fixes the layout RNG seed. Zero means time based.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithObserver registers a saver that receives every finished game.
func WithObserver(s ResultSaver) Option {
	return func(e *Engine) {
		if s != nil {
			e.savers = append(e.savers, s)
		}
	}
}

// New creates a session with the configured starting balance.
// cfg must be valid; see config.Config.Validate.
func New(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		table:   cfg.Table(),
		logger:  log.New(io.Discard),
		newID:   uuid.NewString,
		balance: cfg.Balance.Starting,
		level:   1,
		state:   Inactive,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.seed == 0 {
		e.seed = time.Now().UnixNano()
	}
	e.gen = round.NewGenerator(e.table, e.seed)
	return e
}

// Table returns the level table in use.
func (e *Engine) Table() round.Table {
	return e.table
}

// Config returns the rules the engine was built with.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Now returns the engine clock.
func (e *Engine) Now() time.Duration {
	return e.clock.now
}

// Advance moves the engine clock forward, running delayed reveals and
// notice dismissals that fall due.
func (e *Engine) Advance(d time.Duration) {
	e.clock.advance(d, e.run)
}

// StartGame places a bet and deals a new game. Empty text bets the default.
// While a game is active it does nothing and returns nil.
func (e *Engine) StartGame(text string) error {
	if e.state == Active {
		e.logger.Debug("start ignored, game in progress", "round", e.roundID, "level", e.level)
		return nil
	}

	bet, notice, err := e.parseBet(text)
	if err != nil {
		e.logger.Debug("bet rejected", "input", text, "balance", e.balance, "err", err)
		e.post(NoticeBetError, notice)
		return err
	}

	e.round++
	e.balance -= bet
	e.bet = bet
	e.level = 1
	e.winnings = 0
	e.state = Active
	e.pending = false
	e.tiles = Board{}

	e.layouts = e.gen.Deal()
	e.roundID = e.newID()
	e.salt = e.newID()
	e.commitment = round.Commit(e.salt, e.layouts)
	e.dealt = true

	e.logger.Debug("game started", "round", e.roundID, "bet", bet, "balance", e.balance)
	return nil
}

// parseBet validates bet text, returning the bet or the error together with
// the notice text for the player.
func (e *Engine) parseBet(text string) (int, string, error) {
	text = strings.TrimSpace(text)

	bet := e.cfg.Bet.Default
	if text != "" {
		n, err := strconv.Atoi(text)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(text, "-") {
				return 0, e.tooHighText(), fmt.Errorf("%w: %s exceeds %d", ErrBetTooHigh, text, e.cfg.Bet.Max)
			}
			return 0, textEnterValidBet, fmt.Errorf("%w: %q: %w", ErrInvalidBet, text, err)
		}
		bet = n
	}

	switch {
	case bet <= 0:
		return 0, textBetNotPositive, fmt.Errorf("%w: %d is not greater than 0", ErrInvalidBet, bet)
	case bet > e.cfg.Bet.Max:
		return 0, e.tooHighText(), fmt.Errorf("%w: %d exceeds %d", ErrBetTooHigh, bet, e.cfg.Bet.Max)
	case bet > e.balance:
		return 0, textInsufficient, fmt.Errorf("%w: bet %d, balance %d", ErrInsufficientBalance, bet, e.balance)
	}
	return bet, "", nil
}

func (e *Engine) tooHighText() string {
	return fmt.Sprintf("Bet Too High!\nMaximum bet is %d coins", e.cfg.Bet.Max)
}

// SelectTile picks a tile on a 0-based level. Picks outside the active game,
// on any level but the current one, while a pick is pending, or out of range
// are ignored.
func (e *Engine) SelectTile(level, position int) {
	if e.state != Active || e.pending || level != e.level-1 {
		return
	}
	if position < 0 || position >= round.TilesPerLevel {
		return
	}

	e.pending = true
	t := task{round: e.round, level: e.level, position: position}

	if e.layouts[level].Contains(position) {
		e.tiles[level][position] = TileDead
		t.kind = taskDeadReveal
		e.clock.schedule(e.cfg.Timing.DeadReveal, t)
		e.logger.Debug("tile selected", "round", e.roundID, "level", e.level, "position", position, "outcome", TileDead)
		return
	}

	e.tiles[level][position] = TileSafe
	t.kind = taskSafeReveal
	e.clock.schedule(e.cfg.Timing.SafeReveal, t)
	e.logger.Debug("tile selected", "round", e.roundID, "level", e.level, "position", position, "outcome", TileSafe)
}

// run executes a task that fell due.
func (e *Engine) run(t task) {
	if t.kind == taskDismiss {
		e.dismiss(t.noticeID)
		return
	}

	if t.round != e.round || e.state != Active || t.level != e.level {
		e.logger.Debug("stale task dropped", "task", t.kind, "level", t.level, "position", t.position)
		return
	}

	switch t.kind {
	case taskSafeReveal:
		e.completeLevel()
	case taskDeadReveal:
		e.post(NoticeDeath, textDeath)
		e.clock.schedule(e.cfg.Timing.DeathSequence, task{
			kind:     taskDeathSequence,
			round:    t.round,
			level:    t.level,
			position: t.position,
		})
	case taskDeathSequence:
		e.die()
	}
}

func (e *Engine) completeLevel() {
	e.pending = false
	e.winnings = round.Payout(e.bet, e.table.MultiplierFor(e.level))
	e.logger.Debug("level cleared", "round", e.roundID, "level", e.level, "winnings", e.winnings)

	if e.level == round.Levels {
		e.jackpot()
		return
	}
	e.level++
}

func (e *Engine) jackpot() {
	payout := round.Payout(e.bet, e.table.MultiplierFor(round.Levels))
	e.balance += payout
	e.state = GameOver
	e.post(NoticeJackpot, fmt.Sprintf("JACKPOT!\nYou won %d coins!", payout))
	e.logger.Debug("jackpot", "round", e.roundID, "payout", payout, "balance", e.balance)
	e.finish(OutcomeJackpot, round.Levels, payout)
}

// die reveals the whole tower and ends the game.
func (e *Engine) die() {
	for i, layout := range e.layouts {
		for pos := range layout {
			if layout[pos] {
				e.tiles[i][pos] = TileDead
			} else {
				e.tiles[i][pos] = TileSafe
			}
		}
	}

	cleared := e.level - 1
	e.pending = false
	e.state = GameOver
	e.level = 1
	e.winnings = 0
	e.logger.Debug("death", "round", e.roundID, "levels_cleared", cleared, "balance", e.balance)
	e.finish(OutcomeDead, cleared, 0)
}

// CashOut banks the current winnings and ends the game. It is available once
// a level has been cleared and no pick is pending.
func (e *Engine) CashOut() (int, error) {
	if !e.cashOutEnabled() {
		return 0, ErrCashOutUnavailable
	}

	amount := e.winnings
	cleared := e.level - 1
	e.balance += amount
	e.tiles = Board{}
	e.state = GameOver
	e.post(NoticeCashOut, fmt.Sprintf("You won\n%d coins!", amount))
	e.logger.Debug("cash out", "round", e.roundID, "levels_cleared", cleared, "payout", amount, "balance", e.balance)
	e.finish(OutcomeCashOut, cleared, amount)
	return amount, nil
}

func (e *Engine) cashOutEnabled() bool {
	return e.state == Active && !e.pending && e.level >= 2
}

// Restart returns a finished game to Inactive, keeping the balance and
// discarding the dealt layouts.
func (e *Engine) Restart() error {
	if e.state != GameOver {
		return ErrRestartUnavailable
	}

	e.state = Inactive
	e.level = 1
	e.winnings = 0
	e.pending = false
	e.tiles = Board{}
	e.dealt = false
	e.layouts = round.Layouts{}
	e.roundID = ""
	e.salt = ""
	e.commitment = ""
	e.logger.Debug("restart", "balance", e.balance)
	return nil
}

// ResetBalance sets the balance to the configured reset value in any state.
// A bet already placed on an active game stays debited.
func (e *Engine) ResetBalance() {
	e.balance = e.cfg.Balance.ResetTo
	e.post(NoticeBalanceReset, fmt.Sprintf("Balance reset to\n%d coins.", e.balance))
	e.logger.Debug("balance reset", "balance", e.balance, "state", e.state)
}

// post publishes a notice and schedules its dismissal.
func (e *Engine) post(kind NoticeKind, text string) {
	e.noticeSeq++
	n := Notice{ID: e.noticeSeq, Kind: kind, Text: text, PostedAt: e.clock.now}
	e.notices = append(e.notices, n)
	e.clock.schedule(e.cfg.Timing.Notice, task{kind: taskDismiss, noticeID: n.ID})
}

func (e *Engine) dismiss(id int) {
	for i, n := range e.notices {
		if n.ID == id {
			e.notices = append(e.notices[:i], e.notices[i+1:]...)
			return
		}
	}
}

func (e *Engine) finish(outcome Outcome, cleared, payout int) {
	r := Result{
		RoundID:       e.roundID,
		Outcome:       outcome,
		Bet:           e.bet,
		LevelsCleared: cleared,
		Payout:        payout,
		BalanceAfter:  e.balance,
		Commitment:    e.commitment,
		Salt:          e.salt,
		Layouts:       e.layouts,
	}
	for _, s := range e.savers {
		if err := s.SaveResult(r); err != nil {
			e.logger.Warn("cannot save round", "round", r.RoundID, "err", err)
		}
	}
}

// Snapshot returns a copy of the session state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Balance:          e.balance,
		Bet:              e.bet,
		Level:            e.level,
		Winnings:         e.winnings,
		State:            e.state,
		Tiles:            e.tiles,
		CashOutEnabled:   e.cashOutEnabled(),
		InteractiveLevel: -1,
		Pending:          e.pending,
		Notices:          append([]Notice(nil), e.notices...),
	}
	if e.state == Active && !e.pending {
		s.InteractiveLevel = e.level - 1
	}
	if e.dealt {
		s.RoundID = e.roundID
		s.Commitment = e.commitment
		if e.state == GameOver {
			s.Reveal = &Reveal{Salt: e.salt, Layouts: e.layouts}
		}
	}
	return s
}
