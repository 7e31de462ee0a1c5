package engine

import "errors"

// Bet validation failures. The command that returns one leaves the session
// unchanged.
var (
	ErrInvalidBet          = errors.New("invalid bet")
	ErrBetTooHigh          = errors.New("bet too high")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Returned by commands that are not available in the current state.
var (
	ErrCashOutUnavailable = errors.New("cash out unavailable")
	ErrRestartUnavailable = errors.New("restart unavailable")
)
