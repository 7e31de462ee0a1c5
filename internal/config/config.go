// Package config provides YAML-based rules loading for Safe or Dead and the
// environment-driven settings of the SSH server.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/safe-or-dead/internal/round"
)

// Config contains all rules for one Safe or Dead session.
type Config struct {
	Balance BalanceConfig `yaml:"balance"`
	Bet     BetConfig     `yaml:"bet"`
	Timing  TimingConfig  `yaml:"timing"`
	Levels  []LevelConfig `yaml:"levels"`
}

// BalanceConfig defines the coin balance a session starts with.
type BalanceConfig struct {
	Starting int `yaml:"starting"`
	ResetTo  int `yaml:"reset_to"` // Balance after a reset
}

// BetConfig defines bet limits.
type BetConfig struct {
	Default int `yaml:"default"` // Used when the bet field is left empty
	Max     int `yaml:"max"`
}

// TimingConfig defines the delays of staged reveals and notices.
type TimingConfig struct {
	SafeReveal    time.Duration `yaml:"safe_reveal"`    // Pick to level-complete
	DeadReveal    time.Duration `yaml:"dead_reveal"`    // Pick to death notice
	DeathSequence time.Duration `yaml:"death_sequence"` // Death notice to reveal-all
	Notice        time.Duration `yaml:"notice"`         // Auto-dismiss of notices
}

// LevelConfig defines one level of the tower.
type LevelConfig struct {
	Hazards    int     `yaml:"hazards"`
	Multiplier float64 `yaml:"multiplier"`
}

// Table converts the configured levels into a round table.
func (c Config) Table() round.Table {
	t := make(round.Table, len(c.Levels))
	for i, lvl := range c.Levels {
		t[i] = round.LevelConfig{Hazards: lvl.Hazards, Multiplier: lvl.Multiplier}
	}
	return t
}

// Validate checks the rules for internal consistency.
func (c Config) Validate() error {
	if c.Balance.Starting < 0 {
		return fmt.Errorf("config: balance.starting must be >= 0, got %d", c.Balance.Starting)
	}
	if c.Balance.ResetTo < 0 {
		return fmt.Errorf("config: balance.reset_to must be >= 0, got %d", c.Balance.ResetTo)
	}
	if c.Bet.Max <= 0 {
		return fmt.Errorf("config: bet.max must be > 0, got %d", c.Bet.Max)
	}
	if c.Bet.Default <= 0 || c.Bet.Default > c.Bet.Max {
		return fmt.Errorf("config: bet.default must be in 1..%d, got %d", c.Bet.Max, c.Bet.Default)
	}

	timings := map[string]time.Duration{
		"timing.safe_reveal":    c.Timing.SafeReveal,
		"timing.dead_reveal":    c.Timing.DeadReveal,
		"timing.death_sequence": c.Timing.DeathSequence,
		"timing.notice":         c.Timing.Notice,
	}
	for name, d := range timings {
		if d <= 0 {
			return fmt.Errorf("config: %s must be > 0, got %s", name, d)
		}
	}

	if err := c.Table().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
