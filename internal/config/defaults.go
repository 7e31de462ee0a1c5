package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/safe-or-dead/internal/round"
)

//go:embed defaults/safeordead.yaml
var defaultYAML []byte

// Default returns the built-in rules.
func Default() Config {
	cfg := Config{
		Balance: BalanceConfig{
			Starting: 100,
			ResetTo:  100,
		},
		Bet: BetConfig{
			Default: 10,
			Max:     1000,
		},
		Timing: TimingConfig{
			SafeReveal:    40 * time.Millisecond,
			DeadReveal:    200 * time.Millisecond,
			DeathSequence: 1600 * time.Millisecond,
			Notice:        1400 * time.Millisecond,
		},
	}
	for _, lvl := range round.DefaultTable() {
		cfg.Levels = append(cfg.Levels, LevelConfig{Hazards: lvl.Hazards, Multiplier: lvl.Multiplier})
	}
	return cfg
}

// DefaultYAML returns the embedded default rules file.
func DefaultYAML() []byte {
	return defaultYAML
}
