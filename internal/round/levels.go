// Package round generates the hazard layouts for a Safe or Dead game and
// holds the fixed level table that drives payouts.
package round

import (
	"fmt"
)

const (
	// Levels is the number of levels in one game.
	Levels = 8

	// TilesPerLevel is the number of tiles in each level row.
	TilesPerLevel = 5
)

// LevelConfig defines one level of the tower.
type LevelConfig struct {
	Hazards    int     // Number of dead tiles in the row
	Multiplier float64 // Cumulative payout multiplier once this level is cleared
}

// Table is the ordered list of levels, index 0 being level 1.
type Table []LevelConfig

// defaultTable is the classic Safe or Dead progression.
var defaultTable = Table{
	{Hazards: 1, Multiplier: 1.23},
	{Hazards: 1, Multiplier: 2.78},
	{Hazards: 2, Multiplier: 3.01},
	{Hazards: 2, Multiplier: 10.55},
	{Hazards: 2, Multiplier: 26.83},
	{Hazards: 3, Multiplier: 42.16},
	{Hazards: 3, Multiplier: 69.69},
	{Hazards: 4, Multiplier: 89.69},
}

// DefaultTable returns a copy of the classic level table.
func DefaultTable() Table {
	t := make(Table, len(defaultTable))
	copy(t, defaultTable)
	return t
}

// Validate checks that the table has one entry per level, that every level
// keeps at least one safe tile and that every multiplier is positive.
func (t Table) Validate() error {
	if len(t) != Levels {
		return fmt.Errorf("round: level table has %d entries, want %d", len(t), Levels)
	}
	for i, lvl := range t {
		if lvl.Hazards < 1 || lvl.Hazards >= TilesPerLevel {
			return fmt.Errorf("round: level %d hazards = %d, want 1..%d", i+1, lvl.Hazards, TilesPerLevel-1)
		}
		if lvl.Multiplier <= 0 {
			return fmt.Errorf("round: level %d multiplier = %v, want > 0", i+1, lvl.Multiplier)
		}
	}
	return nil
}

// Hazards returns the hazard count for a 0-based level index.
// Panics if the index is outside 0..Levels-1.
func (t Table) Hazards(levelIndex int) int {
	mustLevelIndex(levelIndex)
	return t[levelIndex].Hazards
}

// MultiplierFor returns the multiplier for a 1-based level.
// Panics if level is outside 1..Levels.
func (t Table) MultiplierFor(level int) float64 {
	mustLevelIndex(level - 1)
	return t[level-1].Multiplier
}

// SurvivalOdds returns the chance of picking a safe tile on a 0-based level.
func (t Table) SurvivalOdds(levelIndex int) float64 {
	mustLevelIndex(levelIndex)
	return float64(TilesPerLevel-t[levelIndex].Hazards) / TilesPerLevel
}

// CumulativeOdds returns the chance of clearing levels 1 through level
// (1-based) in a row.
func (t Table) CumulativeOdds(level int) float64 {
	mustLevelIndex(level - 1)
	odds := 1.0
	for i := 0; i < level; i++ {
		odds *= t.SurvivalOdds(i)
	}
	return odds
}

// MultiplierFor looks up the classic table for a 1-based level.
func MultiplierFor(level int) float64 {
	return defaultTable.MultiplierFor(level)
}

func mustLevelIndex(levelIndex int) {
	if levelIndex < 0 || levelIndex >= Levels {
		panic(fmt.Sprintf("round: level index %d out of range 0..%d", levelIndex, Levels-1))
	}
}
