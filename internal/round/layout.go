package round

import (
	"math/rand"
	"strconv"
	"strings"
)

// Layout marks which tiles of one level row are dead.
type Layout [TilesPerLevel]bool

// Contains reports whether position is a dead tile.
// Out-of-range positions are never dead.
func (l Layout) Contains(position int) bool {
	if position < 0 || position >= TilesPerLevel {
		return false
	}
	return l[position]
}

// Positions returns the dead tile positions in ascending order.
func (l Layout) Positions() []int {
	positions := make([]int, 0, TilesPerLevel)
	for pos, dead := range l {
		if dead {
			positions = append(positions, pos)
		}
	}
	return positions
}

// Count returns the number of dead tiles.
func (l Layout) Count() int {
	n := 0
	for _, dead := range l {
		if dead {
			n++
		}
	}
	return n
}

// String renders the layout as comma-separated positions, e.g. "1,3".
func (l Layout) String() string {
	parts := make([]string, 0, TilesPerLevel)
	for _, pos := range l.Positions() {
		parts = append(parts, strconv.Itoa(pos))
	}
	return strings.Join(parts, ",")
}

// Layouts holds one layout per level, index 0 being level 1.
type Layouts [Levels]Layout

// Generator produces hazard layouts from a seeded random source.
type Generator struct {
	table Table
	rng   *rand.Rand
}

// NewGenerator creates a generator over the given table.
// Panics if the table is invalid; tables are validated when config loads.
func NewGenerator(table Table, seed int64) *Generator {
	if err := table.Validate(); err != nil {
		panic(err)
	}
	return &Generator{
		table: table,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Table returns the level table the generator deals from.
func (g *Generator) Table() Table {
	return g.table
}

// GenerateLayout draws a uniformly random set of dead tiles for a 0-based
// level index by shuffling all positions and keeping the first N.
// Panics if levelIndex is outside 0..Levels-1.
func (g *Generator) GenerateLayout(levelIndex int) Layout {
	hazards := g.table.Hazards(levelIndex)

	var l Layout
	for _, pos := range g.rng.Perm(TilesPerLevel)[:hazards] {
		l[pos] = true
	}
	return l
}

// Deal generates an independent layout for every level.
func (g *Generator) Deal() Layouts {
	var ls Layouts
	for i := range ls {
		ls[i] = g.GenerateLayout(i)
	}
	return ls
}

// Encode returns the canonical text form "1:p,p|2:p|..." used for hashing
// and storage.
func (ls Layouts) Encode() string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = strconv.Itoa(i+1) + ":" + l.String()
	}
	return strings.Join(parts, "|")
}

// DecodeLayouts parses the output of Layouts.Encode.
func DecodeLayouts(s string) (Layouts, bool) {
	var ls Layouts

	parts := strings.Split(s, "|")
	if len(parts) != Levels {
		return ls, false
	}
	for i, part := range parts {
		prefix := strconv.Itoa(i+1) + ":"
		if !strings.HasPrefix(part, prefix) {
			return ls, false
		}
		body := strings.TrimPrefix(part, prefix)
		if body == "" {
			continue
		}
		for _, field := range strings.Split(body, ",") {
			pos, err := strconv.Atoi(field)
			if err != nil || pos < 0 || pos >= TilesPerLevel {
				return ls, false
			}
			ls[i][pos] = true
		}
	}
	return ls, true
}
