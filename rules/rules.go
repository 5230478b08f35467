// Package rules defines the turmite rule table data model and its
// structural analysis helpers.
package rules

import (
	"encoding/binary"
	"hash/fnv"
)

// Turn is the heading change an agent applies after writing a cell.
type Turn uint8

const (
	Left Turn = iota
	Right
	NoTurn
	UTurn

	// NumTurns is the number of distinct turn values.
	NumTurns = 4
)

// String returns a short human-readable turn name.
func (t Turn) String() string {
	switch t {
	case Left:
		return "L"
	case Right:
		return "R"
	case NoTurn:
		return "N"
	case UTurn:
		return "U"
	}
	return "?"
}

// Rule is the action looked up for one (state, color) cell: the color to
// write, the turn to apply, and the next internal state.
type Rule struct {
	Write     uint8
	Turn      Turn
	NextState uint8
}

// Table is a complete (state x color) -> Rule lookup table.
// Every state row has exactly one rule per color, so the table is always
// rectangular by construction; Write and NextState closure is checked by
// the validator, not enforced here.
type Table struct {
	cells [][]Rule // [state][color]
}

// New allocates a zeroed table with the given dimensions.
// Dimensions below 1 are clamped to 1.
func New(states, colors int) Table {
	if states < 1 {
		states = 1
	}
	if colors < 1 {
		colors = 1
	}
	cells := make([][]Rule, states)
	for s := range cells {
		cells[s] = make([]Rule, colors)
	}
	return Table{cells: cells}
}

// States returns the number of internal states.
func (t Table) States() int { return len(t.cells) }

// Colors returns the number of colors shared by every state row.
func (t Table) Colors() int {
	if len(t.cells) == 0 {
		return 0
	}
	return len(t.cells[0])
}

// At returns the rule for (state, color).
func (t Table) At(state, color int) Rule { return t.cells[state][color] }

// Set replaces the rule for (state, color).
func (t Table) Set(state, color int, r Rule) { t.cells[state][color] = r }

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := make([][]Rule, len(t.cells))
	for s, row := range t.cells {
		out[s] = make([]Rule, len(row))
		copy(out[s], row)
	}
	return Table{cells: out}
}

// AddState appends a state row. The row length must match Colors.
func (t *Table) AddState(row []Rule) {
	if len(t.cells) > 0 && len(row) != t.Colors() {
		panic("rules: AddState row length does not match table colors")
	}
	r := make([]Rule, len(row))
	copy(r, row)
	t.cells = append(t.cells, r)
}

// AddColor appends one rule per state for a new color. The column length
// must match States.
func (t *Table) AddColor(col []Rule) {
	if len(col) != t.States() {
		panic("rules: AddColor column length does not match table states")
	}
	for s := range t.cells {
		t.cells[s] = append(t.cells[s], col[s])
	}
}

// Equal reports whether two tables have identical dimensions and rules.
func (t Table) Equal(o Table) bool {
	if t.States() != o.States() || t.Colors() != o.Colors() {
		return false
	}
	for s, row := range t.cells {
		for c, r := range row {
			if r != o.cells[s][c] {
				return false
			}
		}
	}
	return true
}

// Fingerprint returns a stable 64-bit hash of the table contents.
// Identical tables always hash identically across processes.
func (t Table) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [4]byte
	binary.LittleEndian.PutUint16(buf[0:2], uint16(t.States()))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(t.Colors()))
	h.Write(buf[:])
	for _, row := range t.cells {
		for _, r := range row {
			h.Write([]byte{r.Write, byte(r.Turn), r.NextState})
		}
	}
	return h.Sum64()
}

// Closed reports whether every Write references a color inside the table
// and every NextState references a state inside the table.
func (t Table) Closed() bool {
	states := t.States()
	colors := t.Colors()
	for _, row := range t.cells {
		for _, r := range row {
			if int(r.Write) >= colors || int(r.NextState) >= states {
				return false
			}
		}
	}
	return true
}
