package rules

// DynamicsStats is a read-only snapshot of how much movement a table can
// produce without running it: write churn, turning, state flow, and the
// colors that can never change ("absorbing" colors).
type DynamicsStats struct {
	Cells       int     // total (state, color) cells
	WriteChange float64 // fraction of cells whose write differs from the read color
	Turning     float64 // fraction of cells with a turn other than NoTurn
	SelfState   float64 // fraction of cells whose next state equals the current state
	Absorbing   []uint8 // colors no state ever rewrites
}

// Analyze derives DynamicsStats from a table.
func Analyze(t Table) DynamicsStats {
	states := t.States()
	colors := t.Colors()
	stats := DynamicsStats{Cells: states * colors}
	if stats.Cells == 0 {
		return stats
	}

	var writeChange, turning, selfState int
	for s := 0; s < states; s++ {
		for c := 0; c < colors; c++ {
			r := t.At(s, c)
			if int(r.Write) != c {
				writeChange++
			}
			if r.Turn != NoTurn {
				turning++
			}
			if int(r.NextState) == s {
				selfState++
			}
		}
	}

	for c := 0; c < colors; c++ {
		absorbing := true
		for s := 0; s < states; s++ {
			if int(t.At(s, c).Write) != c {
				absorbing = false
				break
			}
		}
		if absorbing {
			stats.Absorbing = append(stats.Absorbing, uint8(c))
		}
	}

	n := float64(stats.Cells)
	stats.WriteChange = float64(writeChange) / n
	stats.Turning = float64(turning) / n
	stats.SelfState = float64(selfState) / n
	return stats
}

// PaintingStates counts the states whose color-0 rule writes a non-zero
// color. A blank grid can only start painting through these states.
func PaintingStates(t Table) int {
	if t.Colors() == 0 {
		return 0
	}
	n := 0
	for s := 0; s < t.States(); s++ {
		if t.At(s, 0).Write != 0 {
			n++
		}
	}
	return n
}

// TurnVariety counts the distinct turn values used anywhere in the table.
func TurnVariety(t Table) int {
	var seen [NumTurns]bool
	for s := 0; s < t.States(); s++ {
		for c := 0; c < t.Colors(); c++ {
			seen[t.At(s, c).Turn] = true
		}
	}
	n := 0
	for _, ok := range seen {
		if ok {
			n++
		}
	}
	return n
}

// WriteVariety counts the distinct write values used anywhere in the table.
func WriteVariety(t Table) int {
	seen := make(map[uint8]bool)
	for s := 0; s < t.States(); s++ {
		for c := 0; c < t.Colors(); c++ {
			seen[t.At(s, c).Write] = true
		}
	}
	return len(seen)
}
