package rules

// Preset is a named, hand-picked rule table used as a mutation seed.
type Preset struct {
	Name  string
	Table Table
}

// table builds a Table from a [state][color] literal.
func table(cells [][]Rule) Table {
	t := New(len(cells), len(cells[0]))
	for s, row := range cells {
		for c, r := range row {
			t.Set(s, c, r)
		}
	}
	return t
}

// Presets returns the built-in preset library. Each call returns fresh
// copies so callers can mutate them freely.
func Presets() []Preset {
	return []Preset{
		{
			// Langton's ant: the canonical two-color single-state turmite.
			Name: "langton",
			Table: table([][]Rule{
				{{Write: 1, Turn: Right, NextState: 0}, {Write: 0, Turn: Left, NextState: 0}},
			}),
		},
		{
			// Builds a square spiral before dissolving into chaos.
			Name: "spiral",
			Table: table([][]Rule{
				{{Write: 1, Turn: Left, NextState: 1}, {Write: 1, Turn: Right, NextState: 1}},
				{{Write: 0, Turn: Right, NextState: 0}, {Write: 0, Turn: Left, NextState: 0}},
			}),
		},
		{
			// Two-state highway builder with a short chaotic prelude.
			Name: "highway",
			Table: table([][]Rule{
				{{Write: 1, Turn: Right, NextState: 1}, {Write: 1, Turn: Right, NextState: 0}},
				{{Write: 0, Turn: Left, NextState: 0}, {Write: 1, Turn: NoTurn, NextState: 1}},
			}),
		},
		{
			// Three-color zigzag that cycles the palette as it walks.
			Name: "zigzag",
			Table: table([][]Rule{
				{
					{Write: 1, Turn: Left, NextState: 0},
					{Write: 2, Turn: Right, NextState: 0},
					{Write: 0, Turn: Right, NextState: 0},
				},
			}),
		},
		{
			// Dense filler: paints aggressively with frequent U-turns.
			Name: "filler",
			Table: table([][]Rule{
				{
					{Write: 2, Turn: Right, NextState: 1},
					{Write: 2, Turn: UTurn, NextState: 0},
					{Write: 0, Turn: Left, NextState: 1},
				},
				{
					{Write: 1, Turn: Left, NextState: 0},
					{Write: 0, Turn: Right, NextState: 1},
					{Write: 1, Turn: Right, NextState: 0},
				},
			}),
		},
	}
}

// PresetByName returns a fresh copy of the named preset, or false when no
// preset carries that name.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
