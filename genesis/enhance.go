package genesis

import "github.com/pthm-cable/antfarm/rules"

// Enhance grows a base table to the given state/color floors and repairs
// it into something that can act on a blank grid. All draws come from s,
// so identical (base, floors, mutations, seed) inputs always produce the
// same table.
//
// The passes run in a fixed order: color growth, state growth, guarantee
// paint, point mutations, bootstrap repair.
func Enhance(base rules.Table, minStates, minColors, mutations int, s Stream) rules.Table {
	t := base.Clone()

	// Grow colors first so state rows cloned later already span the
	// full palette.
	for t.Colors() < minColors {
		colors := t.Colors()
		col := make([]rules.Rule, t.States())
		for st := range col {
			tmpl := t.At(st, Intn(s, colors))
			tmpl.Write = uint8(Intn(s, colors+1))
			if Chance(s, 0.5) {
				tmpl.Turn = randTurn(s)
			}
			col[st] = tmpl
		}
		t.AddColor(col)
		// The new color is unreachable until something writes it.
		st := Intn(s, t.States())
		c := Intn(s, colors)
		r := t.At(st, c)
		r.Write = uint8(colors)
		t.Set(st, c, r)
	}

	for t.States() < minStates {
		states := t.States()
		tmpl := Intn(s, states)
		row := make([]rules.Rule, t.Colors())
		for c := range row {
			r := t.At(tmpl, c)
			if Chance(s, 0.5) {
				r.Turn = randTurn(s)
			}
			if Chance(s, 0.5) {
				r.NextState = uint8(Intn(s, states+1))
			}
			row[c] = r
		}
		t.AddState(row)
		// Reachability: some existing transition must enter the new state.
		st := Intn(s, states)
		c := Intn(s, t.Colors())
		r := t.At(st, c)
		r.NextState = uint8(states)
		t.Set(st, c, r)
	}

	guaranteePaint(t, s)

	for i := 0; i < mutations; i++ {
		mutateCell(t, s, false)
	}

	bootstrap(t, s)
	return t
}

// guaranteePaint forces at least one cell per state to change the color
// it writes.
func guaranteePaint(t rules.Table, s Stream) {
	colors := t.Colors()
	if colors < 2 {
		return
	}
	for st := 0; st < t.States(); st++ {
		paints := false
		for c := 0; c < colors; c++ {
			if int(t.At(st, c).Write) != c {
				paints = true
				break
			}
		}
		if paints {
			continue
		}
		c := Intn(s, colors)
		r := t.At(st, c)
		r.Write = otherColor(s, uint8(c), colors)
		t.Set(st, c, r)
	}
}

// bootstrap forces every state's color-0 rule to write a non-zero color
// with a turn, so a blank grid can always start painting.
func bootstrap(t rules.Table, s Stream) {
	colors := t.Colors()
	if colors < 2 {
		return
	}
	for st := 0; st < t.States(); st++ {
		r := t.At(st, 0)
		if r.Write == 0 {
			r.Write = uint8(1 + Intn(s, colors-1))
		}
		if r.Turn == rules.NoTurn {
			if Chance(s, 0.5) {
				r.Turn = rules.Left
			} else {
				r.Turn = rules.Right
			}
		}
		t.Set(st, 0, r)
	}
}

// mutateCell redraws one field of one uniformly chosen cell. Strict mode
// leaves nextState untouched so the state topology survives.
func mutateCell(t rules.Table, s Stream, strict bool) {
	states := t.States()
	colors := t.Colors()
	st := Intn(s, states)
	c := Intn(s, colors)
	r := t.At(st, c)

	fields := 3
	if strict {
		fields = 2
	}
	switch Intn(s, fields) {
	case 0:
		r.Turn = randTurn(s)
	case 1:
		r.Write = uint8(Intn(s, colors))
	case 2:
		r.NextState = uint8(Intn(s, states))
	}
	t.Set(st, c, r)
}
