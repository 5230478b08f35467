package genesis

import (
	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/rules"
)

// Diversify structurally widens a table: with independent configured
// probabilities it adds one color and/or one state and reroutes part of
// the existing transitions toward the addition. forceColor/forceState
// bypass the probability draw (the dice are still rolled for reroutes).
func Diversify(t rules.Table, cfg *config.Config, s Stream, forceColor, forceState bool) rules.Table {
	d := cfg.Diversify
	out := t.Clone()

	if (forceColor || Chance(s, d.AddColorProb)) && out.Colors() < d.MaxColors {
		addColor(&out, d, s)
	}
	if (forceState || Chance(s, d.AddStateProb)) && out.States() < d.MaxStates {
		addState(&out, d, s)
	}
	return out
}

func addColor(t *rules.Table, d config.DiversifyConfig, s Stream) {
	states := t.States()
	colors := t.Colors()
	col := make([]rules.Rule, states)
	for st := range col {
		col[st] = randRule(s, states, colors+1)
	}
	t.AddColor(col)

	newColor := uint8(colors)
	for st := 0; st < states; st++ {
		for c := 0; c < colors; c++ {
			if Chance(s, d.RerouteWriteProb) {
				r := t.At(st, c)
				r.Write = newColor
				t.Set(st, c, r)
			}
		}
	}
}

func addState(t *rules.Table, d config.DiversifyConfig, s Stream) {
	states := t.States()
	colors := t.Colors()
	tmpl := Intn(s, states)
	row := make([]rules.Rule, colors)
	for c := range row {
		r := t.At(tmpl, c)
		if Chance(s, d.AlterCloneProb) {
			r.Turn = randTurn(s)
		}
		if Chance(s, d.AlterCloneProb) {
			r.NextState = uint8(Intn(s, states+1))
		}
		row[c] = r
	}
	t.AddState(row)

	newState := uint8(states)
	for st := 0; st < states; st++ {
		for c := 0; c < colors; c++ {
			if Chance(s, d.RerouteStateProb) {
				r := t.At(st, c)
				r.NextState = newState
				t.Set(st, c, r)
			}
		}
	}
}

// EnsureMinDimensions repeatedly forces diversification until the
// configured minimum dimensions are met or the pass budget runs out.
func EnsureMinDimensions(t rules.Table, cfg *config.Config, s Stream) rules.Table {
	d := cfg.Diversify
	for pass := 0; pass < d.MaxPasses; pass++ {
		needColor := t.Colors() < d.MinColors
		needState := t.States() < d.MinStates
		if !needColor && !needState {
			break
		}
		t = Diversify(t, cfg, s, needColor, needState)
	}
	return t
}
