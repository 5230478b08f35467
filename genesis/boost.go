package genesis

import (
	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/rules"
)

// BoostActivity applies heuristic repairs that force a minimum level of
// dynamism: cross-state flow, no absorbing colors, and aggregate turn and
// write-churn ratios inside the configured band. The input table is not
// modified.
func BoostActivity(t rules.Table, cfg *config.Config, s Stream) rules.Table {
	b := cfg.Boost
	out := t.Clone()

	ensureStateFlow(out, b.MinExternal, b.RerandomizeProb, s)
	breakAbsorbing(out, s)

	for pass := 0; pass < b.Passes; pass++ {
		stats := rules.Analyze(out)
		noTurn := 1 - stats.Turning
		if noTurn <= b.MaxNoTurn && stats.WriteChange >= b.MinWriteChange {
			break
		}
		nudge(out, b.Batch, s)
	}

	if stats := rules.Analyze(out); stats.SelfState > b.MaxSelfState {
		// Second, stronger repair: demand one extra external transition
		// and always re-roll the touched cells.
		ensureStateFlow(out, b.MinExternal+1, 1.0, s)
	}
	return out
}

// ensureStateFlow redirects transitions so every state has at least
// minExternal cells leading somewhere else.
func ensureStateFlow(t rules.Table, minExternal int, rerandomize float64, s Stream) {
	states := t.States()
	colors := t.Colors()
	if states < 2 {
		return
	}
	for st := 0; st < states; st++ {
		external := 0
		for c := 0; c < colors; c++ {
			if int(t.At(st, c).NextState) != st {
				external++
			}
		}
		for attempts := 0; external < minExternal && attempts < colors*4; attempts++ {
			c := Intn(s, colors)
			r := t.At(st, c)
			if int(r.NextState) != st {
				continue
			}
			r.NextState = otherState(s, uint8(st), states)
			if Chance(s, rerandomize) {
				r.Turn = randTurn(s)
				r.Write = uint8(Intn(s, colors))
			}
			t.Set(st, c, r)
			external++
		}
	}
}

// breakAbsorbing rewrites one cell per absorbing color so every color can
// change under at least one state.
func breakAbsorbing(t rules.Table, s Stream) {
	colors := t.Colors()
	if colors < 2 {
		return
	}
	for _, c := range rules.Analyze(t).Absorbing {
		st := Intn(s, t.States())
		r := t.At(st, int(c))
		r.Write = otherColor(s, c, colors)
		t.Set(st, int(c), r)
	}
}

// nudge perturbs a batch of random cells toward more visible behavior.
func nudge(t rules.Table, batch int, s Stream) {
	states := t.States()
	colors := t.Colors()
	for i := 0; i < batch; i++ {
		st := Intn(s, states)
		c := Intn(s, colors)
		r := t.At(st, c)
		if r.Turn == rules.NoTurn {
			if Chance(s, 0.5) {
				r.Turn = rules.Left
			} else {
				r.Turn = rules.Right
			}
		}
		if int(r.Write) == c && colors > 1 {
			r.Write = otherColor(s, uint8(c), colors)
		}
		if states > 1 && Chance(s, 0.3) {
			r.NextState = uint8(Intn(s, states))
		}
		t.Set(st, c, r)
	}
}
