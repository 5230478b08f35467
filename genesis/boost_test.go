package genesis

import (
	"testing"

	"github.com/pthm-cable/antfarm/rules"
)

func TestBoostBreaksAbsorbingColors(t *testing.T) {
	cfg := testConfig(t)
	// Every cell writes its own color back: all three colors absorb.
	tbl := rules.New(2, 3)
	for st := 0; st < 2; st++ {
		for c := 0; c < 3; c++ {
			tbl.Set(st, c, rules.Rule{Write: uint8(c)})
		}
	}

	out := BoostActivity(tbl, cfg, NewStream(1))
	if abs := rules.Analyze(out).Absorbing; len(abs) != 0 {
		t.Errorf("absorbing colors remain: %v", abs)
	}
}

func TestBoostEnsuresStateFlow(t *testing.T) {
	cfg := testConfig(t)
	// All next states point back at themselves.
	tbl := rules.New(3, 3)
	for st := 0; st < 3; st++ {
		for c := 0; c < 3; c++ {
			tbl.Set(st, c, rules.Rule{Write: uint8((c + 1) % 3), NextState: uint8(st)})
		}
	}

	out := BoostActivity(tbl, cfg, NewStream(2))
	for st := 0; st < out.States(); st++ {
		external := 0
		for c := 0; c < out.Colors(); c++ {
			if int(out.At(st, c).NextState) != st {
				external++
			}
		}
		if external < cfg.Boost.MinExternal {
			t.Errorf("state %d has %d external transitions, want at least %d",
				st, external, cfg.Boost.MinExternal)
		}
	}
}

func TestBoostRaisesActivityRatios(t *testing.T) {
	cfg := testConfig(t)
	// Worst case: nothing writes, nothing turns, nothing moves.
	out := BoostActivity(rules.New(3, 4), cfg, NewStream(3))

	stats := rules.Analyze(out)
	if stats.Turning == 0 {
		t.Error("boosted table still never turns")
	}
	if stats.WriteChange == 0 {
		t.Error("boosted table still never changes a color")
	}
	if !out.Closed() {
		t.Error("boosted table must stay closed")
	}
}

func TestBoostDoesNotMutateInput(t *testing.T) {
	cfg := testConfig(t)
	base := rules.New(3, 3)
	want := base.Clone()
	BoostActivity(base, cfg, NewStream(4))
	if !base.Equal(want) {
		t.Error("input table was modified")
	}
}

func TestBoostSingleStateTable(t *testing.T) {
	cfg := testConfig(t)
	// One state: flow repair cannot apply, but boosting must not panic
	// or produce an unclosed table.
	out := BoostActivity(rules.New(1, 3), cfg, NewStream(5))
	if out.States() != 1 || !out.Closed() {
		t.Errorf("unexpected result shape %dx%d", out.States(), out.Colors())
	}
}
