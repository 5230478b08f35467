package genesis

import (
	"testing"

	"github.com/pthm-cable/antfarm/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestCAEvolvedDimensions(t *testing.T) {
	cfg := testConfig(t)
	s := NewStream(21)
	for i := 0; i < 50; i++ {
		tbl := CAEvolved(cfg, s)
		if tbl.States() < cfg.Generate.CAStatesMin || tbl.States() > cfg.Generate.CAStatesMax {
			t.Fatalf("states = %d, want within [%d, %d]",
				tbl.States(), cfg.Generate.CAStatesMin, cfg.Generate.CAStatesMax)
		}
		if tbl.Colors() < cfg.Generate.CAColorsMin || tbl.Colors() > cfg.Generate.CAColorsMax {
			t.Fatalf("colors = %d, want within [%d, %d]",
				tbl.Colors(), cfg.Generate.CAColorsMin, cfg.Generate.CAColorsMax)
		}
		if !tbl.Closed() {
			t.Fatal("derived table must be closed")
		}
	}
}

func TestCAEvolvedStateZeroPattern(t *testing.T) {
	cfg := testConfig(t)
	tbl := CAEvolved(cfg, NewStream(3))
	colors := tbl.Colors()
	for c := 0; c < colors; c++ {
		r := tbl.At(0, c)
		if int(r.Write) != (c+1)%colors {
			t.Errorf("color %d: write = %d, want %d", c, r.Write, (c+1)%colors)
		}
	}
}

func TestCAEvolvedDeterministic(t *testing.T) {
	cfg := testConfig(t)
	a := CAEvolved(cfg, NewStream(77))
	b := CAEvolved(cfg, NewStream(77))
	if !a.Equal(b) {
		t.Error("same stream must produce the same table")
	}
}

func TestMajority(t *testing.T) {
	tests := []struct {
		a, b, c uint8
		want    uint8
	}{
		{0, 0, 0, 0},
		{1, 1, 2, 1},
		{2, 1, 2, 2},
		{0, 2, 2, 2},
		{3, 1, 2, 1}, // three-way tie goes to the lowest
	}
	for _, tt := range tests {
		if got := majority(tt.a, tt.b, tt.c); got != tt.want {
			t.Errorf("majority(%d, %d, %d) = %d, want %d", tt.a, tt.b, tt.c, got, tt.want)
		}
	}
}

func TestSacredDimensionsFromChoices(t *testing.T) {
	cfg := testConfig(t)
	allowed := func(v int, set []int) bool {
		for _, x := range set {
			if x == v {
				return true
			}
		}
		return false
	}

	s := NewStream(13)
	for i := 0; i < 50; i++ {
		tbl := Sacred(cfg, s)
		if !allowed(tbl.States(), cfg.Generate.SacredStates) {
			t.Fatalf("states = %d, not in %v", tbl.States(), cfg.Generate.SacredStates)
		}
		if !allowed(tbl.Colors(), cfg.Generate.SacredColors) {
			t.Fatalf("colors = %d, not in %v", tbl.Colors(), cfg.Generate.SacredColors)
		}
		if !tbl.Closed() {
			t.Fatal("sacred table must be closed")
		}
	}
}

func TestSacredCyclicWrites(t *testing.T) {
	cfg := testConfig(t)
	tbl := Sacred(cfg, NewStream(5))
	colors := tbl.Colors()
	for st := 0; st < tbl.States(); st++ {
		for c := 0; c < colors; c++ {
			if int(tbl.At(st, c).Write) != (c+1)%colors {
				t.Fatalf("cell (%d,%d): write = %d, want %d",
					st, c, tbl.At(st, c).Write, (c+1)%colors)
			}
		}
	}
}

func TestDirectECA(t *testing.T) {
	tbl, rule := DirectECA(NewStream(99))
	if tbl.States() != 2 || tbl.Colors() != 2 {
		t.Errorf("dims = %dx%d, want 2x2", tbl.States(), tbl.Colors())
	}
	_ = rule

	a, ra := DirectECA(NewStream(99))
	if ra != rule || !a.Equal(tbl) {
		t.Error("same stream must pick the same rule")
	}
}
