package genesis

import (
	"testing"

	"github.com/pthm-cable/antfarm/rules"
)

// langton returns the smallest useful base table.
func langton() rules.Table {
	t := rules.New(1, 2)
	t.Set(0, 0, rules.Rule{Write: 1, Turn: rules.Right})
	t.Set(0, 1, rules.Rule{Write: 0, Turn: rules.Left})
	return t
}

func TestEnhanceGrowsToFloors(t *testing.T) {
	out := Enhance(langton(), 3, 4, 2, NewStream(1))
	if out.States() != 3 || out.Colors() != 4 {
		t.Fatalf("dims = %dx%d, want 3x4", out.States(), out.Colors())
	}
	if !out.Closed() {
		t.Error("enhanced table must stay closed")
	}
}

func TestEnhanceLeavesLargeTablesAlone(t *testing.T) {
	base := rules.New(4, 5)
	out := Enhance(base, 2, 3, 0, NewStream(1))
	if out.States() != 4 || out.Colors() != 5 {
		t.Errorf("dims = %dx%d, want 4x5 unchanged", out.States(), out.Colors())
	}
}

func TestEnhanceDeterministic(t *testing.T) {
	seed := StableSeed("enhance-test", "110")
	a := Enhance(langton(), 3, 4, 2, NewStream(seed))
	b := Enhance(langton(), 3, 4, 2, NewStream(seed))
	if !a.Equal(b) {
		t.Error("identical seeds must produce identical tables")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprints must agree for identical tables")
	}
}

func TestEnhanceDoesNotMutateBase(t *testing.T) {
	base := langton()
	want := base.Clone()
	Enhance(base, 3, 4, 5, NewStream(9))
	if !base.Equal(want) {
		t.Error("base table was modified")
	}
}

func TestEnhanceBlankGridBootstrap(t *testing.T) {
	// A table that writes color 0 everywhere and never turns would be
	// invisible on a blank grid; enhancement must repair every state.
	dead := rules.New(2, 3)
	out := Enhance(dead, 2, 3, 0, NewStream(5))

	for st := 0; st < out.States(); st++ {
		r := out.At(st, 0)
		if r.Write == 0 {
			t.Errorf("state %d color-0 rule still writes 0", st)
		}
		if r.Turn == rules.NoTurn {
			t.Errorf("state %d color-0 rule still has no turn", st)
		}
	}
}

func TestEnhanceGuaranteesPaintPerState(t *testing.T) {
	dead := rules.New(3, 3)
	// Every cell writes its own color back.
	for st := 0; st < 3; st++ {
		for c := 0; c < 3; c++ {
			dead.Set(st, c, rules.Rule{Write: uint8(c)})
		}
	}
	out := Enhance(dead, 3, 3, 0, NewStream(2))
	for st := 0; st < out.States(); st++ {
		paints := false
		for c := 0; c < out.Colors(); c++ {
			if int(out.At(st, c).Write) != c {
				paints = true
				break
			}
		}
		if !paints {
			t.Errorf("state %d cannot change any color", st)
		}
	}
}

func TestMutateStrictPreservesStateTopology(t *testing.T) {
	base := Enhance(langton(), 3, 4, 0, NewStream(3))
	out := Mutate(base, 50, true, NewStream(4))
	for st := 0; st < base.States(); st++ {
		for c := 0; c < base.Colors(); c++ {
			if out.At(st, c).NextState != base.At(st, c).NextState {
				t.Fatalf("cell (%d,%d): strict mutation changed nextState", st, c)
			}
		}
	}
}

func TestMutateStaysClosed(t *testing.T) {
	base := Enhance(langton(), 3, 4, 0, NewStream(3))
	out := Mutate(base, 100, false, NewStream(8))
	if !out.Closed() {
		t.Error("mutated table must stay closed")
	}
	if out.States() != base.States() || out.Colors() != base.Colors() {
		t.Error("mutation must not change dimensions")
	}
}
