package rules

import (
	"math"
	"testing"
)

func TestNewClampsDimensions(t *testing.T) {
	tbl := New(0, -3)
	if tbl.States() != 1 || tbl.Colors() != 1 {
		t.Errorf("New(0, -3) = %dx%d, want 1x1", tbl.States(), tbl.Colors())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tbl := New(2, 2)
	tbl.Set(0, 0, Rule{Write: 1, Turn: Right, NextState: 1})

	cp := tbl.Clone()
	cp.Set(0, 0, Rule{Write: 0, Turn: Left, NextState: 0})

	if tbl.At(0, 0).Write != 1 {
		t.Error("mutating clone changed the original")
	}
	if !tbl.Clone().Equal(tbl) {
		t.Error("clone should compare equal to source")
	}
}

func TestAddStateAndColor(t *testing.T) {
	tbl := New(1, 2)
	tbl.AddState([]Rule{{Write: 1}, {Write: 0}})
	if tbl.States() != 2 {
		t.Fatalf("states = %d, want 2", tbl.States())
	}

	tbl.AddColor([]Rule{{Write: 2}, {Write: 2}})
	if tbl.Colors() != 3 {
		t.Fatalf("colors = %d, want 3", tbl.Colors())
	}
	if tbl.At(1, 2).Write != 2 {
		t.Errorf("new column rule = %+v, want Write 2", tbl.At(1, 2))
	}
}

func TestAddStatePanicsOnRaggedRow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AddState with wrong row length should panic")
		}
	}()
	tbl := New(1, 2)
	tbl.AddState([]Rule{{}})
}

func TestAddColorPanicsOnShortColumn(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AddColor with wrong column length should panic")
		}
	}()
	tbl := New(2, 2)
	tbl.AddColor([]Rule{{}})
}

func TestFingerprintStability(t *testing.T) {
	a := New(2, 2)
	a.Set(1, 0, Rule{Write: 1, Turn: UTurn, NextState: 0})
	b := a.Clone()

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("identical tables must fingerprint identically")
	}

	b.Set(0, 1, Rule{Write: 1})
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("differing tables should fingerprint differently")
	}
}

func TestFingerprintDistinguishesShape(t *testing.T) {
	// A 1x4 and a 2x2 zero table hold the same rule bytes.
	if New(1, 4).Fingerprint() == New(2, 2).Fingerprint() {
		t.Error("tables with different shapes should fingerprint differently")
	}
}

func TestClosed(t *testing.T) {
	tbl := New(2, 2)
	if !tbl.Closed() {
		t.Error("zero table should be closed")
	}

	tbl.Set(0, 0, Rule{Write: 2})
	if tbl.Closed() {
		t.Error("write outside color range should break closure")
	}

	tbl.Set(0, 0, Rule{NextState: 5})
	if tbl.Closed() {
		t.Error("next state outside state range should break closure")
	}
}

func TestAnalyze(t *testing.T) {
	// 1 state, 2 colors. Color 0: paints 1, turns right, stays in state 0.
	// Color 1: writes itself back, no turn.
	tbl := New(1, 2)
	tbl.Set(0, 0, Rule{Write: 1, Turn: Right, NextState: 0})
	tbl.Set(0, 1, Rule{Write: 1, Turn: NoTurn, NextState: 0})

	stats := Analyze(tbl)
	if stats.Cells != 2 {
		t.Fatalf("cells = %d, want 2", stats.Cells)
	}
	if math.Abs(stats.WriteChange-0.5) > 1e-9 {
		t.Errorf("write change = %v, want 0.5", stats.WriteChange)
	}
	if math.Abs(stats.Turning-0.5) > 1e-9 {
		t.Errorf("turning = %v, want 0.5", stats.Turning)
	}
	if stats.SelfState != 1.0 {
		t.Errorf("self state = %v, want 1.0", stats.SelfState)
	}
	// Color 1 is never rewritten to another color.
	if len(stats.Absorbing) != 1 || stats.Absorbing[0] != 1 {
		t.Errorf("absorbing = %v, want [1]", stats.Absorbing)
	}
}

func TestAnalyzeNoAbsorbing(t *testing.T) {
	tbl := New(1, 2)
	tbl.Set(0, 0, Rule{Write: 1, Turn: Right})
	tbl.Set(0, 1, Rule{Write: 0, Turn: Left})

	stats := Analyze(tbl)
	if len(stats.Absorbing) != 0 {
		t.Errorf("absorbing = %v, want none", stats.Absorbing)
	}
}

func TestPaintingStates(t *testing.T) {
	tbl := New(2, 2)
	tbl.Set(0, 0, Rule{Write: 1})
	// State 1 writes 0 on color 0: not a painting state.
	if got := PaintingStates(tbl); got != 1 {
		t.Errorf("painting states = %d, want 1", got)
	}
}

func TestVariety(t *testing.T) {
	tbl := New(1, 3)
	tbl.Set(0, 0, Rule{Write: 1, Turn: Left})
	tbl.Set(0, 1, Rule{Write: 2, Turn: Right})
	tbl.Set(0, 2, Rule{Write: 0, Turn: Right})

	if got := TurnVariety(tbl); got != 2 {
		t.Errorf("turn variety = %d, want 2", got)
	}
	if got := WriteVariety(tbl); got != 3 {
		t.Errorf("write variety = %d, want 3", got)
	}
}

func TestTurnString(t *testing.T) {
	tests := []struct {
		turn Turn
		want string
	}{
		{Left, "L"},
		{Right, "R"},
		{NoTurn, "N"},
		{UTurn, "U"},
		{Turn(9), "?"},
	}
	for _, tt := range tests {
		if got := tt.turn.String(); got != tt.want {
			t.Errorf("Turn(%d).String() = %q, want %q", tt.turn, got, tt.want)
		}
	}
}
