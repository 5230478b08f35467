package eca

import (
	"testing"

	"github.com/pthm-cable/antfarm/rules"
)

func TestBuildV1Rule110(t *testing.T) {
	tbl := BuildTable(RenderRule(110), MapV1, 0, 0)
	if tbl.States() != 2 || tbl.Colors() != 2 {
		t.Fatalf("dims = %dx%d, want 2x2", tbl.States(), tbl.Colors())
	}

	want := [2][2]rules.Rule{
		{{Write: 0, Turn: rules.Right, NextState: 1}, {Write: 1, Turn: rules.Right, NextState: 1}},
		{{Write: 0, Turn: rules.Right, NextState: 0}, {Write: 1, Turn: rules.Left, NextState: 0}},
	}
	for s := 0; s < 2; s++ {
		for c := 0; c < 2; c++ {
			if got := tbl.At(s, c); got != want[s][c] {
				t.Errorf("cell (%d,%d) = %+v, want %+v", s, c, got, want[s][c])
			}
		}
	}
}

func TestBuildV1AlternatesState(t *testing.T) {
	for r := 0; r < 256; r++ {
		tbl := BuildTable(RenderRule(uint8(r)), MapV1, 0, 0)
		for c := 0; c < 2; c++ {
			if tbl.At(0, c).NextState != 1 || tbl.At(1, c).NextState != 0 {
				t.Fatalf("rule %d: v1 mapping must alternate the state", r)
			}
		}
	}
}

func TestBuildV2UsesTurnCodes(t *testing.T) {
	// All-ones bits: hi=lo=1 everywhere, so every turn code is 11 (U-turn)
	// and every next state is 1.
	tbl := BuildTable(RenderRule(255), MapV2, 0, 0)
	for s := 0; s < 2; s++ {
		for c := 0; c < 2; c++ {
			r := tbl.At(s, c)
			if r.Turn != rules.UTurn || r.Write != 1 || r.NextState != 1 {
				t.Errorf("cell (%d,%d) = %+v, want write 1 U-turn next 1", s, c, r)
			}
		}
	}
}

func TestBuildStreamHonorsDimensions(t *testing.T) {
	tbl := BuildTable(RenderRule(30), MapStream, 3, 4)
	if tbl.States() != 3 || tbl.Colors() != 4 {
		t.Fatalf("dims = %dx%d, want 3x4", tbl.States(), tbl.Colors())
	}
	if !tbl.Closed() {
		t.Error("stream table must stay closed")
	}
}

func TestBuildStreamClampsDimensions(t *testing.T) {
	tbl := BuildTable(RenderRule(30), MapStream, 0, 1)
	if tbl.States() != 1 || tbl.Colors() != 2 {
		t.Errorf("dims = %dx%d, want 1x2", tbl.States(), tbl.Colors())
	}
}

func TestBuildTableDeterministic(t *testing.T) {
	for _, m := range Mappings {
		a := BuildTable(RenderRule(110), m, 3, 4)
		b := BuildTable(RenderRule(110), m, 3, 4)
		if !a.Equal(b) {
			t.Errorf("%s: identical inputs produced differing tables", m)
		}
	}
}

func TestAllMappingsAllRulesClosed(t *testing.T) {
	for r := 0; r < 256; r++ {
		for _, m := range Mappings {
			tbl := BuildTable(RenderRule(uint8(r)), m, 3, 4)
			if !tbl.Closed() {
				t.Fatalf("rule %d mapping %s produced an unclosed table", r, m)
			}
		}
	}
}
