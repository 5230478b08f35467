package seedpool

import (
	"strings"
	"testing"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/eca"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	// Keep pool construction fast in tests.
	cfg.Pool.TargetSize = 0
	return cfg
}

func TestBuildCoversEveryRuleAndMapping(t *testing.T) {
	p := Build(testConfig(t))

	type key struct {
		rule    uint8
		mapping eca.Mapping
	}
	seen := make(map[key]bool)
	for i := 0; i < p.Len(); i++ {
		e := p.Entry(i)
		if e.Meta.Family != FamilyECA {
			continue
		}
		// The untransformed combination always survives dedup.
		if len(e.Meta.Transforms) == 0 {
			seen[key{e.Meta.ECARule, e.Meta.Mapping}] = true
		}
	}

	for r := 0; r < 256; r++ {
		for _, m := range eca.Mappings {
			if !seen[key{uint8(r), m}] {
				t.Fatalf("rule %d mapping %s missing untransformed entry", r, m)
			}
		}
	}
}

func TestBuildDeduplicatesTransforms(t *testing.T) {
	p := Build(testConfig(t))

	// Rule 0 is invariant under mirror, so the only surviving bit strings
	// are 0x00 and (via conjugate or invert) 0xFF: 2 survivors x 3 mappings.
	n := 0
	for i := 0; i < p.Len(); i++ {
		e := p.Entry(i)
		if e.Meta.Family == FamilyECA && e.Meta.ECARule == 0 {
			n++
		}
	}
	if n != 6 {
		t.Errorf("rule 0 entries = %d, want 6", n)
	}
}

func TestBuildMeetsDimensionFloors(t *testing.T) {
	cfg := testConfig(t)
	p := Build(cfg)
	for i := 0; i < p.Len(); i++ {
		e := p.Entry(i)
		if e.Rules.States() < cfg.Pool.MinStates || e.Rules.Colors() < cfg.Pool.MinColors {
			t.Fatalf("%s: dims %dx%d below floors %dx%d", e.Label,
				e.Rules.States(), e.Rules.Colors(), cfg.Pool.MinStates, cfg.Pool.MinColors)
		}
		if !e.Rules.Closed() {
			t.Fatalf("%s: table not closed", e.Label)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	cfg := testConfig(t)
	a := Build(cfg)
	b := Build(cfg)
	if a.Len() != b.Len() {
		t.Fatalf("pool sizes differ: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		ea, eb := a.Entry(i), b.Entry(i)
		if ea.Label != eb.Label {
			t.Fatalf("entry %d labels differ: %s vs %s", i, ea.Label, eb.Label)
		}
		if ea.Rules.Fingerprint() != eb.Rules.Fingerprint() {
			t.Fatalf("entry %d (%s) tables differ between builds", i, ea.Label)
		}
	}
}

func TestTopUpReachesTarget(t *testing.T) {
	cfg := testConfig(t)
	base := Build(cfg).Len()
	cfg.Pool.TargetSize = base + 100

	p := Build(cfg)
	if p.Len() != cfg.Pool.TargetSize {
		t.Fatalf("pool size = %d, want %d", p.Len(), cfg.Pool.TargetSize)
	}

	derived := 0
	for i := base; i < p.Len(); i++ {
		e := p.Entry(i)
		if e.Meta.Family != FamilyDerived {
			t.Fatalf("entry %d family = %s, want derived", i, e.Meta.Family)
		}
		if !strings.HasPrefix(e.Label, "derived-") {
			t.Fatalf("entry %d label = %s", i, e.Label)
		}
		derived++
	}
	if derived != 100 {
		t.Errorf("derived entries = %d, want 100", derived)
	}
}

func TestDerivedEntriesDifferFromSource(t *testing.T) {
	cfg := testConfig(t)
	base := Build(cfg).Len()
	cfg.Pool.TargetSize = base + 10

	p := Build(cfg)
	for i := base; i < p.Len(); i++ {
		src := p.Entry(i - base)
		if p.Entry(i).Rules.Equal(src.Rules) {
			t.Errorf("derived entry %d is identical to its source", i)
		}
	}
}
