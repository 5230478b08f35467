// Package seedpool builds and samples the precomputed corpus of candidate
// rule tables derived from elementary cellular automaton rules.
package seedpool

import (
	"fmt"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/eca"
	"github.com/pthm-cable/antfarm/genesis"
	"github.com/pthm-cable/antfarm/rules"
)

// Family names used in entry metadata and sampler bucketing.
const (
	FamilyECA     = "eca"
	FamilyDerived = "derived"
)

// poolName salts the per-entry enhancer seeds.
const poolName = "antfarm"

// Meta tags a pool entry with its provenance.
type Meta struct {
	Family     string
	ECARule    uint8
	Transforms []eca.Transform
	Mapping    eca.Mapping
	ClassHint  int
}

// Entry is one immutable candidate table in the pool.
type Entry struct {
	ID    int
	Label string
	Meta  Meta
	Rules rules.Table
}

// Pool is the deduplicated, metadata-tagged seed corpus. Built once,
// immutable for the process lifetime.
type Pool struct {
	entries []Entry
}

// transformCombos enumerates every transform combination in fixed build
// order; the empty combination comes first so each rule always keeps its
// untransformed bits.
var transformCombos = [][]eca.Transform{
	nil,
	{eca.Mirror},
	{eca.Conjugate},
	{eca.Invert},
	{eca.Mirror, eca.Conjugate},
	{eca.Mirror, eca.Invert},
	{eca.Conjugate, eca.Invert},
	{eca.Mirror, eca.Conjugate, eca.Invert},
}

// Build constructs the full pool deterministically: every rule number's
// transform combinations are deduplicated by resulting bit string, each
// survivor is mapped under all three schemes and enhanced with a seed
// derived from a stable hash, and the pool is topped up with derived
// entries when it falls short of the configured target size.
func Build(cfg *config.Config) *Pool {
	p := &Pool{}
	id := 0

	for rule := 0; rule <= 255; rule++ {
		seen := make(map[uint8]bool, len(transformCombos))
		for _, combo := range transformCombos {
			bits := eca.Apply(eca.RenderRule(uint8(rule)), combo)
			packed := bits.Byte()
			if seen[packed] {
				continue
			}
			seen[packed] = true

			hint := eca.Classify(bits, uint8(rule))
			trLabel := eca.TransformsLabel(combo)

			for _, mapping := range eca.Mappings {
				raw := eca.BuildTable(bits, mapping, cfg.Pool.StreamStates, cfg.Pool.StreamColors)
				seed := genesis.StableSeed(poolName,
					fmt.Sprintf("%d", rule), mapping.String(), trLabel)
				enhanced := genesis.Enhance(raw,
					cfg.Pool.MinStates, cfg.Pool.MinColors,
					cfg.Pool.EnhanceMutations, genesis.NewStream(seed))

				p.entries = append(p.entries, Entry{
					ID:    id,
					Label: fmt.Sprintf("eca-%d-%s-%s", rule, mapping, trLabel),
					Meta: Meta{
						Family:     FamilyECA,
						ECARule:    uint8(rule),
						Transforms: combo,
						Mapping:    mapping,
						ClassHint:  hint,
					},
					Rules: enhanced,
				})
				id++
			}
		}
	}

	p.topUp(cfg, id)
	return p
}

// topUp appends derived entries by round-robin cloning existing entries
// and flipping one turn cell chosen from a separately seeded stream.
func (p *Pool) topUp(cfg *config.Config, nextID int) {
	base := len(p.entries)
	if base == 0 || cfg.Pool.TargetSize <= base {
		return
	}
	s := genesis.NewStream(genesis.StableSeed(poolName, "derived"))
	for i := 0; len(p.entries) < cfg.Pool.TargetSize; i++ {
		src := &p.entries[i%base]
		t := src.Rules.Clone()
		st := genesis.Intn(s, t.States())
		c := genesis.Intn(s, t.Colors())
		r := t.At(st, c)
		r.Turn = rules.Turn((int(r.Turn) + 1 + genesis.Intn(s, rules.NumTurns-1)) % rules.NumTurns)
		t.Set(st, c, r)

		p.entries = append(p.entries, Entry{
			ID:    nextID,
			Label: fmt.Sprintf("derived-%d-%s", i, src.Label),
			Meta: Meta{
				Family:     FamilyDerived,
				ECARule:    src.Meta.ECARule,
				Transforms: src.Meta.Transforms,
				Mapping:    src.Meta.Mapping,
				ClassHint:  src.Meta.ClassHint,
			},
			Rules: t,
		})
		nextID++
	}
}

// Len returns the number of pool entries.
func (p *Pool) Len() int { return len(p.entries) }

// Entry returns the i-th pool entry.
func (p *Pool) Entry(i int) *Entry { return &p.entries[i] }

// shared is the lazily built process-wide pool. Construction is
// synchronous and single-threaded, matching the engine's run-to-completion
// resource model.
var shared *Pool

// Shared returns the memoized pool, building it on first use.
func Shared(cfg *config.Config) *Pool {
	if shared == nil {
		shared = Build(cfg)
	}
	return shared
}
