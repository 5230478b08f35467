// Package forge orchestrates rule table generation: it picks a strategy,
// diversifies and boosts the candidate, validates it, and retries up to a
// configured bound. It always returns something displayable.
package forge

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/genesis"
	"github.com/pthm-cable/antfarm/rules"
	"github.com/pthm-cable/antfarm/seedpool"
	"github.com/pthm-cable/antfarm/validate"
)

// Strategy names reported in Origin and used for agent placement.
const (
	StrategyCAEvolved = "ca-evolved"
	StrategySacred    = "sacred"
	StrategyDirectECA = "direct-eca"
	StrategyPool      = "pool"
	StrategyPreset    = "preset"
)

// Origin describes where an accepted (or last-resort) table came from.
type Origin struct {
	Strategy string // producing strategy name
	Detail   string // pool entry label, preset name, or rule number
	Attempts int    // attempts consumed, including the returned one
	Warning  bool   // true when the retry budget ran out
}

// Generator is the orchestrator. Single-threaded, run-to-completion: one
// Generate call finishes before the next observes any state.
type Generator struct {
	cfg       *config.Config
	sampler   *seedpool.Sampler
	validator *validate.Validator
	stream    genesis.Stream
	presets   []rules.Preset
}

// NewGenerator wires an orchestrator. The sampler may be nil; every pool
// draw then falls back to the direct ECA generator.
func NewGenerator(cfg *config.Config, sampler *seedpool.Sampler, v *validate.Validator, stream genesis.Stream) *Generator {
	return &Generator{
		cfg:       cfg,
		sampler:   sampler,
		validator: v,
		stream:    stream,
		presets:   rules.Presets(),
	}
}

// SetConfig swaps the configuration by whole-value replacement.
func (g *Generator) SetConfig(cfg *config.Config) {
	g.cfg = cfg
	if g.sampler != nil {
		g.sampler.SetConfig(cfg)
	}
}

// Generate loops generate -> diversify/boost -> validate until a candidate
// passes or the attempt budget runs out, in which case the last candidate
// is returned anyway with Origin.Warning set.
func (g *Generator) Generate() (rules.Table, Origin, validate.Result) {
	maxAttempts := g.cfg.Orchestrator.MaxAttempts

	var lastTable rules.Table
	var lastOrigin Origin
	var lastResult validate.Result

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		t, origin := g.produce()
		t = genesis.Diversify(t, g.cfg, g.stream, false, false)
		t = genesis.EnsureMinDimensions(t, g.cfg, g.stream)
		t = genesis.BoostActivity(t, g.cfg, g.stream)

		res := g.validator.Validate(t, origin.Strategy)
		origin.Attempts = attempt

		if res.OK {
			return t, origin, res
		}
		slog.Debug("candidate rejected",
			"attempt", attempt,
			"strategy", origin.Strategy,
			"stage", string(res.Stage),
			"reason", res.Reason,
		)
		lastTable, lastOrigin, lastResult = t, origin, res
	}

	lastOrigin.Warning = true
	slog.Warn("generation budget exhausted, returning last candidate",
		"attempts", maxAttempts,
		"strategy", lastOrigin.Strategy,
	)
	return lastTable, lastOrigin, lastResult
}

// produce runs one strategy branch according to the configured split.
func (g *Generator) produce() (rules.Table, Origin) {
	gc := g.cfg.Generate
	total := gc.FreshProb + gc.PoolProb + gc.PresetProb
	r := g.stream.Float64() * total

	switch {
	case r < gc.FreshProb:
		return g.fresh()
	case r < gc.FreshProb+gc.PoolProb:
		return g.fromPool()
	default:
		return g.fromPreset()
	}
}

func (g *Generator) fresh() (rules.Table, Origin) {
	switch genesis.Intn(g.stream, 3) {
	case 0:
		return genesis.CAEvolved(g.cfg, g.stream), Origin{Strategy: StrategyCAEvolved}
	case 1:
		return genesis.Sacred(g.cfg, g.stream), Origin{Strategy: StrategySacred}
	default:
		t, rule := genesis.DirectECA(g.stream)
		return t, Origin{Strategy: StrategyDirectECA, Detail: fmt.Sprintf("rule-%d", rule)}
	}
}

func (g *Generator) mutationCount() int {
	gc := g.cfg.Generate
	span := gc.MutationsMax - gc.MutationsMin + 1
	return gc.MutationsMin + genesis.Intn(g.stream, span)
}

func (g *Generator) fromPool() (rules.Table, Origin) {
	if g.sampler == nil {
		t, rule := genesis.DirectECA(g.stream)
		return t, Origin{Strategy: StrategyDirectECA, Detail: fmt.Sprintf("rule-%d", rule)}
	}
	entry, ok := g.sampler.Sample(g.stream)
	if !ok {
		// Empty pool: fall back to the always-available generator.
		t, rule := genesis.DirectECA(g.stream)
		return t, Origin{Strategy: StrategyDirectECA, Detail: fmt.Sprintf("rule-%d", rule)}
	}
	t := genesis.Mutate(entry.Rules, g.mutationCount(), false, g.stream)
	return t, Origin{Strategy: StrategyPool, Detail: entry.Label}
}

func (g *Generator) fromPreset() (rules.Table, Origin) {
	p := g.presets[genesis.Intn(g.stream, len(g.presets))]
	t := genesis.Mutate(p.Table, g.mutationCount(), false, g.stream)
	return t, Origin{Strategy: StrategyPreset, Detail: p.Name}
}
