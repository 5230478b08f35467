package main

import (
	"math"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/forge"
	"github.com/pthm-cable/antfarm/genesis"
	"github.com/pthm-cable/antfarm/seedpool"
	"github.com/pthm-cable/antfarm/sim"
	"github.com/pthm-cable/antfarm/telemetry"
	"github.com/pthm-cable/antfarm/validate"
)

// FitnessEvaluator runs generation batches and scores them. Lower is
// better: the evaluator rewards a high first-attempt acceptance rate and
// sustained simulated activity in the accepted tables.
type FitnessEvaluator struct {
	params     *ParamVector
	batchSize  int
	seeds      []int64
	baseConfig *config.Config
	pool       *seedpool.Pool

	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator. The pool is built once
// from the base config and reused across evaluations.
func NewFitnessEvaluator(params *ParamVector, batchSize int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		batchSize:  batchSize,
		seeds:      seeds,
		baseConfig: baseCfg,
		pool:       seedpool.Shared(baseCfg),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	return fe.lastQuality
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	var total float64
	var quality float64

	for _, seed := range fe.seeds {
		f, q := fe.runBatch(x, seed)
		total += f
		quality += q
	}

	n := float64(len(fe.seeds))
	fe.lastQuality = quality / n
	return total / n
}

// runBatch executes one full generation batch under one seed.
func (fe *FitnessEvaluator) runBatch(x []float64, seed int64) (fitness, quality float64) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	validator, err := validate.New(cfg, func(w, h int) validate.Simulation {
		return sim.New(w, h)
	}, nil)
	if err != nil {
		return math.Inf(1), 0
	}

	sampler := seedpool.NewSampler(fe.pool, cfg)
	gen := forge.NewGenerator(cfg, sampler, validator, genesis.NewStream(uint64(seed)))

	var attempts []float64
	var activity []float64
	accepted := 0

	for i := 0; i < fe.batchSize; i++ {
		_, origin, res := gen.Generate()
		attempts = append(attempts, float64(origin.Attempts))
		if res.OK {
			accepted++
			activity = append(activity, float64(res.Activity.Tail))
		}
	}

	acceptRate := float64(accepted) / float64(fe.batchSize)
	meanAttempts, _ := telemetry.Summary(attempts)
	meanActivity, _ := telemetry.Summary(activity)

	// Quality blends acceptance with sustained tail activity; fitness is
	// its negation plus an attempt-cost penalty.
	quality = acceptRate + 0.001*meanActivity
	fitness = -quality + 0.05*meanAttempts
	return fitness, quality
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig

	cfg.Sampler.FamilyWeights = make(map[string]float64, len(fe.baseConfig.Sampler.FamilyWeights))
	for k, v := range fe.baseConfig.Sampler.FamilyWeights {
		cfg.Sampler.FamilyWeights[k] = v
	}
	cfg.Sampler.MappingWeights = make(map[string]float64, len(fe.baseConfig.Sampler.MappingWeights))
	for k, v := range fe.baseConfig.Sampler.MappingWeights {
		cfg.Sampler.MappingWeights[k] = v
	}
	cfg.Sampler.HintWeights = append([]float64(nil), fe.baseConfig.Sampler.HintWeights...)
	cfg.Generate.SacredStates = append([]int(nil), fe.baseConfig.Generate.SacredStates...)
	cfg.Generate.SacredColors = append([]int(nil), fe.baseConfig.Generate.SacredColors...)

	return &cfg
}
