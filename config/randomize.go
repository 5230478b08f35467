package config

// floatSource yields uniform values in [0, 1). Declared locally so the
// randomizer works with any seeded or ambient stream.
type floatSource interface {
	Float64() float64
}

// jitter scales v by a factor drawn uniformly from [1-spread, 1+spread],
// clamped to [lo, hi].
func jitter(src floatSource, v, spread, lo, hi float64) float64 {
	f := 1 + (src.Float64()*2-1)*spread
	out := v * f
	if out < lo {
		out = lo
	}
	if out > hi {
		out = hi
	}
	return out
}

// Randomized derives a "chaos mode" variant of c: probabilities and
// thresholds are jittered within safe ranges and the returned value is a
// completely independent Config. c itself is never touched.
func (c *Config) Randomized(src floatSource) *Config {
	out := *c

	out.Generate.CARandomCell = jitter(src, c.Generate.CARandomCell, 0.8, 0.01, 0.35)
	out.Generate.SacredStay = jitter(src, c.Generate.SacredStay, 0.6, 0.02, 0.35)
	out.Generate.SacredSkip = jitter(src, c.Generate.SacredSkip, 0.6, 0.02, 0.35)
	out.Generate.SacredFlip = jitter(src, c.Generate.SacredFlip, 0.6, 0.02, 0.40)
	out.Generate.MutationsMax = c.Generate.MutationsMax + int(src.Float64()*4)

	out.Diversify.AddColorProb = jitter(src, c.Diversify.AddColorProb, 0.5, 0.05, 0.9)
	out.Diversify.AddStateProb = jitter(src, c.Diversify.AddStateProb, 0.5, 0.05, 0.9)
	out.Diversify.RerouteWriteProb = jitter(src, c.Diversify.RerouteWriteProb, 0.5, 0.05, 0.7)
	out.Diversify.RerouteStateProb = jitter(src, c.Diversify.RerouteStateProb, 0.5, 0.05, 0.7)

	out.Boost.MaxNoTurn = jitter(src, c.Boost.MaxNoTurn, 0.3, 0.3, 0.9)
	out.Boost.MinWriteChange = jitter(src, c.Boost.MinWriteChange, 0.4, 0.1, 0.6)

	out.Validate.MinWriteChange = jitter(src, c.Validate.MinWriteChange, 0.4, 0.05, 0.5)
	out.Validate.MaxNoTurn = jitter(src, c.Validate.MaxNoTurn, 0.15, 0.5, 0.95)

	// Maps are shared by reference on copy; rebuild them so the variant
	// never aliases the source config.
	out.Sampler.FamilyWeights = make(map[string]float64, len(c.Sampler.FamilyWeights))
	for k, v := range c.Sampler.FamilyWeights {
		out.Sampler.FamilyWeights[k] = v
	}
	out.Sampler.MappingWeights = make(map[string]float64, len(c.Sampler.MappingWeights))
	for k, v := range c.Sampler.MappingWeights {
		out.Sampler.MappingWeights[k] = jitter(src, v, 0.4, 0.2, 3.0)
	}
	out.Sampler.HintWeights = append([]float64(nil), c.Sampler.HintWeights...)

	out.Generate.SacredStates = append([]int(nil), c.Generate.SacredStates...)
	out.Generate.SacredColors = append([]int(nil), c.Generate.SacredColors...)

	return &out
}
