package seedpool

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/antfarm/config"
)

// Rand yields uniform values in [0, 1).
type Rand interface {
	Float64() float64
}

// bucket groups entries sharing (family, mapping). The square-root bucket
// weight keeps a numerically large bucket from dominating purely by
// count while per-entry weights bias selection locally.
type bucket struct {
	family   string
	mapping  string
	entryIdx []int
	cum      []float64 // per-entry cumulative weights
	total    float64   // sum of entry weights
	weight   float64   // bucket-level weight
}

// Sampler draws pool entries with two-level bucketed CDF sampling.
// Cumulative tables are built lazily and cached; Invalidate forces a
// rebuild after the pool or weight configuration changes.
type Sampler struct {
	pool *Pool
	cfg  *config.Config

	built     bool
	buckets   []bucket
	bucketCum []float64
	total     float64
}

// NewSampler creates a sampler over the pool using cfg's weights.
func NewSampler(pool *Pool, cfg *config.Config) *Sampler {
	return &Sampler{pool: pool, cfg: cfg}
}

// Invalidate drops the cached cumulative tables.
func (s *Sampler) Invalidate() { s.built = false }

// SetConfig swaps the weight configuration and invalidates the cache.
func (s *Sampler) SetConfig(cfg *config.Config) {
	s.cfg = cfg
	s.built = false
}

func (s *Sampler) entryWeight(e *Entry) float64 {
	hints := s.cfg.Sampler.HintWeights
	w := 1.0
	if h := e.Meta.ClassHint; h >= 1 && h <= len(hints) {
		w = hints[h-1]
	}
	if e.Meta.Family == FamilyDerived {
		w *= s.cfg.Pool.DerivedWeight
	}
	return w
}

func (s *Sampler) multiplier(m map[string]float64, key string) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return 1.0
}

func (s *Sampler) build() {
	s.buckets = s.buckets[:0]
	index := make(map[[2]string]int)

	for i := 0; i < s.pool.Len(); i++ {
		e := s.pool.Entry(i)
		key := [2]string{e.Meta.Family, e.Meta.Mapping.String()}
		bi, ok := index[key]
		if !ok {
			bi = len(s.buckets)
			index[key] = bi
			s.buckets = append(s.buckets, bucket{family: key[0], mapping: key[1]})
		}
		s.buckets[bi].entryIdx = append(s.buckets[bi].entryIdx, i)
	}

	// Deterministic bucket order regardless of pool iteration details.
	sort.Slice(s.buckets, func(a, b int) bool {
		if s.buckets[a].family != s.buckets[b].family {
			return s.buckets[a].family < s.buckets[b].family
		}
		return s.buckets[a].mapping < s.buckets[b].mapping
	})

	bucketWeights := make([]float64, len(s.buckets))
	for bi := range s.buckets {
		b := &s.buckets[bi]

		weights := make([]float64, len(b.entryIdx))
		for j, ei := range b.entryIdx {
			weights[j] = s.entryWeight(s.pool.Entry(ei))
		}
		b.cum = floats.CumSum(make([]float64, len(weights)), weights)
		b.total = b.cum[len(b.cum)-1]

		b.weight = math.Sqrt(float64(len(b.entryIdx))) *
			s.multiplier(s.cfg.Sampler.FamilyWeights, b.family) *
			s.multiplier(s.cfg.Sampler.MappingWeights, b.mapping)
		bucketWeights[bi] = b.weight
	}

	s.bucketCum = floats.CumSum(make([]float64, len(bucketWeights)), bucketWeights)
	s.total = 0
	if len(s.bucketCum) > 0 {
		s.total = s.bucketCum[len(s.bucketCum)-1]
	}
	s.built = true
}

// Sample draws one entry: a uniform draw binary-searched over the bucket
// cumulative table, then a second draw over that bucket's entry table.
// Reports false when the pool is empty; callers fall back to a simple
// generator.
func (s *Sampler) Sample(src Rand) (*Entry, bool) {
	if s.pool == nil || s.pool.Len() == 0 {
		return nil, false
	}
	if !s.built {
		s.build()
	}
	if s.total <= 0 {
		return nil, false
	}

	r := src.Float64() * s.total
	bi := sort.SearchFloat64s(s.bucketCum, r)
	if bi >= len(s.buckets) {
		bi = len(s.buckets) - 1
	}
	b := &s.buckets[bi]

	r2 := src.Float64() * b.total
	j := sort.SearchFloat64s(b.cum, r2)
	if j >= len(b.entryIdx) {
		j = len(b.entryIdx) - 1
	}
	return s.pool.Entry(b.entryIdx[j]), true
}

// BucketWeights exposes the normalized bucket weights keyed by
// "family/mapping". Used by tests and diagnostics.
func (s *Sampler) BucketWeights() map[string]float64 {
	if !s.built {
		s.build()
	}
	out := make(map[string]float64, len(s.buckets))
	if s.total <= 0 {
		return out
	}
	for _, b := range s.buckets {
		out[b.family+"/"+b.mapping] = b.weight / s.total
	}
	return out
}
