package calculation

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hteval/hteval/internal/domain"
)

// Sampler draws parameter values from their configured distributions for
// probabilistic sensitivity analysis. A fixed seed makes a run reproducible.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler. A zero seed is replaced with the current
// time.
func NewSampler(seed int64) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Draw samples one value for the parameter:
//
//	normal  -> N(base_value, std_dev)
//	beta    -> Beta(alpha, beta), the usual parameterization for utilities
//	uniform -> U(min_value, max_value)
//	none    -> base_value, fixed
//
// Draws are truncated to [min_value, max_value] when bounds are set, the
// standard practice for keeping sampled utilities and probabilities in range.
func (s *Sampler) Draw(p domain.ModelParameter) decimal.Decimal {
	var value decimal.Decimal
	switch p.Distribution {
	case domain.DistributionNormal:
		noise := decimal.NewFromFloat(s.rng.NormFloat64()).Mul(*p.StdDev)
		value = p.BaseValue.Add(noise)
	case domain.DistributionBeta:
		value = decimal.NewFromFloat(s.betaSample(p.Alpha.InexactFloat64(), p.Beta.InexactFloat64()))
	case domain.DistributionUniform:
		span := p.MaxValue.Sub(*p.MinValue)
		value = p.MinValue.Add(span.Mul(decimal.NewFromFloat(s.rng.Float64())))
	default:
		return p.BaseValue
	}

	if p.MinValue != nil && value.LessThan(*p.MinValue) {
		value = *p.MinValue
	}
	if p.MaxValue != nil && value.GreaterThan(*p.MaxValue) {
		value = *p.MaxValue
	}
	return value
}

// betaSample draws from Beta(a, b) as X/(X+Y) with X~Gamma(a), Y~Gamma(b)
func (s *Sampler) betaSample(a, b float64) float64 {
	x := s.gammaSample(a)
	y := s.gammaSample(b)
	if x+y == 0 {
		return 0
	}
	return x / (x + y)
}

// gammaSample draws from Gamma(shape, 1) using Marsaglia-Tsang, with the
// standard shape<1 boost via a uniform power.
func (s *Sampler) gammaSample(shape float64) float64 {
	if shape < 1 {
		u := s.rng.Float64()
		return s.gammaSample(shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		x := s.rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := s.rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}
