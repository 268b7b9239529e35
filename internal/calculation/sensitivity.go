package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hteval/hteval/internal/domain"
)

// MaxProbabilisticIterations caps the number of recorded draws per
// probabilistic run; each draw stores a full scenario record.
const MaxProbabilisticIterations = 100

// DefaultProbabilisticIterations is used when the config does not request a
// specific iteration count.
const DefaultProbabilisticIterations = 1000

// DefaultWTPThreshold is the willingness-to-pay threshold per effect unit
// used for the cost-effectiveness probability when none is configured.
var DefaultWTPThreshold = decimal.NewFromInt(50000)

var lowHighFactors = struct{ low, high decimal.Decimal }{
	low:  decimal.NewFromFloat(0.8),
	high: decimal.NewFromFloat(1.2),
}

// SensitivityAnalyzer perturbs model parameters and re-runs the base case
// for each scenario. One-way analysis substitutes a single parameter at a
// time; probabilistic analysis draws every parameter from its distribution.
type SensitivityAnalyzer struct {
	basecase *BaseCaseCalculator
}

// NewSensitivityAnalyzer creates an analyzer backed by a fresh base case
// calculator
func NewSensitivityAnalyzer() *SensitivityAnalyzer {
	return &SensitivityAnalyzer{basecase: NewBaseCaseCalculator()}
}

// Run dispatches on the configured analysis type and returns the immutable
// result record. An empty analysis type defaults to one-way.
func (sa *SensitivityAnalyzer) Run(model domain.EconomicModel, params map[string]domain.ModelParameter, cfg domain.SensitivityConfig) (domain.SensitivityAnalysisResult, error) {
	switch cfg.AnalysisType {
	case domain.AnalysisOneWay, "":
		return sa.runOneWay(model, params, cfg), nil
	case domain.AnalysisProbabilistic:
		return sa.runProbabilistic(model, params, cfg), nil
	default:
		return domain.SensitivityAnalysisResult{}, fmt.Errorf("unsupported analysis type %q", cfg.AnalysisType)
	}
}

// runOneWay builds a low and a high scenario per parameter. Explicit
// min/max bounds are used when present, otherwise base value +/- 20%. Each
// scenario re-runs the full base case with the single parameter substituted,
// so effect contributions of non-cost parameters are re-derived rather than
// approximated.
func (sa *SensitivityAnalyzer) runOneWay(model domain.EconomicModel, params map[string]domain.ModelParameter, cfg domain.SensitivityConfig) domain.SensitivityAnalysisResult {
	base := sa.basecase.Run(model, params)

	names := cfg.Parameters
	if len(names) == 0 {
		names = sortedNames(params)
	}

	result := domain.SensitivityAnalysisResult{
		ID:           "sa_" + uuid.NewString(),
		ModelID:      model.ID,
		AnalysisType: domain.AnalysisOneWay,
		BaseCase:     base,
		Scenarios:    []domain.ScenarioRecord{},
		CreatedAt:    time.Now().UTC(),
	}

	for _, name := range names {
		p, ok := params[name]
		if !ok {
			continue
		}
		result.ParametersVaried = append(result.ParametersVaried, name)

		low := p.BaseValue.Mul(lowHighFactors.low)
		high := p.BaseValue.Mul(lowHighFactors.high)
		if p.MinValue != nil {
			low = *p.MinValue
		}
		if p.MaxValue != nil {
			high = *p.MaxValue
		}

		lowRec := sa.rescore(model, params, name, "low", low)
		highRec := sa.rescore(model, params, name, "high", high)
		result.Scenarios = append(result.Scenarios, lowRec, highRec)

		result.Tornado = append(result.Tornado, domain.TornadoEntry{
			Parameter: name,
			LowValue:  low,
			HighValue: high,
			LowCost:   lowRec.TotalCost,
			HighCost:  highRec.TotalCost,
			Spread:    highRec.TotalCost.Sub(lowRec.TotalCost).Abs(),
		})
	}

	sort.SliceStable(result.Tornado, func(i, j int) bool {
		return result.Tornado[i].Spread.GreaterThan(result.Tornado[j].Spread)
	})

	return result
}

// rescore re-runs the base case with one parameter pinned to a test value
func (sa *SensitivityAnalyzer) rescore(model domain.EconomicModel, params map[string]domain.ModelParameter, name, variation string, value decimal.Decimal) domain.ScenarioRecord {
	varied := make(map[string]domain.ModelParameter, len(params))
	for k, p := range params {
		varied[k] = p
	}
	p := varied[name]
	p.BaseValue = value
	varied[name] = p

	scored := sa.basecase.Run(model, varied)
	return domain.ScenarioRecord{
		Parameter:   name,
		Variation:   variation,
		Value:       value,
		TotalCost:   scored.TotalCost,
		TotalEffect: scored.TotalEffect,
		ICER:        scored.ICER,
	}
}

// runProbabilistic draws every parameter from its configured distribution
// and re-runs the base case per draw. Parameters without a distribution stay
// at their base value. The summary reports central estimates, credible
// bands, and the share of draws that are cost-effective at the
// willingness-to-pay threshold.
func (sa *SensitivityAnalyzer) runProbabilistic(model domain.EconomicModel, params map[string]domain.ModelParameter, cfg domain.SensitivityConfig) domain.SensitivityAnalysisResult {
	base := sa.basecase.Run(model, params)

	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = DefaultProbabilisticIterations
	}
	if iterations > MaxProbabilisticIterations {
		iterations = MaxProbabilisticIterations
	}

	wtp := DefaultWTPThreshold
	if cfg.WTPThreshold != nil {
		wtp = *cfg.WTPThreshold
	}

	sampler := NewSampler(cfg.Seed)
	names := sortedNames(params)

	result := domain.SensitivityAnalysisResult{
		ID:           "sa_" + uuid.NewString(),
		ModelID:      model.ID,
		AnalysisType: domain.AnalysisProbabilistic,
		BaseCase:     base,
		Scenarios:    make([]domain.ScenarioRecord, 0, iterations),
		CreatedAt:    time.Now().UTC(),
	}

	costs := make([]decimal.Decimal, 0, iterations)
	effects := make([]decimal.Decimal, 0, iterations)
	costEffective := 0

	for i := 0; i < iterations; i++ {
		drawn := make(map[string]domain.ModelParameter, len(params))
		// Draw in sorted name order so a fixed seed reproduces the run.
		for _, name := range names {
			p := params[name]
			p.BaseValue = sampler.Draw(p)
			drawn[name] = p
		}

		scored := sa.basecase.Run(model, drawn)
		result.Scenarios = append(result.Scenarios, domain.ScenarioRecord{
			Parameter:   "all",
			Variation:   fmt.Sprintf("iteration_%03d", i+1),
			TotalCost:   scored.TotalCost,
			TotalEffect: scored.TotalEffect,
			ICER:        scored.ICER,
		})

		costs = append(costs, scored.TotalCost)
		effect := decimal.Zero
		if scored.TotalEffect != nil {
			effect = *scored.TotalEffect
		}
		effects = append(effects, effect)

		// Net monetary benefit: wtp*effect - cost >= 0.
		if wtp.Mul(effect).Sub(scored.TotalCost).Sign() >= 0 {
			costEffective++
		}
	}

	result.Probabilistic = &domain.ProbabilisticSummary{
		Iterations:        iterations,
		MeanCost:          mean(costs),
		MeanEffect:        mean(effects),
		WTPThreshold:      wtp,
		ProbCostEffective: decimal.NewFromInt(int64(costEffective)).Div(decimal.NewFromInt(int64(iterations))),
		CostPercentiles:   percentiles(costs),
		EffectPercentiles: percentiles(effects),
	}

	return result
}

func sortedNames(params map[string]domain.ModelParameter) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
