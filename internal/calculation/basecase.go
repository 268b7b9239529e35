// Package calculation implements the health-economics engine: deterministic
// base-case evaluation, one-way and probabilistic sensitivity analysis, and
// multi-year budget impact projection. Everything here is a pure function of
// the model and parameters passed in; persistence and existence checks live
// in the service layer.
package calculation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hteval/hteval/internal/domain"
)

// BaseCaseCalculator evaluates a model at its parameter base values
type BaseCaseCalculator struct{}

// NewBaseCaseCalculator creates a base case calculator
func NewBaseCaseCalculator() *BaseCaseCalculator {
	return &BaseCaseCalculator{}
}

// Run computes total cost, total effect and ICER for the model type.
//
// Cost and effect aggregation by model type:
//   - cost-effectiveness: cost sums direct_medical parameters; effect sums
//     parameters named qaly*.
//   - cost-utility: cost sums direct_medical and direct_non_medical; effect
//     sums utility* parameters multiplied by the time horizon in years.
//   - budget_impact: cost sums every parameter whose name contains "cost";
//     no effect is computed.
//
// The ICER is cost/effect and only defined for CEA and CUA models with a
// positive effect; otherwise it is nil, which is a valid outcome rather than
// an error.
func (bc *BaseCaseCalculator) Run(model domain.EconomicModel, params map[string]domain.ModelParameter) domain.BaseCaseResult {
	totalCost := decimal.Zero
	totalEffect := decimal.Zero

	switch model.ModelType {
	case domain.ModelTypeCEA:
		for _, p := range params {
			if p.Category == domain.CategoryDirectMedical {
				totalCost = totalCost.Add(p.BaseValue)
			}
			if strings.HasPrefix(strings.ToLower(p.Name), "qaly") {
				totalEffect = totalEffect.Add(p.BaseValue)
			}
		}
	case domain.ModelTypeCUA:
		years := model.TimeHorizon.EffectYears()
		for _, p := range params {
			if p.Category == domain.CategoryDirectMedical || p.Category == domain.CategoryDirectNonMedical {
				totalCost = totalCost.Add(p.BaseValue)
			}
			if strings.HasPrefix(strings.ToLower(p.Name), "utility") {
				totalEffect = totalEffect.Add(p.BaseValue.Mul(years))
			}
		}
	case domain.ModelTypeBIA:
		for _, p := range params {
			if strings.Contains(strings.ToLower(p.Name), "cost") {
				totalCost = totalCost.Add(p.BaseValue)
			}
		}
	}

	result := domain.BaseCaseResult{
		ModelID:        model.ID,
		ModelType:      model.ModelType,
		TotalCost:      totalCost,
		Currency:       model.Currency,
		TimeHorizon:    model.TimeHorizon,
		ParameterCount: len(params),
		AnalyzedAt:     time.Now().UTC(),
	}

	if totalEffect.IsPositive() {
		effect := totalEffect
		result.TotalEffect = &effect
		if model.ModelType == domain.ModelTypeCEA || model.ModelType == domain.ModelTypeCUA {
			icer := totalCost.Div(totalEffect)
			result.ICER = &icer
		}
	}

	return result
}
