package calculation

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hteval/hteval/internal/domain"
)

// Budget impact defaults applied when the config leaves a field zero.
const (
	DefaultTargetPopulation  = 10000
	DefaultBudgetTimeHorizon = 5
)

// DefaultMarketUptake is the conventional five-year adoption ramp.
var DefaultMarketUptake = []decimal.Decimal{
	decimal.NewFromFloat(0.1),
	decimal.NewFromFloat(0.2),
	decimal.NewFromFloat(0.3),
	decimal.NewFromFloat(0.4),
	decimal.NewFromFloat(0.5),
}

// BudgetImpactCalculator projects treated population and net cost against a
// comparator across a multi-year horizon.
type BudgetImpactCalculator struct {
	log zerolog.Logger
}

// NewBudgetImpactCalculator creates a calculator that logs through the given
// logger
func NewBudgetImpactCalculator(log zerolog.Logger) *BudgetImpactCalculator {
	return &BudgetImpactCalculator{log: log}
}

// Calculate runs the projection. A non-BIA model is logged as a warning but
// still projected. For each year the uptake fraction comes from the uptake
// curve, holding the last value once the curve is exhausted; treated patients
// are the floor of population x uptake; per-patient cost is the sum of
// direct_medical parameter base values. The discounted net impact applies the
// model's discount rate with year one undiscounted.
func (bic *BudgetImpactCalculator) Calculate(model domain.EconomicModel, params map[string]domain.ModelParameter, cfg domain.BudgetImpactConfig) domain.BudgetImpactResult {
	if model.ModelType != domain.ModelTypeBIA {
		bic.log.Warn().
			Str("model_id", model.ID).
			Str("model_type", string(model.ModelType)).
			Msg("budget impact requested for a non budget-impact model")
	}

	if cfg.TargetPopulation <= 0 {
		cfg.TargetPopulation = DefaultTargetPopulation
	}
	if len(cfg.MarketUptake) == 0 {
		cfg.MarketUptake = append([]decimal.Decimal(nil), DefaultMarketUptake...)
	}
	if cfg.TimeHorizon <= 0 {
		cfg.TimeHorizon = DefaultBudgetTimeHorizon
	}

	costPerPatient := decimal.Zero
	for _, p := range params {
		if p.Category == domain.CategoryDirectMedical {
			costPerPatient = costPerPatient.Add(p.BaseValue)
		}
	}

	population := decimal.NewFromInt(cfg.TargetPopulation)
	one := decimal.NewFromInt(1)
	discountBase := one.Add(model.DiscountRate)

	result := domain.BudgetImpactResult{
		ModelID:    model.ID,
		Config:     cfg,
		Years:      make([]domain.AnnualBudgetImpact, 0, cfg.TimeHorizon),
		Currency:   model.Currency,
		AnalyzedAt: time.Now().UTC(),
	}

	for year := 1; year <= cfg.TimeHorizon; year++ {
		uptakeIndex := year - 1
		if uptakeIndex > len(cfg.MarketUptake)-1 {
			uptakeIndex = len(cfg.MarketUptake) - 1
		}
		uptake := cfg.MarketUptake[uptakeIndex]

		treated := population.Mul(uptake).IntPart()
		treatedDec := decimal.NewFromInt(treated)
		totalCost := costPerPatient.Mul(treatedDec)
		comparatorCost := cfg.ComparatorCostPerPatient.Mul(treatedDec)
		netImpact := totalCost.Sub(comparatorCost)

		result.Years = append(result.Years, domain.AnnualBudgetImpact{
			Year:            year,
			UptakeRate:      uptake,
			TreatedPatients: treated,
			CostPerPatient:  costPerPatient,
			TotalCost:       totalCost,
			ComparatorCost:  comparatorCost,
			NetImpact:       netImpact,
		})

		result.CumulativeCost = result.CumulativeCost.Add(totalCost)
		result.CumulativeComparatorCost = result.CumulativeComparatorCost.Add(comparatorCost)
		result.CumulativeNetImpact = result.CumulativeNetImpact.Add(netImpact)
		result.CumulativePatients += treated

		discountFactor := discountBase.Pow(decimal.NewFromInt(int64(year - 1)))
		result.DiscountedNetImpact = result.DiscountedNetImpact.Add(netImpact.Div(discountFactor))
	}

	if result.CumulativePatients > 0 {
		result.AverageCostPerPatient = result.CumulativeCost.Div(decimal.NewFromInt(result.CumulativePatients))
	}

	return result
}
