package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalysisType identifies the kind of sensitivity analysis that produced a
// result set
type AnalysisType string

const (
	AnalysisOneWay         AnalysisType = "one_way"
	AnalysisProbabilistic  AnalysisType = "probabilistic"
	AnalysisBudgetScenario AnalysisType = "budget_scenario"
)

// BaseCaseResult is the deterministic evaluation of a model at its parameter
// base values. TotalEffect and ICER are nil when the model type does not
// produce them or the effect sums to zero.
type BaseCaseResult struct {
	ModelID        string           `json:"modelId"`
	ModelType      ModelType        `json:"modelType"`
	TotalCost      decimal.Decimal  `json:"totalCost"`
	TotalEffect    *decimal.Decimal `json:"totalEffect,omitempty"`
	ICER           *decimal.Decimal `json:"icer,omitempty"`
	Currency       Currency         `json:"currency"`
	TimeHorizon    TimeHorizon      `json:"timeHorizon"`
	ParameterCount int              `json:"parameterCount"`
	AnalyzedAt     time.Time        `json:"analyzedAt"`
}

// ScenarioRecord is one evaluated perturbation inside a sensitivity analysis
type ScenarioRecord struct {
	Parameter   string           `json:"parameter"`
	Variation   string           `json:"variation"`
	Value       decimal.Decimal  `json:"value"`
	TotalCost   decimal.Decimal  `json:"totalCost"`
	TotalEffect *decimal.Decimal `json:"totalEffect,omitempty"`
	ICER        *decimal.Decimal `json:"icer,omitempty"`
}

// TornadoEntry ranks one parameter's one-way impact by the spread of total
// cost between its low and high scenarios
type TornadoEntry struct {
	Parameter string          `json:"parameter"`
	LowValue  decimal.Decimal `json:"lowValue"`
	HighValue decimal.Decimal `json:"highValue"`
	LowCost   decimal.Decimal `json:"lowCost"`
	HighCost  decimal.Decimal `json:"highCost"`
	Spread    decimal.Decimal `json:"spread"`
}

// ProbabilisticSummary aggregates a probabilistic sensitivity analysis:
// central estimates, uncertainty bands, and the probability that the
// intervention is cost-effective at the willingness-to-pay threshold.
type ProbabilisticSummary struct {
	Iterations        int                        `json:"iterations"`
	MeanCost          decimal.Decimal            `json:"meanCost"`
	MeanEffect        decimal.Decimal            `json:"meanEffect"`
	CostPercentiles   map[string]decimal.Decimal `json:"costPercentiles"`
	EffectPercentiles map[string]decimal.Decimal `json:"effectPercentiles"`
	WTPThreshold      decimal.Decimal            `json:"wtpThreshold"`
	ProbCostEffective decimal.Decimal            `json:"probCostEffective"`
}

// SensitivityAnalysisResult is the immutable record of one analysis run. The
// base case is a snapshot taken at creation time, not a live reference.
type SensitivityAnalysisResult struct {
	ID               string                `json:"id"`
	ModelID          string                `json:"modelId"`
	AnalysisType     AnalysisType          `json:"analysisType"`
	ParametersVaried []string              `json:"parametersVaried,omitempty"`
	BaseCase         BaseCaseResult        `json:"baseCase"`
	Scenarios        []ScenarioRecord      `json:"scenarios"`
	Tornado          []TornadoEntry        `json:"tornado,omitempty"`
	Probabilistic    *ProbabilisticSummary `json:"probabilistic,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
}

// SensitivityConfig configures a sensitivity analysis run
type SensitivityConfig struct {
	AnalysisType AnalysisType     `yaml:"analysis_type" json:"analysisType"`
	Parameters   []string         `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Iterations   int              `yaml:"iterations,omitempty" json:"iterations,omitempty"`
	Seed         int64            `yaml:"seed,omitempty" json:"seed,omitempty"`
	WTPThreshold *decimal.Decimal `yaml:"wtp_threshold,omitempty" json:"wtpThreshold,omitempty"`
}

// BudgetImpactConfig configures a budget impact projection. Zero values fall
// back to the conventional defaults (10k population, 10-50% uptake ramp,
// five years).
type BudgetImpactConfig struct {
	TargetPopulation         int64             `yaml:"target_population,omitempty" json:"targetPopulation,omitempty"`
	MarketUptake             []decimal.Decimal `yaml:"market_uptake,omitempty" json:"marketUptake,omitempty"`
	TimeHorizon              int               `yaml:"time_horizon,omitempty" json:"timeHorizon,omitempty"`
	ComparatorCostPerPatient decimal.Decimal   `yaml:"comparator_cost_per_patient,omitempty" json:"comparatorCostPerPatient,omitempty"`
}

// AnnualBudgetImpact is the projection for a single year of the horizon
type AnnualBudgetImpact struct {
	Year            int             `json:"year"`
	UptakeRate      decimal.Decimal `json:"uptakeRate"`
	TreatedPatients int64           `json:"treatedPatients"`
	CostPerPatient  decimal.Decimal `json:"costPerPatient"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	ComparatorCost  decimal.Decimal `json:"comparatorCost"`
	NetImpact       decimal.Decimal `json:"netImpact"`
}

// BudgetImpactResult is the full multi-year projection with cumulative
// aggregates. DiscountedNetImpact applies the model's discount rate with
// year one undiscounted.
type BudgetImpactResult struct {
	ModelID                  string               `json:"modelId"`
	Config                   BudgetImpactConfig   `json:"config"`
	Years                    []AnnualBudgetImpact `json:"years"`
	CumulativeCost           decimal.Decimal      `json:"cumulativeCost"`
	CumulativeComparatorCost decimal.Decimal      `json:"cumulativeComparatorCost"`
	CumulativeNetImpact      decimal.Decimal      `json:"cumulativeNetImpact"`
	DiscountedNetImpact      decimal.Decimal      `json:"discountedNetImpact"`
	CumulativePatients       int64                `json:"cumulativePatients"`
	AverageCostPerPatient    decimal.Decimal      `json:"averageCostPerPatient"`
	Currency                 Currency             `json:"currency"`
	AnalyzedAt               time.Time            `json:"analyzedAt"`
}

// Statistics summarizes the engine's stored state
type Statistics struct {
	TotalModels               int               `json:"totalModels"`
	ByType                    map[ModelType]int `json:"byType"`
	ByCurrency                map[Currency]int  `json:"byCurrency"`
	TotalParameters           int               `json:"totalParameters"`
	AverageParametersPerModel decimal.Decimal   `json:"averageParametersPerModel"`
	SensitivityAnalyses       int               `json:"sensitivityAnalyses"`
}
