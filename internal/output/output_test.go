package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hteval/hteval/internal/domain"
)

func sampleBaseCase() domain.BaseCaseResult {
	effect := decimal.NewFromFloat(0.5)
	icer := decimal.NewFromInt(2000)
	return domain.BaseCaseResult{
		ModelID:        "cea_1",
		ModelType:      domain.ModelTypeCEA,
		TotalCost:      decimal.NewFromInt(1000),
		TotalEffect:    &effect,
		ICER:           &icer,
		Currency:       domain.CurrencyUSD,
		TimeHorizon:    5,
		ParameterCount: 2,
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format string
		name   string
	}{
		{"console", "console"},
		{"", "console"},
		{"json", "json"},
		{"csv", "csv"},
	}
	for _, tt := range tests {
		f, err := NewFormatter(tt.format)
		require.NoError(t, err, "Format %q should be supported", tt.format)
		assert.Equal(t, tt.name, f.Name())
	}

	_, err := NewFormatter("xml")
	assert.Error(t, err)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1234.50 USD", FormatMoney(decimal.NewFromFloat(1234.5), domain.CurrencyUSD))
}

func TestFormatOptional(t *testing.T) {
	assert.Equal(t, "-", FormatOptional(nil, 2))
	v := decimal.NewFromFloat(0.5)
	assert.Equal(t, "0.50", FormatOptional(&v, 2))
}

func TestConsoleBaseCase(t *testing.T) {
	out, err := ConsoleFormatter{}.BaseCase(sampleBaseCase())
	require.NoError(t, err)

	assert.Contains(t, out, "BASE CASE ANALYSIS: cea_1")
	assert.Contains(t, out, "1000.00 USD")
	assert.Contains(t, out, "2000.00 USD per effect unit")
}

func TestConsoleBaseCaseNilICER(t *testing.T) {
	result := sampleBaseCase()
	result.TotalEffect = nil
	result.ICER = nil

	out, err := ConsoleFormatter{}.BaseCase(result)
	require.NoError(t, err)

	assert.Contains(t, out, "ICER:          not defined")
	assert.Contains(t, out, "Total effect:  -")
}

func TestConsoleSensitivityTornado(t *testing.T) {
	result := domain.SensitivityAnalysisResult{
		ModelID:      "cea_1",
		AnalysisType: domain.AnalysisOneWay,
		BaseCase:     sampleBaseCase(),
		Scenarios: []domain.ScenarioRecord{
			{Parameter: "drug_cost", Variation: "low", Value: decimal.NewFromInt(800), TotalCost: decimal.NewFromInt(800)},
			{Parameter: "drug_cost", Variation: "high", Value: decimal.NewFromInt(1200), TotalCost: decimal.NewFromInt(1200)},
		},
		Tornado: []domain.TornadoEntry{
			{Parameter: "drug_cost", LowCost: decimal.NewFromInt(800), HighCost: decimal.NewFromInt(1200), Spread: decimal.NewFromInt(400)},
		},
	}

	out, err := ConsoleFormatter{}.Sensitivity(result)
	require.NoError(t, err)

	assert.Contains(t, out, "TORNADO")
	assert.Contains(t, out, "drug_cost")
	assert.Contains(t, out, "400.00")
	assert.Contains(t, out, "SCENARIOS")
}

func TestConsoleSensitivityProbabilistic(t *testing.T) {
	result := domain.SensitivityAnalysisResult{
		ModelID:      "cea_1",
		AnalysisType: domain.AnalysisProbabilistic,
		BaseCase:     sampleBaseCase(),
		Probabilistic: &domain.ProbabilisticSummary{
			Iterations: 100,
			MeanCost:   decimal.NewFromInt(1010),
			MeanEffect: decimal.NewFromFloat(0.49),
			CostPercentiles: map[string]decimal.Decimal{
				"2.5th": decimal.NewFromInt(820), "97.5th": decimal.NewFromInt(1190),
			},
			WTPThreshold:      decimal.NewFromInt(50000),
			ProbCostEffective: decimal.NewFromFloat(0.97),
		},
	}

	out, err := ConsoleFormatter{}.Sensitivity(result)
	require.NoError(t, err)

	assert.Contains(t, out, "PROBABILISTIC SUMMARY (100 iterations)")
	assert.Contains(t, out, "820.00 to 1190.00")
	assert.Contains(t, out, "97.0%")
	assert.NotContains(t, out, "SCENARIOS", "Probabilistic output should omit the per-iteration table")
}

func TestConsoleBudgetImpact(t *testing.T) {
	result := domain.BudgetImpactResult{
		ModelID: "bia_1",
		Config:  domain.BudgetImpactConfig{TargetPopulation: 10000, TimeHorizon: 2},
		Years: []domain.AnnualBudgetImpact{
			{Year: 1, UptakeRate: decimal.NewFromFloat(0.1), TreatedPatients: 1000, TotalCost: decimal.NewFromInt(600000), NetImpact: decimal.NewFromInt(600000)},
			{Year: 2, UptakeRate: decimal.NewFromFloat(0.2), TreatedPatients: 2000, TotalCost: decimal.NewFromInt(1200000), NetImpact: decimal.NewFromInt(1200000)},
		},
		CumulativeCost:        decimal.NewFromInt(1800000),
		CumulativeNetImpact:   decimal.NewFromInt(1800000),
		DiscountedNetImpact:   decimal.NewFromInt(1771428),
		CumulativePatients:    3000,
		AverageCostPerPatient: decimal.NewFromInt(600),
		Currency:              domain.CurrencyUSD,
	}

	out, err := ConsoleFormatter{}.BudgetImpact(result)
	require.NoError(t, err)

	assert.Contains(t, out, "BUDGET IMPACT: bia_1")
	assert.Contains(t, out, "Population: 10000")
	assert.Contains(t, out, "1800000.00 USD")
	assert.Contains(t, out, "Patients treated:      3000")
}

func TestConsoleStatisticsDeterministic(t *testing.T) {
	stats := domain.Statistics{
		TotalModels: 3,
		ByType: map[domain.ModelType]int{
			domain.ModelTypeCEA: 2,
			domain.ModelTypeBIA: 1,
		},
		TotalParameters:           6,
		AverageParametersPerModel: decimal.NewFromInt(2),
		SensitivityAnalyses:       1,
	}

	first, err := ConsoleFormatter{}.Statistics(stats)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ConsoleFormatter{}.Statistics(stats)
		require.NoError(t, err)
		assert.Equal(t, first, again, "Statistics output should be deterministic across runs")
	}
	assert.Contains(t, first, "budget_impact")
	assert.Contains(t, first, "cost_effectiveness")
}

func TestJSONBaseCaseRoundTrips(t *testing.T) {
	out, err := JSONFormatter{}.BaseCase(sampleBaseCase())
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "cea_1", decoded["modelId"])
	assert.Equal(t, "cost_effectiveness", decoded["modelType"])
}

func TestJSONLifetimeHorizon(t *testing.T) {
	result := sampleBaseCase()
	result.TimeHorizon = domain.Lifetime

	out, err := JSONFormatter{}.BaseCase(result)
	require.NoError(t, err)
	assert.Contains(t, out, `"lifetime"`)
}

func TestCSVBaseCase(t *testing.T) {
	out, err := CSVFormatter{}.BaseCase(sampleBaseCase())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2, "Header plus one data row")
	assert.Contains(t, lines[0], "model_id")
	assert.Contains(t, lines[1], "cea_1")
	assert.Contains(t, lines[1], "1000")
}

func TestCSVBudgetImpactRowPerYear(t *testing.T) {
	result := domain.BudgetImpactResult{
		Years: []domain.AnnualBudgetImpact{
			{Year: 1, UptakeRate: decimal.NewFromFloat(0.1), TreatedPatients: 1000},
			{Year: 2, UptakeRate: decimal.NewFromFloat(0.2), TreatedPatients: 2000},
			{Year: 3, UptakeRate: decimal.NewFromFloat(0.3), TreatedPatients: 3000},
		},
	}

	out, err := CSVFormatter{}.BudgetImpact(result)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4, "Header plus one row per year")
}
