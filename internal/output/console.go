package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hteval/hteval/internal/domain"
)

// ConsoleFormatter renders plain-text tables for terminal output
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

// BaseCase renders the deterministic result block
func (cf ConsoleFormatter) BaseCase(result domain.BaseCaseResult) (string, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "BASE CASE ANALYSIS: %s\n", result.ModelID)
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintf(&buf, "Model type:    %s\n", result.ModelType)
	fmt.Fprintf(&buf, "Time horizon:  %s\n", result.TimeHorizon)
	fmt.Fprintf(&buf, "Total cost:    %s\n", FormatMoney(result.TotalCost, result.Currency))
	fmt.Fprintf(&buf, "Total effect:  %s\n", FormatOptional(result.TotalEffect, 3))
	if result.ICER != nil {
		fmt.Fprintf(&buf, "ICER:          %s per effect unit\n", FormatMoney(*result.ICER, result.Currency))
	} else {
		fmt.Fprintf(&buf, "ICER:          not defined\n")
	}
	fmt.Fprintf(&buf, "Parameters:    %d\n", result.ParameterCount)

	return buf.String(), nil
}

// Sensitivity renders the tornado table for one-way runs and the uncertainty
// summary for probabilistic runs, followed by the scenario list
func (cf ConsoleFormatter) Sensitivity(result domain.SensitivityAnalysisResult) (string, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s (%s)\n", result.ModelID, result.AnalysisType)
	fmt.Fprintln(&buf, strings.Repeat("=", 65))
	fmt.Fprintf(&buf, "Base case cost: %s   effect: %s   ICER: %s\n\n",
		FormatMoney(result.BaseCase.TotalCost, result.BaseCase.Currency),
		FormatOptional(result.BaseCase.TotalEffect, 3),
		FormatOptional(result.BaseCase.ICER, 2))

	if len(result.Tornado) > 0 {
		fmt.Fprintln(&buf, "TORNADO (cost spread, largest first)")
		fmt.Fprintf(&buf, "%-28s %14s %14s %14s\n", "Parameter", "Low cost", "High cost", "Spread")
		for _, entry := range result.Tornado {
			fmt.Fprintf(&buf, "%-28s %14s %14s %14s\n",
				entry.Parameter,
				entry.LowCost.StringFixed(2),
				entry.HighCost.StringFixed(2),
				entry.Spread.StringFixed(2))
		}
		fmt.Fprintln(&buf)
	}

	if result.Probabilistic != nil {
		p := result.Probabilistic
		fmt.Fprintf(&buf, "PROBABILISTIC SUMMARY (%d iterations)\n", p.Iterations)
		fmt.Fprintf(&buf, "Mean cost:    %s\n", FormatMoney(p.MeanCost, result.BaseCase.Currency))
		fmt.Fprintf(&buf, "Mean effect:  %s\n", p.MeanEffect.StringFixed(3))
		fmt.Fprintf(&buf, "Cost 95%% CrI: %s to %s\n",
			p.CostPercentiles["2.5th"].StringFixed(2),
			p.CostPercentiles["97.5th"].StringFixed(2))
		fmt.Fprintf(&buf, "P(cost-effective at %s): %s%%\n",
			FormatMoney(p.WTPThreshold, result.BaseCase.Currency),
			p.ProbCostEffective.Mul(decimal.NewFromInt(100)).StringFixed(1))
		fmt.Fprintln(&buf)
	}

	if result.AnalysisType == domain.AnalysisOneWay && len(result.Scenarios) > 0 {
		fmt.Fprintln(&buf, "SCENARIOS")
		fmt.Fprintf(&buf, "%-28s %-6s %14s %14s %12s\n", "Parameter", "Var", "Value", "Cost", "ICER")
		for _, s := range result.Scenarios {
			fmt.Fprintf(&buf, "%-28s %-6s %14s %14s %12s\n",
				s.Parameter, s.Variation,
				s.Value.StringFixed(2),
				s.TotalCost.StringFixed(2),
				FormatOptional(s.ICER, 2))
		}
	}

	return buf.String(), nil
}

// BudgetImpact renders the year table and cumulative block
func (cf ConsoleFormatter) BudgetImpact(result domain.BudgetImpactResult) (string, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "BUDGET IMPACT: %s\n", result.ModelID)
	fmt.Fprintln(&buf, strings.Repeat("=", 78))
	fmt.Fprintf(&buf, "Population: %d   Horizon: %d years\n\n", result.Config.TargetPopulation, result.Config.TimeHorizon)

	fmt.Fprintf(&buf, "%4s %8s %10s %16s %16s %16s\n", "Year", "Uptake", "Treated", "Cost", "Comparator", "Net impact")
	for _, year := range result.Years {
		fmt.Fprintf(&buf, "%4d %7s%% %10d %16s %16s %16s\n",
			year.Year,
			year.UptakeRate.Mul(decimal.NewFromInt(100)).StringFixed(1),
			year.TreatedPatients,
			year.TotalCost.StringFixed(2),
			year.ComparatorCost.StringFixed(2),
			year.NetImpact.StringFixed(2))
	}

	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Cumulative cost:       %s\n", FormatMoney(result.CumulativeCost, result.Currency))
	fmt.Fprintf(&buf, "Cumulative net impact: %s\n", FormatMoney(result.CumulativeNetImpact, result.Currency))
	fmt.Fprintf(&buf, "Discounted net impact: %s\n", FormatMoney(result.DiscountedNetImpact, result.Currency))
	fmt.Fprintf(&buf, "Patients treated:      %d\n", result.CumulativePatients)
	fmt.Fprintf(&buf, "Avg cost per patient:  %s\n", FormatMoney(result.AverageCostPerPatient, result.Currency))

	return buf.String(), nil
}

// Statistics renders the store summary
func (cf ConsoleFormatter) Statistics(stats domain.Statistics) (string, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "ENGINE STATISTICS")
	fmt.Fprintln(&buf, strings.Repeat("=", 40))
	fmt.Fprintf(&buf, "Models:               %d\n", stats.TotalModels)
	types := make([]string, 0, len(stats.ByType))
	for modelType := range stats.ByType {
		types = append(types, string(modelType))
	}
	sort.Strings(types)
	for _, modelType := range types {
		fmt.Fprintf(&buf, "  %-20s%d\n", modelType, stats.ByType[domain.ModelType(modelType)])
	}
	fmt.Fprintf(&buf, "Parameters:           %d\n", stats.TotalParameters)
	fmt.Fprintf(&buf, "Avg per model:        %s\n", stats.AverageParametersPerModel.StringFixed(1))
	fmt.Fprintf(&buf, "Sensitivity analyses: %d\n", stats.SensitivityAnalyses)

	return buf.String(), nil
}
