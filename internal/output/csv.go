package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/hteval/hteval/internal/domain"
)

// CSVFormatter renders results as comma-separated rows for spreadsheet
// import
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func writeRows(rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	w.Flush()
	return buf.String(), w.Error()
}

func (CSVFormatter) BaseCase(result domain.BaseCaseResult) (string, error) {
	rows := [][]string{
		{"model_id", "model_type", "total_cost", "total_effect", "icer", "currency", "time_horizon", "parameters"},
		{
			result.ModelID,
			string(result.ModelType),
			result.TotalCost.String(),
			FormatOptional(result.TotalEffect, 6),
			FormatOptional(result.ICER, 6),
			string(result.Currency),
			result.TimeHorizon.String(),
			strconv.Itoa(result.ParameterCount),
		},
	}
	return writeRows(rows)
}

func (CSVFormatter) Sensitivity(result domain.SensitivityAnalysisResult) (string, error) {
	rows := [][]string{{"parameter", "variation", "value", "total_cost", "total_effect", "icer"}}
	for _, s := range result.Scenarios {
		rows = append(rows, []string{
			s.Parameter,
			s.Variation,
			s.Value.String(),
			s.TotalCost.String(),
			FormatOptional(s.TotalEffect, 6),
			FormatOptional(s.ICER, 6),
		})
	}
	return writeRows(rows)
}

func (CSVFormatter) BudgetImpact(result domain.BudgetImpactResult) (string, error) {
	rows := [][]string{{"year", "uptake_rate", "treated_patients", "cost_per_patient", "total_cost", "comparator_cost", "net_impact"}}
	for _, year := range result.Years {
		rows = append(rows, []string{
			strconv.Itoa(year.Year),
			year.UptakeRate.String(),
			strconv.FormatInt(year.TreatedPatients, 10),
			year.CostPerPatient.String(),
			year.TotalCost.String(),
			year.ComparatorCost.String(),
			year.NetImpact.String(),
		})
	}
	return writeRows(rows)
}

func (CSVFormatter) Statistics(stats domain.Statistics) (string, error) {
	rows := [][]string{
		{"metric", "value"},
		{"total_models", strconv.Itoa(stats.TotalModels)},
		{"total_parameters", strconv.Itoa(stats.TotalParameters)},
		{"average_parameters_per_model", stats.AverageParametersPerModel.String()},
		{"sensitivity_analyses", strconv.Itoa(stats.SensitivityAnalyses)},
	}
	types := make([]string, 0, len(stats.ByType))
	for modelType := range stats.ByType {
		types = append(types, string(modelType))
	}
	sort.Strings(types)
	for _, modelType := range types {
		rows = append(rows, []string{"models_" + modelType, strconv.Itoa(stats.ByType[domain.ModelType(modelType)])})
	}
	return writeRows(rows)
}
