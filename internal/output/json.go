package output

import (
	"encoding/json"

	"github.com/hteval/hteval/internal/domain"
)

// JSONFormatter renders results as indented JSON
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func marshal(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (JSONFormatter) BaseCase(result domain.BaseCaseResult) (string, error) {
	return marshal(result)
}

func (JSONFormatter) Sensitivity(result domain.SensitivityAnalysisResult) (string, error) {
	return marshal(result)
}

func (JSONFormatter) BudgetImpact(result domain.BudgetImpactResult) (string, error) {
	return marshal(result)
}

func (JSONFormatter) Statistics(stats domain.Statistics) (string, error) {
	return marshal(stats)
}
