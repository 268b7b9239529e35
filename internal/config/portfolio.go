// Package config loads model portfolio files: YAML documents bundling
// economic models, their parameter sets, and optional analysis
// configurations. A portfolio that passes validation here also stores
// cleanly through the service layer, since the same domain rules apply.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/hteval/hteval/internal/domain"
)

// PortfolioModel is one model entry in a portfolio file, with its parameter
// set and optional pre-configured analyses.
type PortfolioModel struct {
	domain.EconomicModel `yaml:",inline"`

	Parameters   map[string]domain.ModelParameter `yaml:"parameters,omitempty"`
	Sensitivity  *domain.SensitivityConfig        `yaml:"sensitivity,omitempty"`
	BudgetImpact *domain.BudgetImpactConfig       `yaml:"budget_impact,omitempty"`
}

// Portfolio is the root of a portfolio file
type Portfolio struct {
	Models []PortfolioModel `yaml:"models"`
}

// PortfolioParser handles parsing of portfolio files
type PortfolioParser struct{}

// NewPortfolioParser creates a new portfolio parser
func NewPortfolioParser() *PortfolioParser {
	return &PortfolioParser{}
}

// LoadFromFile loads and validates a portfolio from a YAML file
func (pp *PortfolioParser) LoadFromFile(filename string) (*Portfolio, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var portfolio Portfolio
	if err := yaml.Unmarshal(data, &portfolio); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := pp.Validate(&portfolio); err != nil {
		return nil, fmt.Errorf("portfolio validation failed: %w", err)
	}

	return &portfolio, nil
}

// Validate checks every model and parameter in the portfolio against the
// domain invariants, plus portfolio-level constraints (at least one model,
// unique ids). Parameter names are filled in from their map keys.
func (pp *PortfolioParser) Validate(portfolio *Portfolio) error {
	if len(portfolio.Models) == 0 {
		return fmt.Errorf("no models provided")
	}

	seen := make(map[string]bool, len(portfolio.Models))
	for i := range portfolio.Models {
		pm := &portfolio.Models[i]

		if pm.ID != "" {
			if seen[pm.ID] {
				return fmt.Errorf("model %d: duplicate id %q", i, pm.ID)
			}
			seen[pm.ID] = true
		}

		if err := pm.EconomicModel.Validate(); err != nil {
			return fmt.Errorf("model %d (%s): %w", i, pm.Name, err)
		}

		for name, p := range pm.Parameters {
			if p.Name == "" {
				p.Name = name
				pm.Parameters[name] = p
			}
		}
		if err := domain.ValidateParameterSet(pm.Parameters); err != nil {
			return fmt.Errorf("model %d (%s): %w", i, pm.Name, err)
		}

		if pm.Sensitivity != nil {
			switch pm.Sensitivity.AnalysisType {
			case "", domain.AnalysisOneWay, domain.AnalysisProbabilistic:
			default:
				return fmt.Errorf("model %d (%s): unsupported analysis type %q", i, pm.Name, pm.Sensitivity.AnalysisType)
			}
		}

		if pm.BudgetImpact != nil {
			for j, uptake := range pm.BudgetImpact.MarketUptake {
				if uptake.IsNegative() || uptake.GreaterThan(oneDecimal) {
					return fmt.Errorf("model %d (%s): market uptake %d must be between 0 and 1", i, pm.Name, j)
				}
			}
		}
	}

	return nil
}

var oneDecimal = decimal.NewFromInt(1)
