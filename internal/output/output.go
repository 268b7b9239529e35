// Package output renders engine results for the CLI front-end in console,
// JSON and CSV form.
package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hteval/hteval/internal/domain"
)

// Formatter renders each result kind for one output target
type Formatter interface {
	Name() string
	BaseCase(result domain.BaseCaseResult) (string, error)
	Sensitivity(result domain.SensitivityAnalysisResult) (string, error)
	BudgetImpact(result domain.BudgetImpactResult) (string, error)
	Statistics(stats domain.Statistics) (string, error)
}

// NewFormatter returns the formatter for a format name
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "console", "":
		return ConsoleFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatMoney formats an amount with its currency code
func FormatMoney(amount decimal.Decimal, currency domain.Currency) string {
	return amount.StringFixed(2) + " " + string(currency)
}

// FormatOptional renders a possibly-undefined decimal, using fixed-point
// with the given places, or a dash when nil
func FormatOptional(value *decimal.Decimal, places int32) string {
	if value == nil {
		return "-"
	}
	return value.StringFixed(places)
}
