package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hteval/hteval/internal/domain"
	"github.com/hteval/hteval/internal/output"
)

var (
	budgetModel      string
	budgetPopulation int64
	budgetUptake     []float64
	budgetHorizon    int
	budgetComparator float64
	budgetFormat     string
)

var budgetCmd = &cobra.Command{
	Use:   "budget [portfolio-file]",
	Short: "Run a budget impact projection",
	Long: `Project treated population and net cost against a comparator across a
multi-year horizon. Uptake fractions beyond the end of the curve hold the
last value.

Examples:
  hteval budget portfolio.yaml
  hteval budget portfolio.yaml --population 25000 --uptake 0.05,0.15,0.3 --horizon 8
  hteval budget portfolio.yaml --comparator-cost 800 --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, portfolio, err := loadService(args[0])
		if err != nil {
			return err
		}

		modelID, err := resolveModelID(portfolio, budgetModel)
		if err != nil {
			return err
		}

		cfg := domain.BudgetImpactConfig{
			TargetPopulation:         budgetPopulation,
			TimeHorizon:              budgetHorizon,
			ComparatorCostPerPatient: decimal.NewFromFloat(budgetComparator),
		}
		uptakes, err := uptakeFromFlags(budgetUptake)
		if err != nil {
			return err
		}
		cfg.MarketUptake = uptakes

		// Fall back to the portfolio's budget config for unset fields.
		for i := range portfolio.Models {
			pm := &portfolio.Models[i]
			if pm.ID != modelID || pm.BudgetImpact == nil {
				continue
			}
			if cfg.TargetPopulation == 0 {
				cfg.TargetPopulation = pm.BudgetImpact.TargetPopulation
			}
			if len(cfg.MarketUptake) == 0 {
				cfg.MarketUptake = pm.BudgetImpact.MarketUptake
			}
			if cfg.TimeHorizon == 0 {
				cfg.TimeHorizon = pm.BudgetImpact.TimeHorizon
			}
			if cfg.ComparatorCostPerPatient.IsZero() {
				cfg.ComparatorCostPerPatient = pm.BudgetImpact.ComparatorCostPerPatient
			}
		}

		result, err := svc.CalculateBudgetImpact(modelID, cfg)
		if err != nil {
			return err
		}

		formatter, err := output.NewFormatter(budgetFormat)
		if err != nil {
			return err
		}
		rendered, err := formatter.BudgetImpact(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, rendered)
		return nil
	},
}

// uptakeFromFlags converts --uptake values, enforcing the same 0..1 range
// the portfolio validator applies to configured uptake curves.
func uptakeFromFlags(values []float64) ([]decimal.Decimal, error) {
	uptakes := make([]decimal.Decimal, 0, len(values))
	for i, v := range values {
		if v < 0 || v > 1 {
			return nil, fmt.Errorf("uptake %d (%v) must be between 0 and 1", i, v)
		}
		uptakes = append(uptakes, decimal.NewFromFloat(v))
	}
	return uptakes, nil
}

func init() {
	budgetCmd.Flags().StringVar(&budgetModel, "model", "", "Model id (default: first model in portfolio)")
	budgetCmd.Flags().Int64Var(&budgetPopulation, "population", 0, "Target population size")
	budgetCmd.Flags().Float64SliceVar(&budgetUptake, "uptake", nil, "Per-year market uptake fractions")
	budgetCmd.Flags().IntVar(&budgetHorizon, "horizon", 0, "Projection horizon in years")
	budgetCmd.Flags().Float64Var(&budgetComparator, "comparator-cost", 0, "Comparator cost per patient")
	budgetCmd.Flags().StringVar(&budgetFormat, "format", "console", "Output format (console, json, csv)")
	rootCmd.AddCommand(budgetCmd)
}
