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
	sensitivityModel      string
	sensitivityType       string
	sensitivityParameters []string
	sensitivityIterations int
	sensitivitySeed       int64
	sensitivityWTP        float64
	sensitivityFormat     string
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [portfolio-file]",
	Short: "Run a sensitivity analysis",
	Long: `Test how robust a model's results are to parameter changes.

One-way analysis perturbs each parameter to its low and high bound (explicit
min/max, or +/- 20% of the base value) and re-scores the model. Probabilistic
analysis draws every parameter from its configured distribution per iteration.

Examples:
  hteval sensitivity portfolio.yaml --parameters drug_cost,admin_cost
  hteval sensitivity portfolio.yaml --type probabilistic --iterations 100 --seed 42
  hteval sensitivity portfolio.yaml --type probabilistic --wtp 30000 --format csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, portfolio, err := loadService(args[0])
		if err != nil {
			return err
		}

		modelID, err := resolveModelID(portfolio, sensitivityModel)
		if err != nil {
			return err
		}

		cfg := domain.SensitivityConfig{
			AnalysisType: domain.AnalysisType(sensitivityType),
			Parameters:   sensitivityParameters,
			Iterations:   sensitivityIterations,
			Seed:         sensitivitySeed,
		}
		if cmd.Flags().Changed("wtp") {
			wtp := decimal.NewFromFloat(sensitivityWTP)
			cfg.WTPThreshold = &wtp
		}

		// Portfolio-level sensitivity config fills in anything the flags
		// left unset.
		for i := range portfolio.Models {
			pm := &portfolio.Models[i]
			if pm.ID != modelID || pm.Sensitivity == nil {
				continue
			}
			if cfg.AnalysisType == "" {
				cfg.AnalysisType = pm.Sensitivity.AnalysisType
			}
			if len(cfg.Parameters) == 0 {
				cfg.Parameters = pm.Sensitivity.Parameters
			}
			if cfg.Iterations == 0 {
				cfg.Iterations = pm.Sensitivity.Iterations
			}
			if cfg.Seed == 0 {
				cfg.Seed = pm.Sensitivity.Seed
			}
			if cfg.WTPThreshold == nil {
				cfg.WTPThreshold = pm.Sensitivity.WTPThreshold
			}
		}

		result, err := svc.RunSensitivityAnalysis(modelID, cfg)
		if err != nil {
			return err
		}

		formatter, err := output.NewFormatter(sensitivityFormat)
		if err != nil {
			return err
		}
		rendered, err := formatter.Sensitivity(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, rendered)
		return nil
	},
}

func init() {
	sensitivityCmd.Flags().StringVar(&sensitivityModel, "model", "", "Model id (default: first model in portfolio)")
	sensitivityCmd.Flags().StringVar(&sensitivityType, "type", "", "Analysis type (one_way, probabilistic)")
	sensitivityCmd.Flags().StringSliceVar(&sensitivityParameters, "parameters", nil, "Parameters to vary (default: all)")
	sensitivityCmd.Flags().IntVar(&sensitivityIterations, "iterations", 0, "Probabilistic iterations")
	sensitivityCmd.Flags().Int64Var(&sensitivitySeed, "seed", 0, "Random seed for reproducible probabilistic runs")
	sensitivityCmd.Flags().Float64Var(&sensitivityWTP, "wtp", 0, "Willingness-to-pay threshold per effect unit")
	sensitivityCmd.Flags().StringVar(&sensitivityFormat, "format", "console", "Output format (console, json, csv)")
	rootCmd.AddCommand(sensitivityCmd)
}
