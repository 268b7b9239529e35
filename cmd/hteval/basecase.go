package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hteval/hteval/internal/output"
)

var (
	basecaseModel  string
	basecaseFormat string
)

var basecaseCmd = &cobra.Command{
	Use:   "basecase [portfolio-file]",
	Short: "Run a base case analysis",
	Long: `Evaluate a model at its parameter base values and report total cost,
total effect and the incremental cost-effectiveness ratio.

Examples:
  hteval basecase portfolio.yaml
  hteval basecase portfolio.yaml --model cua_model --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, portfolio, err := loadService(args[0])
		if err != nil {
			return err
		}

		modelID, err := resolveModelID(portfolio, basecaseModel)
		if err != nil {
			return err
		}

		result, err := svc.RunBaseCase(modelID)
		if err != nil {
			return err
		}

		formatter, err := output.NewFormatter(basecaseFormat)
		if err != nil {
			return err
		}
		rendered, err := formatter.BaseCase(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, rendered)
		return nil
	},
}

func init() {
	basecaseCmd.Flags().StringVar(&basecaseModel, "model", "", "Model id (default: first model in portfolio)")
	basecaseCmd.Flags().StringVar(&basecaseFormat, "format", "console", "Output format (console, json, csv)")
	rootCmd.AddCommand(basecaseCmd)
}
