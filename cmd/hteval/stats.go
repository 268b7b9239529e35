package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hteval/hteval/internal/output"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats [portfolio-file]",
	Short: "Summarize the models and parameters in a portfolio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := loadService(args[0])
		if err != nil {
			return err
		}

		formatter, err := output.NewFormatter(statsFormat)
		if err != nil {
			return err
		}
		rendered, err := formatter.Statistics(svc.Statistics())
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, rendered)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsFormat, "format", "console", "Output format (console, json, csv)")
	rootCmd.AddCommand(statsCmd)
}
