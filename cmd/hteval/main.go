package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hteval/hteval/internal/config"
	"github.com/hteval/hteval/internal/economics"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "hteval",
	Short: "Health economics evaluation CLI",
	Long:  "Cost-effectiveness, sensitivity and budget impact analysis for HTA value dossiers",
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "hteval %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate [portfolio-file]",
	Short: "Validate a portfolio file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewPortfolioParser()
		portfolio, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "portfolio OK: %d model(s)\n", len(portfolio.Models))
		return nil
	},
}

// newLogger builds the CLI logger; debug level only with --verbose
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// loadService parses the portfolio file and seeds a fresh service from it
func loadService(path string) (*economics.Service, *config.Portfolio, error) {
	parser := config.NewPortfolioParser()
	portfolio, err := parser.LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	svc := economics.NewService(newLogger())
	if err := svc.LoadPortfolio(portfolio); err != nil {
		return nil, nil, err
	}
	return svc, portfolio, nil
}

// resolveModelID picks the requested model, defaulting to the portfolio's
// first entry
func resolveModelID(portfolio *config.Portfolio, flag string) (string, error) {
	if flag != "" {
		for i := range portfolio.Models {
			if portfolio.Models[i].ID == flag {
				return flag, nil
			}
		}
		return "", fmt.Errorf("model %q not found in portfolio", flag)
	}
	if len(portfolio.Models) == 0 {
		return "", fmt.Errorf("portfolio contains no models")
	}
	return portfolio.Models[0].ID, nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(validateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
