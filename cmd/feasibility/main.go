package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tirecycle/feasibility/internal/calculation"
	"github.com/tirecycle/feasibility/internal/config"
	"github.com/tirecycle/feasibility/internal/domain"
	"github.com/tirecycle/feasibility/internal/logging"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	assumptionsFile string
	settingsFile    string
	logLevel        string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "feasibility",
		Short: "Tire recycling plant feasibility calculator",
		Long: `Feasibility computes the financial viability of a tire recycling plant from its
capacity, output streams, capital and operating costs: revenue, EBITDA, payback, ROI,
NPV and IRR, plus utilization scenarios and ROI sensitivity.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.assumptionsFile, "assumptions", "", "YAML file overriding the modeling assumptions")
	root.PersistentFlags().StringVar(&opts.settingsFile, "config", "", "service settings file (default feasibility.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newCalculateCmd(opts),
		newScenariosCmd(opts),
		newSensitivityCmd(opts),
		newReportCmd(opts),
		newDiffCmd(opts),
		newExampleCmd(),
		newServeCmd(opts),
		newStudyCmd(opts),
	)
	return root
}

// newEngine builds the engine with the assumption overrides and a zap logger.
func newEngine(opts *globalOptions) (*calculation.Engine, *zap.Logger, error) {
	logger, err := logging.New(opts.logLevel, false)
	if err != nil {
		return nil, nil, err
	}

	assumptions := domain.DefaultAssumptions()
	if opts.assumptionsFile != "" {
		assumptions, err = config.NewInputParser().LoadAssumptions(opts.assumptionsFile)
		if err != nil {
			return nil, nil, err
		}
	}

	engine := calculation.NewEngine(assumptions)
	engine.SetLogger(logger.Sugar())
	return engine, logger, nil
}

func loadPlant(path string) (domain.PlantConfiguration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return domain.PlantConfiguration{}, fmt.Errorf("load %s: %w", path, err)
	}
	return *cfg, nil
}
