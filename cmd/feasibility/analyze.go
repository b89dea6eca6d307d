package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tirecycle/feasibility/internal/config"
	"github.com/tirecycle/feasibility/internal/domain"
	"github.com/tirecycle/feasibility/internal/output"
	"github.com/tirecycle/feasibility/internal/telemetry"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCalculateCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "calculate <plant.yaml>",
		Short: "Compute the financial results of a plant configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, logger, err := newEngine(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := loadPlant(args[0])
			if err != nil {
				return err
			}
			start := time.Now()
			analysis := engine.Analyze(cfg)
			telemetry.ObserveCalculation(telemetry.KindCalculate, start)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, analysis)
			}
			writeResults(out, cfg, analysis)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return cmd
}

func writeResults(w io.Writer, cfg domain.PlantConfiguration, a *domain.Analysis) {
	r := a.Results
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Annual tonnage\t%s\t\n", output.FormatTons(a.Breakdown.AnnualTonnage))
	fmt.Fprintf(tw, "Total investment\t%s\t\n", output.FormatCurrency(r.TotalInvestment))
	fmt.Fprintf(tw, "Annual revenue\t%s\t\n", output.FormatCurrency(r.AnnualRevenue))
	fmt.Fprintf(tw, "Annual opex\t%s\t\n", output.FormatCurrency(r.AnnualOpex))
	fmt.Fprintf(tw, "Annual EBITDA\t%s\t\n", output.FormatCurrency(r.AnnualEbitda))
	fmt.Fprintf(tw, "Net profit\t%s\t\n", output.FormatCurrency(a.Breakdown.Profitability.NetProfit))
	fmt.Fprintf(tw, "Payback\t%s\t\n", output.FormatPayback(r.PaybackMonths))
	if date := output.PaybackDate(cfg, r); date != "" {
		fmt.Fprintf(tw, "Payback date\t%s\t\n", date)
	}
	fmt.Fprintf(tw, "ROI\t%s\t\n", output.FormatPercentage(r.ROIPercentage))
	fmt.Fprintf(tw, "NPV\t%s\t\n", output.FormatCurrency(r.NPV10Years))
	fmt.Fprintf(tw, "IRR\t%s\t\n", output.FormatIRR(r))
	tw.Flush()
}

func newScenariosCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "scenarios <plant.yaml>",
		Short: "Re-run the plant at the pessimistic, probable and optimistic utilization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, logger, err := newEngine(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := loadPlant(args[0])
			if err != nil {
				return err
			}
			start := time.Now()
			sa := engine.RunScenarios(cfg)
			telemetry.ObserveCalculation(telemetry.KindScenarios, start)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, sa)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Scenario\tUtilization\tTonnage\tRevenue\tMargin\tROI\tNPV\tPayback\t")
			for _, s := range sa.Scenarios {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", s.Name,
					output.FormatPercentage(s.UtilizationRate), output.FormatTons(s.AnnualTonnage),
					output.FormatWholeCurrency(s.Results.AnnualRevenue), output.FormatWholeCurrency(s.ContributionMargin),
					output.FormatPercentage(s.Results.ROIPercentage), output.FormatWholeCurrency(s.Results.NPV10Years),
					output.FormatPayback(s.Results.PaybackMonths))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the scenario analysis as JSON")
	return cmd
}

func newSensitivityCmd(opts *globalOptions) *cobra.Command {
	var (
		asJSON  bool
		heatmap bool
	)
	cmd := &cobra.Command{
		Use:   "sensitivity <plant.yaml>",
		Short: "Project the ROI under price, capacity and opex variations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, logger, err := newEngine(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := loadPlant(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if heatmap {
				start := time.Now()
				hm := engine.Heatmap(cfg)
				telemetry.ObserveCalculation(telemetry.KindHeatmap, start)
				if asJSON {
					return writeJSON(out, hm)
				}
				return writeHeatmap(out, hm)
			}

			start := time.Now()
			sa := engine.RunSensitivity(cfg)
			telemetry.ObserveCalculation(telemetry.KindSensitivity, start)
			if asJSON {
				return writeJSON(out, sa)
			}
			fmt.Fprintf(out, "Baseline ROI: %s\n\n", output.FormatPercentage(sa.BaselineROI))
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Driver\tLow ROI\tHigh ROI\tSpread\t")
			for _, bar := range sa.Tornado {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", bar.Driver,
					output.FormatPercentage(bar.LowROI), output.FormatPercentage(bar.HighROI), bar.Spread.StringFixed(2))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&heatmap, "heatmap", false, "print the price by capacity ROI grid")
	return cmd
}

func writeHeatmap(w io.Writer, hm *domain.Heatmap) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "price \\ capacity\t")
	for _, v := range hm.Variations {
		fmt.Fprintf(tw, "%s%%\t", v.StringFixed(0))
	}
	fmt.Fprintln(tw)
	for _, row := range hm.Cells {
		if len(row) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s%%\t", row[0].PriceVariation.StringFixed(0))
		for _, c := range row {
			fmt.Fprintf(tw, "%s\t", output.FormatPercentage(c.ROIPercentage))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func newReportCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		outDir string
		title  string
	)
	cmd := &cobra.Command{
		Use:   "report <plant.yaml>",
		Short: "Render the full feasibility report",
		Long: fmt.Sprintf(`Render the full feasibility report.

Formats: %s, or "all" together with --output.
Aliases: %s`, strings.Join(output.AvailableFormatterNames(), ", "), strings.Join(output.AvailableFormatAliases(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, logger, err := newEngine(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg, err := loadPlant(args[0])
			if err != nil {
				return err
			}
			start := time.Now()
			report := engine.BuildReport(cfg, title)
			telemetry.ObserveCalculation(telemetry.KindReport, start)

			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
				files, err := output.GenerateReport(report, format, outDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}

			f := output.GetFormatterByName(format)
			if f == nil {
				return output.UnsupportedFormatError(format)
			}
			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "write timestamped report files to this directory instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "report title (default: the plant name)")
	return cmd
}

func newDiffCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <from.yaml> <to.yaml>",
		Short: "Compare two plant configurations and their results",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, logger, err := newEngine(opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			sides := make([]output.StudySide, 0, 2)
			for _, path := range args {
				cfg, err := loadPlant(path)
				if err != nil {
					return err
				}
				sides = append(sides, output.StudySide{Label: filepath.Base(path), Config: cfg, Results: engine.Calculate(cfg)})
			}
			d, err := output.DiffConfigurations(sides[0], sides[1])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(output.FormatConfigDiff(d))
			return err
		},
	}
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write an example plant configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			cfg := parser.CreateExampleConfiguration()
			if len(args) == 1 {
				if err := parser.SaveConfiguration(cfg, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", args[0])
				return nil
			}
			data, err := parser.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
