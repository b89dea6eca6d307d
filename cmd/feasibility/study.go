package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tirecycle/feasibility/internal/calculation"
	"github.com/tirecycle/feasibility/internal/domain"
	"github.com/tirecycle/feasibility/internal/output"
	"github.com/tirecycle/feasibility/internal/telemetry"
)

func newStudyCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Save, list and compare feasibility studies",
	}
	cmd.AddCommand(
		newStudySaveCmd(opts),
		newStudyListCmd(opts),
		newStudyShowCmd(opts),
		newStudyDeleteCmd(opts),
		newStudyCompareCmd(opts),
	)
	return cmd
}

func newStudySaveCmd(opts *globalOptions) *cobra.Command {
	var id, name, notes string
	cmd := &cobra.Command{
		Use:   "save <plant.yaml>",
		Short: "Calculate a plant configuration and store it with its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			cfg, err := loadPlant(args[0])
			if err != nil {
				return err
			}
			start := time.Now()
			results := svc.engine.Calculate(cfg)
			telemetry.ObserveCalculation(telemetry.KindCalculate, start)

			saved, err := svc.store.Save(cmd.Context(), &domain.Study{ID: id, Name: name, Notes: notes, Config: cfg, Results: results})
			if err != nil {
				return err
			}
			telemetry.StudiesSavedTotal.Inc()
			fmt.Fprintf(cmd.OutOrStdout(), "Saved study %s (%s)\n", saved.ID, saved.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "replace the study with this id")
	cmd.Flags().StringVar(&name, "name", "", "study name (default: the plant name)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func newStudyListCmd(opts *globalOptions) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored studies, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			studies, err := svc.store.List(cmd.Context(), query)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tName\tLocation\tROI\tNPV\tPayback\tUpdated\t")
			for _, st := range studies {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", st.ID, st.Name, st.Config.Location,
					output.FormatPercentage(st.Results.ROIPercentage), output.FormatWholeCurrency(st.Results.NPV10Years),
					output.FormatPayback(st.Results.PaybackMonths), st.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by name, location or notes")
	return cmd
}

func newStudyShowCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Render the report of a stored study",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			st, err := svc.store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return output.UnsupportedFormatError(format)
			}
			data, err := f.Format(svc.engine.BuildReport(st.Config, st.Name))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format")
	return cmd
}

func newStudyDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored study",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted study %s\n", args[0])
			return nil
		},
	}
}

func newStudyCompareCmd(opts *globalOptions) *cobra.Command {
	var metric string
	cmd := &cobra.Command{
		Use:   "compare [id...]",
		Short: "Rank stored studies by roi, npv, irr or payback",
		Long:  "Rank stored studies by their stored results. Without ids every stored study is ranked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(cmd.Context(), cmd, opts)
			if err != nil {
				return err
			}
			defer svc.Close()

			var studies []domain.Study
			if len(args) == 0 {
				if studies, err = svc.store.List(cmd.Context(), ""); err != nil {
					return err
				}
			}
			for _, id := range args {
				st, err := svc.store.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				studies = append(studies, *st)
			}

			start := time.Now()
			comparison, err := calculation.RankStudies(studies, metric)
			if err != nil {
				return err
			}
			telemetry.ObserveCalculation(telemetry.KindCompare, start)
			_, err = cmd.OutOrStdout().Write(output.FormatComparison(comparison))
			return err
		},
	}
	cmd.Flags().StringVarP(&metric, "metric", "m", domain.MetricROI, "ranking metric: roi, npv, irr, payback")
	return cmd
}
