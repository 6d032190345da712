package main

import (
	"fmt"

	"github.com/pmsuite/perfmetrics/pkg/performance"
	"github.com/spf13/cobra"
)

func newKpiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "kpi",
		Short: "Print earned value KPIs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, items, err := loadSnapshot(opts.file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			calculator, err := opts.calculator()
			if err != nil {
				return err
			}

			kpis := calculator.CalculateKpis(tasks, items)
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), performance.KpisToDTO(kpis))
			}
			renderer := performance.NewTextReportRenderer(performance.DefaultSampleSize, opts.precision)
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderer.RenderKpis(kpis))
			return err
		},
	}
}

func newSCurveCmd(opts *options) *cobra.Command {
	var csvOutput bool
	cmd := &cobra.Command{
		Use:   "scurve",
		Short: "Print the day by day planned and actual progress curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, _, err := loadSnapshot(opts.file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			builder, err := opts.builder()
			if err != nil {
				return err
			}

			curve := builder.CalculateSCurveData(tasks)
			switch {
			case csvOutput:
				csv, err := performance.NewCsvSCurveRenderer().RenderSCurve(curve)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), csv)
				return err
			case opts.jsonOutput:
				return writeJSON(cmd.OutOrStdout(), performance.SCurveToDTO(curve))
			}
			renderer := performance.NewTextReportRenderer(len(curve.Points), opts.precision)
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderer.RenderCurveSample(curve))
			return err
		},
	}
	cmd.Flags().BoolVar(&csvOutput, "csv", false, "output CSV (day,date,planned,actual)")
	return cmd
}

func newReportCmd(opts *options) *cobra.Command {
	var sampleSize int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print KPIs followed by a sample of the S-curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, items, err := loadSnapshot(opts.file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			calculator, err := opts.calculator()
			if err != nil {
				return err
			}
			builder, err := opts.builder()
			if err != nil {
				return err
			}
			clock, err := opts.clock()
			if err != nil {
				return err
			}

			report := performance.Report{
				ProjectName:  projectName(opts.file),
				Kpis:         calculator.CalculateKpis(tasks, items),
				Curve:        builder.CalculateSCurveData(tasks),
				CalculatedAt: clock.Now(),
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), performance.ReportToDTO(report))
			}
			renderer := performance.NewTextReportRenderer(sampleSize, opts.precision)
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderer.RenderReport(report))
			return err
		},
	}
	cmd.Flags().IntVar(&sampleSize, "sample", performance.DefaultSampleSize, "number of S-curve points to print")
	return cmd
}
