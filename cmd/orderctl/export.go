package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bakeryhq/orderdesk/internal/export"
)

type exportFlags struct {
	format string
	out    string
	date   string
	id     string
}

func newExportCmd(opts *options) *cobra.Command {
	ef := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an order or production sheet as CSV or XLSX",
	}
	cmd.PersistentFlags().StringVar(&ef.format, "format", "csv", "output format: csv or xlsx")
	cmd.PersistentFlags().StringVarP(&ef.out, "out", "o", ".", "output directory, or - for stdout")

	daily := &cobra.Command{
		Use:   "daily",
		Short: "Production totals for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ef.run(cmd, opts, func(ctx context.Context, d *desk) (export.Sheet, error) {
				return d.production.DailySheet(ctx, ef.date)
			})
		},
	}
	daily.Flags().StringVar(&ef.date, "date", "", "day as YYYY-MM-DD (default today)")

	weekly := &cobra.Command{
		Use:   "weekly",
		Short: "Production totals for the Monday-to-Sunday week containing --date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ef.run(cmd, opts, func(ctx context.Context, d *desk) (export.Sheet, error) {
				return d.production.WeeklySheet(ctx, ef.date)
			})
		},
	}
	weekly.Flags().StringVar(&ef.date, "date", "", "any day of the week as YYYY-MM-DD (default today)")

	order := &cobra.Command{
		Use:   "order",
		Short: "The lines of a single order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ef.run(cmd, opts, func(ctx context.Context, d *desk) (export.Sheet, error) {
				return d.production.OrderSheet(ctx, ef.id)
			})
		},
	}
	order.Flags().StringVar(&ef.id, "id", "", "order id")
	_ = order.MarkFlagRequired("id")

	cmd.AddCommand(daily, weekly, order)
	return cmd
}

func (ef *exportFlags) run(cmd *cobra.Command, opts *options, build func(context.Context, *desk) (export.Sheet, error)) error {
	if ef.format != "csv" && ef.format != "xlsx" {
		return fmt.Errorf("unsupported format %q (must be csv or xlsx)", ef.format)
	}

	ctx := cmd.Context()
	d, err := opts.open(ctx, opts.logger())
	if err != nil {
		return err
	}
	defer d.kv.Close()

	sheet, err := build(ctx, d)
	if err != nil {
		return err
	}

	artifact := export.CSV(sheet)
	if ef.format == "xlsx" {
		if artifact, err = export.XLSX(sheet); err != nil {
			return err
		}
	}

	path, err := writeArtifact(cmd.OutOrStdout(), ef.out, artifact)
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d rows)\n", path, len(sheet.Rows))
	}
	return nil
}
