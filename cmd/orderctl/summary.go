package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bakeryhq/orderdesk/internal/export"
	"github.com/bakeryhq/orderdesk/internal/production"
)

func newSummaryCmd(opts *options) *cobra.Command {
	var (
		date string
		week bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the production plan for a day or week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := opts.open(ctx, opts.logger())
			if err != nil {
				return err
			}
			defer d.kv.Close()

			var summary production.Summary
			if week {
				summary, err = d.production.Weekly(ctx, date)
			} else {
				summary, err = d.production.Daily(ctx, date)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary.Range.Start == summary.Range.End {
				fmt.Fprintf(out, "%s: %d orders\n", summary.Range.Start, summary.Orders)
			} else {
				fmt.Fprintf(out, "%s to %s: %d orders\n", summary.Range.Start, summary.Range.End, summary.Orders)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, l := range summary.Lines {
				name := l.ProductName
				if name == "" {
					name = l.ProductID
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, export.FormatQuantity(l.Total), l.Unit)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&week, "week", false, "summarise the whole Monday-to-Sunday week")
	return cmd
}
