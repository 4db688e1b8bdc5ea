package main

import (
	"github.com/spf13/cobra"

	"github.com/ebrunovs/bi-atvi2/output"
)

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [question...]",
		Short: "Answer catalog questions",
		Long: `Answer catalog questions and write the reports.

Questions are named by id or number. With no arguments every question
in the catalog is answered. A question whose columns are missing from
the data is reported with its error; the others are still computed.`,
		Example: `  salesbi report
  salesbi report 4 yearly-sales-trend --format csv --out answers.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runReport(opts *RootOptions, refs []string, cmd *cobra.Command) error {
	_, reports, err := opts.computeReports(refs)
	if err != nil {
		return err
	}

	w, closeOut, err := opts.openOutput(cmd)
	if err != nil {
		return err
	}
	if err := output.Write(w, opts.Format, reports); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	if opts.Out != "" {
		opts.logger.Info().Str("file", opts.Out).Int("reports", len(reports)).Msg("reports written")
	}
	return nil
}
