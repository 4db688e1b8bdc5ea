package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ebrunovs/bi-atvi2/render"
	"github.com/ebrunovs/bi-atvi2/schema"
)

// ChartOptions holds flags of the chart command.
type ChartOptions struct {
	Width      int
	Height     int
	Background string
}

// NewChartCommand creates the chart command.
func NewChartCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChartOptions{}

	cmd := &cobra.Command{
		Use:   "chart <question>",
		Short: "Draw one question as an SVG chart",
		Long: `Answer one question and write its chart as SVG.

A question that cannot be answered still produces a placeholder chart.`,
		Example: `  salesbi chart carrier-freight --out freight.svg`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Width, "width", 800, "image width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", 480, "image height in pixels")
	cmd.Flags().StringVar(&opts.Background, "background", "#FFFFFF", "canvas fill color")

	return cmd
}

func runChart(rootOpts *RootOptions, opts *ChartOptions, ref string, cmd *cobra.Command) error {
	cat, err := rootOpts.loadCatalog()
	if err != nil {
		return err
	}
	// resolve the question before paying for the load
	if _, err := cat.Lookup(ref); err != nil {
		return err
	}
	ds, err := rootOpts.loadDataset(cat)
	if err != nil {
		return err
	}

	report, err := cat.ComputeReport(ref, ds)
	var missing *schema.MissingColumnError
	if errors.As(err, &missing) {
		rootOpts.logger.Warn().Err(err).Msg("drawing placeholder chart")
	} else if err != nil {
		return err
	}

	w, closeOut, err := rootOpts.openOutput(cmd)
	if err != nil {
		return err
	}
	if err := render.SVG(w, report.Chart,
		render.WithSize(opts.Width, opts.Height),
		render.WithBackground(opts.Background),
	); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}
