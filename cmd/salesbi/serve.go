package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ebrunovs/bi-atvi2/dashboard"
)

// ServeOptions holds flags of the serve command.
type ServeOptions struct {
	Addr  string
	Title string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve [question...]",
		Short: "Serve the reports as a web dashboard",
		Long: `Answer the questions once and serve them until interrupted.

Routes:
  GET /                   dashboard page
  GET /charts/{id}.svg    chart of one question
  GET /api/reports        report list
  GET /api/reports/{id}   one report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.Title, "title", "Sales dashboard", "page heading")

	return cmd
}

func runServe(rootOpts *RootOptions, opts *ServeOptions, refs []string, cmd *cobra.Command) error {
	questions, reports, err := rootOpts.computeReports(refs)
	if err != nil {
		return err
	}

	d, err := dashboard.New(questions, reports,
		dashboard.WithTitle(opts.Title),
		dashboard.WithLogger(rootOpts.logger),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return d.Serve(ctx, opts.Addr)
}
