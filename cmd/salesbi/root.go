package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ebrunovs/bi-atvi2/catalog"
	"github.com/ebrunovs/bi-atvi2/engine"
	"github.com/ebrunovs/bi-atvi2/loader"
	"github.com/ebrunovs/bi-atvi2/output"
)

const version = "0.3.0"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DataDir string
	Catalog string // empty = built-in catalog
	Format  string
	Out     string // empty = stdout
	Workers int
	Verbose bool

	logger zerolog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{output.FormatText, output.FormatJSON, output.FormatPretty, output.FormatCSV}

// NewRootCommand creates the root command of the salesbi CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "salesbi",
		Short:         "salesbi - sales business intelligence",
		Long:          "Answers a catalog of business questions over the sales CSV files (sales facts plus carrier, seller and supplier tables).",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.DataDir, "data", "d", "csv", "directory holding the CSV files")
	cmd.PersistentFlags().StringVarP(&opts.Catalog, "catalog", "c", "", "question catalog YAML (default: built-in)")
	cmd.PersistentFlags().StringVarP(&opts.Format, "format", "f", output.FormatText, "output format (text|json|pretty|csv)")
	cmd.PersistentFlags().StringVarP(&opts.Out, "out", "o", "", "output file (default: stdout)")
	cmd.PersistentFlags().IntVar(&opts.Workers, "workers", 0, "questions computed in parallel (default: GOMAXPROCS)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewChartCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewQuestionsCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newLogger writes human-readable logs to w. Every line carries the run id.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Str("run", uuid.NewString()).
		Logger()
}

// ============================================================================
// SHARED STEPS
// ============================================================================

func (o *RootOptions) loadCatalog() (*catalog.Catalog, error) {
	if o.Catalog == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(o.Catalog)
}

func (o *RootOptions) loadDataset(cat *catalog.Catalog) (*engine.Dataset, error) {
	return loader.LoadDataset(o.DataDir,
		loader.WithCountryAliases(cat.CountryAliases),
		loader.WithLogger(o.logger),
	)
}

// computeReports loads everything and answers the questions named by refs
// (all of them when refs is empty). questions[i] describes reports[i].
func (o *RootOptions) computeReports(refs []string) ([]engine.Question, []*engine.Report, error) {
	cat, err := o.loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	questions, err := cat.Select(refs...)
	if err != nil {
		return nil, nil, err
	}
	ds, err := o.loadDataset(cat)
	if err != nil {
		return nil, nil, err
	}
	reports := engine.ComputeAll(questions, ds,
		engine.WithWorkers(o.Workers),
		engine.WithLogger(o.logger),
	)
	return questions, reports, nil
}

// openOutput opens the --out file, or returns stdout. Call the returned close func when done.
func (o *RootOptions) openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if o.Out == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(o.Out)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
