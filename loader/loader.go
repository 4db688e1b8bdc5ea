package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ebrunovs/bi-atvi2/engine"
	"github.com/ebrunovs/bi-atvi2/schema"
)

// ============================================================================
// LOADER — Source files → joined Dataset
// ============================================================================
// Pipeline:
//   1. Read the fact file (fatal if absent or headerless)
//   2. Read each dimension file (absent → its name column is unavailable)
//   3. Left-join carriers, sellers, suppliers in that order
//   4. Record which columns the run can offer
// ============================================================================

// Option configures loading via functional options pattern.
type Option func(*config)

type config struct {
	Comma          rune
	CountryAliases map[string]string
	Files          map[string]string // source name → file name
	Logger         zerolog.Logger
}

// WithComma sets the field delimiter (default ',').
func WithComma(r rune) Option {
	return func(c *config) {
		if r != 0 {
			c.Comma = r
		}
	}
}

// WithCountryAliases maps alternative country spellings onto one name.
func WithCountryAliases(aliases map[string]string) Option {
	return func(c *config) {
		c.CountryAliases = aliases
	}
}

// WithFileNames overrides the file of a source by source name
// ("sales", "carriers", "sellers", "suppliers").
func WithFileNames(files map[string]string) Option {
	return func(c *config) {
		for name, file := range files {
			c.Files[name] = file
		}
	}
}

// WithLogger sets the logger for load warnings and malformed-value reports.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.Logger = l
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		Comma:  ',',
		Files:  make(map[string]string),
		Logger: log.Logger,
	}
	for _, src := range schema.Sources() {
		cfg.Files[src.Name] = src.File
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// dimensionJoins pairs each dimension source with the key it fills.
var dimensionJoins = []struct {
	Source schema.Source
	Key    engine.ForeignKey
}{
	{schema.Carriers, engine.CarrierKey},
	{schema.Sellers, engine.SellerKey},
	{schema.Suppliers, engine.SupplierKey},
}

// LoadDataset reads the source files from dir.
func LoadDataset(dir string, opts ...Option) (*engine.Dataset, error) {
	return LoadDatasetFS(os.DirFS(dir), opts...)
}

// LoadDatasetFS reads the source files from fsys and joins them.
func LoadDatasetFS(fsys fs.FS, opts ...Option) (*engine.Dataset, error) {
	cfg := applyOptions(opts)

	facts, err := readFactFile(fsys, cfg, opts)
	if err != nil {
		return nil, err
	}

	available := make(map[string]bool)
	for key := range facts.Inspection.Matched {
		available[key] = true
	}
	if available[schema.Date] {
		available[schema.Year] = true
	}

	rows := engine.Widen(facts.Rows)
	for _, join := range dimensionJoins {
		if !available[join.Key.Column] {
			cfg.Logger.Warn().
				Str("source", join.Source.Name).
				Str("column", join.Key.Column).
				Msg("fact key column missing, join skipped")
			continue
		}

		dim, err := readDimensionFile(fsys, join.Source, cfg, opts)
		if errors.Is(err, fs.ErrNotExist) {
			cfg.Logger.Warn().Str("source", join.Source.Name).Msg("dimension file not found, join skipped")
			continue
		}
		var missing *schema.MissingColumnError
		if errors.As(err, &missing) {
			cfg.Logger.Warn().Err(err).Msg("dimension file incomplete, join skipped")
			continue
		}
		if err != nil {
			return nil, err
		}

		cfg.Logger.Debug().
			Str("source", join.Source.Name).
			Int("rows", dim.Table.Len()).
			Int("unmatched", engine.Unmatched(rows, dim.Table, join.Key)).
			Msg("joining dimension")
		rows = engine.LeftJoin(rows, dim.Table, join.Key)
		available[join.Key.Target] = true
	}

	columns := make([]string, 0, len(available))
	for _, key := range engine.AllColumns() {
		if available[key] {
			columns = append(columns, key)
		}
	}

	cfg.Logger.Info().
		Int("rows", len(rows)).
		Int("malformed", facts.Malformed).
		Int("skipped", facts.Skipped).
		Int("columns", len(columns)).
		Msg("dataset loaded")

	return engine.NewDataset(rows, columns), nil
}

func readFactFile(fsys fs.FS, cfg *config, opts []Option) (*FactTable, error) {
	name := cfg.Files[schema.Facts.Name]
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	table, err := ReadFacts(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return table, nil
}

func readDimensionFile(fsys fs.FS, src schema.Source, cfg *config, opts []Option) (*DimensionData, error) {
	name := cfg.Files[src.Name]
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	dim, err := ReadDimension(f, src, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return dim, nil
}
