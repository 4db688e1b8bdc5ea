package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/ebrunovs/bi-atvi2/engine"
	"github.com/ebrunovs/bi-atvi2/schema"
)

// ============================================================================
// CSV READERS — Parse source files into typed rows
// ============================================================================
// The caller opens the file (disk, embed, test fixture). Headers are matched
// against the schema declaration; a declared column with no header is
// reported in the Inspection and reads as empty in every row.
// ============================================================================

// FactTable is the parsed sales fact file.
type FactTable struct {
	Rows       []engine.FactRow
	Inspection schema.Inspection
	Malformed  int // cells coerced to 0 or to a missing date
	Skipped    int // records the CSV reader could not tokenize
}

// DimensionData is a parsed dimension file.
type DimensionData struct {
	Table      engine.DimensionTable
	Inspection schema.Inspection
}

// ReadFacts parses the sales fact file.
func ReadFacts(r io.Reader, opts ...Option) (*FactTable, error) {
	cfg := applyOptions(opts)

	reader := newReader(r, cfg)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s headers: %w", schema.Facts.Name, err)
	}

	table := &FactTable{Inspection: schema.Inspect(schema.Facts, headers)}
	if !table.Inspection.Complete() {
		cfg.Logger.Warn().
			Str("source", schema.Facts.Name).
			Strs("missing", table.Inspection.Missing).
			Msg("declared columns not found")
	}

	aliases := newAliasMap(cfg.CountryAliases)
	cells := cellReader{positions: table.Inspection.Matched}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			table.Skipped++
			cfg.Logger.Debug().Err(err).Int("line", line).Msg("skipping unreadable record")
			continue
		}
		cells.record = record

		row := engine.FactRow{
			CustomerName:        NormalizeText(cells.get(schema.CustomerName)),
			CustomerCountry:     aliases.resolve(NormalizeText(cells.get(schema.CustomerCountry))),
			CustomerCountryCode: NormalizeText(cells.get(schema.CustomerCountryCode)),
			CustomerCity:        NormalizeText(cells.get(schema.CustomerCity)),
			CategoryName:        NormalizeText(cells.get(schema.CategoryName)),
			SellerID:            NormalizeID(cells.get(schema.SellerID)),
			SupplierID:          NormalizeID(cells.get(schema.SupplierID)),
			CarrierID:           NormalizeID(cells.get(schema.CarrierID)),
		}

		malformed := 0
		number := func(key string) float64 {
			raw := cells.get(key)
			v, ok := parseNumber(raw)
			if !ok && raw != "" {
				malformed++
			}
			return v
		}
		row.Sale = number(schema.Sale)
		row.Discount = number(schema.Discount)
		row.GrossMargin = number(schema.GrossMargin)
		row.Freight = number(schema.Freight)

		if raw := cells.get(schema.Date); raw != "" {
			d, ok := parseDate(raw)
			if !ok {
				malformed++
			}
			row.Date = d
		}

		if malformed > 0 {
			table.Malformed += malformed
			cfg.Logger.Debug().Int("line", line).Int("cells", malformed).Msg("malformed values coerced")
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ReadDimension parses an identifier → name file declared by src.
// Both columns must be present; identifiers must be unique.
func ReadDimension(r io.Reader, src schema.Source, opts ...Option) (*DimensionData, error) {
	cfg := applyOptions(opts)

	reader := newReader(r, cfg)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s headers: %w", src.Name, err)
	}

	inspection := schema.Inspect(src, headers)
	if len(inspection.Missing) > 0 {
		return nil, &schema.MissingColumnError{Source: src.Name, Column: inspection.Missing[0]}
	}

	cells := cellReader{positions: inspection.Matched}
	var rows []engine.DimensionRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			cfg.Logger.Debug().Err(err).Str("source", src.Name).Int("line", line).Msg("skipping unreadable record")
			continue
		}
		cells.record = record

		id := NormalizeID(cells.get(schema.DimensionID))
		if id == "" {
			cfg.Logger.Debug().Str("source", src.Name).Int("line", line).Msg("skipping row without id")
			continue
		}
		rows = append(rows, engine.DimensionRow{
			ID:   id,
			Name: NormalizeText(cells.get(schema.DimensionName)),
		})
	}

	table, err := engine.NewDimensionTable(src.Name, rows)
	if err != nil {
		return nil, err
	}
	return &DimensionData{Table: table, Inspection: inspection}, nil
}

func newReader(r io.Reader, cfg *config) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = cfg.Comma
	reader.FieldsPerRecord = -1 // short and long rows are tolerated
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	return reader
}

// cellReader reads one record by column key. Absent columns and short
// rows read as "".
type cellReader struct {
	positions map[string]int
	record    []string
}

func (c cellReader) get(key string) string {
	idx, ok := c.positions[key]
	if !ok || idx >= len(c.record) {
		return ""
	}
	return c.record[idx]
}
