package engine

import (
	"github.com/ebrunovs/bi-atvi2/schema"
)

// Dataset is the joined sales table of one run plus the set of columns the
// loaded files actually provide. It is built once and only read afterwards.
type Dataset struct {
	Rows    []JoinedFact
	columns map[string]bool
	view    RecordView
}

// NewDataset wraps joined rows. columns lists the available column keys,
// derived keys included.
func NewDataset(rows []JoinedFact, columns []string) *Dataset {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	return &Dataset{
		Rows:    rows,
		columns: set,
		view:    FactView(rows),
	}
}

// AllColumns returns every column key of the joined table.
func AllColumns() []string {
	return append(schema.DimensionKeys(), schema.MeasureKeys()...)
}

// Has reports whether the column key is available.
func (d *Dataset) Has(key string) bool {
	return d.columns[key]
}

// Columns returns the available column keys in joined-table order.
func (d *Dataset) Columns() []string {
	var out []string
	for _, k := range AllColumns() {
		if d.columns[k] {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of joined rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// View exposes the rows through RecordView.
func (d *Dataset) View() RecordView { return d.view }
