package engine

import (
	"fmt"

	"github.com/ebrunovs/bi-atvi2/schema"
)

// ============================================================================
// QUESTION — Declarative description of one business question
// ============================================================================
// A question names what to group by, what to reduce, which rows count,
// how to order and truncate, and how to draw the answer. Questions carry
// no code; the catalog package decodes them from YAML.
// ============================================================================

// Summary kinds attached to a report beyond its series.
const (
	SummaryNone  = ""
	SummaryTrend = "trend"
)

// Question is one entry of the question catalog.
type Question struct {
	ID          string    `json:"id" yaml:"id"`
	Number      int       `json:"number" yaml:"number"`
	Title       string    `json:"title" yaml:"title"`
	GroupBy     []string  `json:"groupBy" yaml:"group_by"`
	Measure     string    `json:"measure,omitempty" yaml:"measure"`
	Aggregation string    `json:"aggregation" yaml:"aggregation"`
	Filters     Filters   `json:"filters,omitempty" yaml:"filters"`
	SortBy      string    `json:"sortBy" yaml:"sort_by"`
	Limit       int       `json:"limit,omitempty" yaml:"limit"`
	Chart       ChartKind `json:"chart" yaml:"chart"`
	XAxis       string    `json:"xAxis,omitempty" yaml:"x_axis"`
	YAxis       string    `json:"yAxis,omitempty" yaml:"y_axis"`
	Color       string    `json:"color,omitempty" yaml:"color"`
	HideGrid    bool      `json:"hideGrid,omitempty" yaml:"hide_grid"`
	Summary     string    `json:"summary,omitempty" yaml:"summary"`
	Reply       string    `json:"reply,omitempty" yaml:"reply"` // template, see ResolvePlaceholders
}

// Required returns every column key the question reads, in a stable order.
func (q Question) Required() []string {
	var keys []string
	seen := make(map[string]bool)
	add := func(k string) {
		if k != "" && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for _, k := range q.GroupBy {
		add(k)
	}
	if q.Aggregation != AggCount {
		add(q.Measure)
	}
	for _, k := range q.Filters.Keys() {
		add(k)
	}
	return keys
}

// Validate checks the question against the columns ds actually provides.
// It returns a *schema.MissingColumnError naming the first absent column.
func (q Question) Validate(ds *Dataset) error {
	for _, key := range q.Required() {
		if !ds.Has(key) {
			return &schema.MissingColumnError{Question: q.ID, Column: key}
		}
	}
	return nil
}

// Check verifies the question is well formed, independent of any data.
func (q Question) Check() error {
	if q.ID == "" {
		return fmt.Errorf("question has no id")
	}
	if len(q.GroupBy) == 0 {
		return fmt.Errorf("question %q: group_by is empty", q.ID)
	}
	for _, k := range q.GroupBy {
		if !schema.Known(k) {
			return fmt.Errorf("question %q: unknown column %q", q.ID, k)
		}
		if !schema.IsDimension(k) {
			return fmt.Errorf("question %q: cannot group by %q", q.ID, k)
		}
	}
	switch q.Aggregation {
	case AggSum, AggAvg, AggMax, AggMin:
		if q.Measure != "" && !schema.Known(q.Measure) {
			return fmt.Errorf("question %q: unknown column %q", q.ID, q.Measure)
		}
		if !schema.IsMeasure(q.Measure) {
			return fmt.Errorf("question %q: %q is not a measure", q.ID, q.Measure)
		}
	case AggCount:
	default:
		return fmt.Errorf("question %q: unknown aggregation %q", q.ID, q.Aggregation)
	}
	for _, k := range q.Filters.Keys() {
		if !schema.Known(k) {
			return fmt.Errorf("question %q: unknown column %q", q.ID, k)
		}
		if !schema.IsDimension(k) {
			return fmt.Errorf("question %q: cannot filter on %q", q.ID, k)
		}
	}
	for k, r := range q.Filters.Ranges {
		if r.Min > r.Max {
			return fmt.Errorf("question %q: range on %q is empty (%d > %d)", q.ID, k, r.Min, r.Max)
		}
	}
	switch q.SortBy {
	case SortValueDesc, SortValueAsc, SortChronological, SortLabelAsc, SortLabelDesc:
	default:
		return fmt.Errorf("question %q: unknown sort order %q", q.ID, q.SortBy)
	}
	if q.Limit < 0 {
		return fmt.Errorf("question %q: negative limit %d", q.ID, q.Limit)
	}
	if !q.Chart.Valid() {
		return fmt.Errorf("question %q: unknown chart kind %q", q.ID, q.Chart)
	}
	switch q.Summary {
	case SummaryNone, SummaryTrend:
	default:
		return fmt.Errorf("question %q: unknown summary %q", q.ID, q.Summary)
	}
	return nil
}

// effectiveFilters adds the implicit constraints of the grouping:
// a date-derived group key needs a valid date.
func (q Question) effectiveFilters() Filters {
	f := q.Filters
	var extra []string
	for _, k := range q.GroupBy {
		if base, ok := schema.DerivedFrom(k); (ok && base == schema.Date) || k == schema.Date {
			extra = append(extra, k)
		}
	}
	if len(extra) == 0 {
		return f
	}
	require := make([]string, 0, len(f.Require)+len(extra))
	require = append(require, f.Require...)
	f.Require = append(require, extra...)
	return f
}

// renderOptions derives axis labels and color for the question's chart.
func (q Question) renderOptions() []RenderOption {
	x := q.XAxis
	if x == "" && len(q.GroupBy) > 0 {
		x = LabelForDimension(q.GroupBy[0])
	}
	y := q.YAxis
	if y == "" {
		y = LabelForAggregation(q.Aggregation, q.Measure)
	}
	opts := []RenderOption{WithAxes(x, y), WithColor(q.Color)}
	if q.HideGrid {
		opts = append(opts, WithoutGrid())
	}
	return opts
}
