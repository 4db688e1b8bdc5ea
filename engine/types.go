package engine

import "time"

// ============================================================================
// ENGINE TYPES — Sales facts, dimensions, series and chart descriptions
// ============================================================================
// Rows are typed structs. Column access by key goes through RecordView
// (view.go), whose accessors are registered once for the joined table.
// ============================================================================

// ============================================================================
// ROWS
// ============================================================================

// FactRow is one sales transaction.
// A zero Date is the missing-date marker.
type FactRow struct {
	CustomerName        string    `json:"customerName"`
	CustomerCountry     string    `json:"customerCountry"`
	CustomerCountryCode string    `json:"customerCountryCode"`
	CustomerCity        string    `json:"customerCity"`
	CategoryName        string    `json:"categoryName"`
	SellerID            string    `json:"sellerId"`
	SupplierID          string    `json:"supplierId"`
	CarrierID           string    `json:"carrierId"`
	Sale                float64   `json:"sale"`
	Discount            float64   `json:"discount"`
	GrossMargin         float64   `json:"grossMargin"`
	Freight             float64   `json:"freight"`
	Date                time.Time `json:"date"`
}

// HasDate reports whether the row carries a parsed transaction date.
func (r FactRow) HasDate() bool {
	return !r.Date.IsZero()
}

// DimensionRow is one identifier → display name entry.
type DimensionRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JoinedFact is a FactRow widened with dimension display names.
// Empty names mean the foreign key had no match.
type JoinedFact struct {
	FactRow
	CarrierName  string `json:"carrierName"`
	SellerName   string `json:"sellerName"`
	SupplierName string `json:"supplierName"`
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// SERIES — Ordered (label, value) answer of one question
// ============================================================================

// Point is one entry of a Series.
type Point struct {
	Label string  `json:"label"`
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// Series is the ordered answer of an aggregation. It may be empty.
type Series []Point

// Total sums the values of the series.
func (s Series) Total() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// Labels returns the labels in order.
func (s Series) Labels() []string {
	labels := make([]string, len(s))
	for i, p := range s {
		labels[i] = p.Label
	}
	return labels
}

// Values returns the values in order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartKind selects how a series is drawn.
type ChartKind string

const (
	ChartBar  ChartKind = "bar"  // vertical bars
	ChartBarH ChartKind = "barh" // horizontal bars
	ChartLine ChartKind = "line" // line with a marker per point
)

// Valid reports whether k is a known chart kind.
func (k ChartKind) Valid() bool {
	switch k {
	case ChartBar, ChartBarH, ChartLine:
		return true
	}
	return false
}

// NoDataMessage is drawn instead of axes when a series is empty.
const NoDataMessage = "No data available"

// ChartConfig is a renderer-agnostic chart description.
// Any backend (SVG, PNG, a JS widget) can draw it.
type ChartConfig struct {
	ChartType ChartKind     `json:"chartType"`
	Title     string        `json:"title"`
	XAxis     string        `json:"xAxis,omitempty"`
	YAxis     string        `json:"yAxis,omitempty"`
	Series    []ChartSeries `json:"series"`
	Colors    []string      `json:"colors,omitempty"`
	ShowGrid  bool          `json:"showGrid"`
	Markers   bool          `json:"markers"`

	// Placeholder: set when there is nothing to plot.
	Empty   bool   `json:"empty"`
	Message string `json:"message,omitempty"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData is a tabular rendering of a series.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// TREND
// ============================================================================

// Trend directions.
const (
	TrendIncreasing   = "increasing"
	TrendDecreasing   = "decreasing"
	TrendVariable     = "stable or variable"
	TrendInsufficient = "insufficient data"
)

// TrendData summarizes a chronological series.
type TrendData struct {
	FirstPeriod   string  `json:"firstPeriod"`
	FirstValue    float64 `json:"firstValue"`
	LastPeriod    string  `json:"lastPeriod"`
	LastValue     float64 `json:"lastValue"`
	ChangeAmount  float64 `json:"changeAmount"`
	ChangePercent float64 `json:"changePercent"`
	Direction     string  `json:"direction"`
}

// ============================================================================
// REPORT — Answer of one business question
// ============================================================================

// Report is what the presentation layer receives for one question.
type Report struct {
	QuestionID string       `json:"questionId"`
	Number     int          `json:"number,omitempty"`
	Title      string       `json:"title"`
	Series     Series       `json:"series"`
	Chart      *ChartConfig `json:"chart,omitempty"`
	Trend      *TrendData   `json:"trend,omitempty"`
	Reply      string       `json:"reply,omitempty"`
	Error      string       `json:"error,omitempty"`

	Err error `json:"-"`
}

// Failed reports whether the question could not be computed.
func (r *Report) Failed() bool {
	return r.Err != nil
}
