package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ebrunovs/bi-atvi2/schema"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// ============================================================================

// Aggregations.
const (
	AggSum   = "sum"
	AggCount = "count"
	AggAvg   = "avg"
	AggMax   = "max"
	AggMin   = "min"
)

// Sort modes.
const (
	SortValueDesc     = "value_desc"
	SortValueAsc      = "value_asc"
	SortChronological = "chronological"
	SortLabelAsc      = "label_asc"
	SortLabelDesc     = "label_desc"
)

// UnknownLabel stands in for an empty grouping value (an unmatched join).
const UnknownLabel = "(unknown)"

const keySeparator = "\x1f"

// Aggregate answers q over view: filter → group → aggregate → sort → limit.
// Grouping by a date-derived key drops rows without a date first.
// Always returns a non-nil series.
func Aggregate(view RecordView, q Question) Series {
	filtered := ApplyFilters(view, q.effectiveFilters())
	groups := GroupAndAggregate(filtered, q.GroupBy, q.Measure, q.Aggregation, q.SortBy, q.Limit)
	return toSeries(groups)
}

func toSeries(groups []Group) Series {
	series := make(Series, 0, len(groups))
	for _, g := range groups {
		series = append(series, Point{
			Label: g.Label,
			Key:   g.Key,
			Value: g.Value,
			Count: g.Count,
		})
	}
	return series
}

// GroupAndAggregate is the main entry point for the aggregation pipeline.
// Pipeline: group → aggregate → sort → limit.
func GroupAndAggregate(
	view RecordView,
	groupBy []string,
	measure string,
	aggregation string,
	sortBy string,
	limit int,
) []Group {
	if view.Len() == 0 {
		return nil
	}

	// 1. Group
	var groups []Group
	if len(groupBy) == 0 {
		groups = []Group{{
			Key:   "all",
			Label: "Total",
			View:  view,
		}}
	} else {
		groups = groupByKeys(view, groupBy)
	}

	// 2. Aggregate
	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
	}

	// 3. Sort
	SortGroups(groups, sortBy)

	// 4. Limit
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

// groupByKeys partitions the view by the tuple of dimension values.
// Groups come out in first-encounter order.
func groupByKeys(view RecordView, dimensions []string) []Group {
	grouped := make(map[string][]int)
	labels := make(map[string]string)
	order := make([]string, 0)

	parts := make([]string, len(dimensions))
	for i := 0; i < view.Len(); i++ {
		for d, dim := range dimensions {
			parts[d] = view.Dimension(i, dim)
		}
		key := strings.Join(parts, keySeparator)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
			labels[key] = groupLabel(parts)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: labels[key],
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// groupLabel renders a key tuple: "A" or "A (B)" or "A (B, C)".
func groupLabel(parts []string) string {
	shown := make([]string, len(parts))
	for i, p := range parts {
		if p == "" {
			p = UnknownLabel
		}
		shown[i] = p
	}
	if len(shown) == 1 {
		return shown[0]
	}
	return shown[0] + " (" + strings.Join(shown[1:], ", ") + ")"
}

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateGroup(group *Group, measure string, aggregation string) {
	group.Count = group.View.Len()
	if group.Count == 0 {
		return
	}

	switch aggregation {
	case AggSum:
		group.Value = SumMeasure(group.View, measure)
	case AggCount:
		group.Value = float64(group.Count)
	case AggAvg:
		group.Value = AvgMeasure(group.View, measure)
	case AggMax:
		group.Value = MaxMeasure(group.View, measure)
	case AggMin:
		group.Value = MinMeasure(group.View, measure)
	default:
		group.Value = SumMeasure(group.View, measure)
	}
}

// SumMeasure sums a named measure across a view.
// Accumulation is exact in decimal; NaN and ±Inf read as 0.
func SumMeasure(view RecordView, measure string) float64 {
	total := decimal.Zero
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// AvgMeasure computes average of a named measure.
func AvgMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	return SumMeasure(view, measure) / float64(n)
}

// MaxMeasure returns the largest value of a named measure.
func MaxMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := math.Inf(-1)
	for i := 0; i < n; i++ {
		if v := view.Measure(i, measure); v > m {
			m = v
		}
	}
	return m
}

// MinMeasure returns the smallest value of a named measure.
func MinMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := math.Inf(1)
	for i := 0; i < n; i++ {
		if v := view.Measure(i, measure); v < m {
			m = v
		}
	}
	return m
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts aggregate groups by the specified sort mode.
// The sort is stable: equal values keep first-encounter order.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case SortValueDesc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case SortValueAsc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	case SortChronological:
		sort.SliceStable(groups, func(i, j int) bool { return compareKeys(groups[i].Key, groups[j].Key) < 0 })
	case SortLabelAsc:
		sort.SliceStable(groups, func(i, j int) bool {
			return strings.ToLower(groups[i].Label) < strings.ToLower(groups[j].Label)
		})
	case SortLabelDesc:
		sort.SliceStable(groups, func(i, j int) bool {
			return strings.ToLower(groups[i].Label) > strings.ToLower(groups[j].Label)
		})
	default:
		// preserve grouping order
	}
}

// compareKeys orders keys numerically when both are integers ("2009" < "2012")
// and lexically otherwise ("2009-03-01" < "2009-12-01").
func compareKeys(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

var printer = message.NewPrinter(language.English)

// FormatNumber formats v with two decimals and thousands separators.
func FormatNumber(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatCurrency formats an amount in dollars: "$1,234.50", "-$12.00".
func FormatCurrency(amount float64) string {
	if amount < 0 {
		return "-$" + FormatNumber(-amount)
	}
	return "$" + FormatNumber(amount)
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	return printer.Sprintf("%d", n)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// LabelForDimension returns the display label of a column key.
func LabelForDimension(dimension string) string {
	return schema.DisplayName(dimension)
}

// LabelForAggregation returns a human-readable label for an aggregation over measure.
func LabelForAggregation(aggregation, measure string) string {
	switch aggregation {
	case AggCount:
		return "Count"
	case AggAvg:
		return "Average " + schema.DisplayName(measure)
	case AggMax:
		return "Maximum " + schema.DisplayName(measure)
	case AggMin:
		return "Minimum " + schema.DisplayName(measure)
	default:
		return schema.DisplayName(measure)
	}
}
