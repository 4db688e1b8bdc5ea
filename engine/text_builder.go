package engine

import (
	"fmt"
	"strconv"
)

// ============================================================================
// TREND BUILDER — Summarizes a chronological series
// ============================================================================
// The series is read in the order given; callers sort it chronologically
// before asking for a trend.
// ============================================================================

// BuildTrend reports the first and last period of series and whether the
// values move monotonically. Equal neighbours do not break monotony; a
// series whose values are all equal is neither increasing nor decreasing.
func BuildTrend(series Series) *TrendData {
	if len(series) == 0 {
		return &TrendData{Direction: TrendInsufficient}
	}

	first := series[0]
	last := series[len(series)-1]

	trend := &TrendData{
		FirstPeriod:  first.Label,
		FirstValue:   first.Value,
		LastPeriod:   last.Label,
		LastValue:    last.Value,
		ChangeAmount: last.Value - first.Value,
	}
	if first.Value != 0 {
		trend.ChangePercent = (trend.ChangeAmount / first.Value) * 100
	}

	if len(series) < 2 {
		trend.Direction = TrendInsufficient
		return trend
	}

	increasing, decreasing := true, true
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1].Value, series[i].Value
		if cur < prev {
			increasing = false
		}
		if cur > prev {
			decreasing = false
		}
	}

	switch {
	case increasing && decreasing:
		trend.Direction = TrendVariable
	case increasing:
		trend.Direction = TrendIncreasing
	case decreasing:
		trend.Direction = TrendDecreasing
	default:
		trend.Direction = TrendVariable
	}
	return trend
}

// Conclusion renders the trend as a sentence for text output.
func (t *TrendData) Conclusion() string {
	if t == nil || t.Direction == TrendInsufficient {
		return "Not enough periods to judge the trend."
	}
	return fmt.Sprintf("Sales are %s between %s and %s.", t.Direction, t.FirstPeriod, t.LastPeriod)
}

// Period returns "first – last", or the single period.
func (t *TrendData) Period() string {
	if t == nil || t.FirstPeriod == "" {
		return "No data"
	}
	if t.FirstPeriod == t.LastPeriod {
		return t.FirstPeriod
	}
	return fmt.Sprintf("%s – %s", t.FirstPeriod, t.LastPeriod)
}

// FormatYear renders a year key the way the year dimension does.
func FormatYear(y int) string {
	return strconv.Itoa(y)
}
