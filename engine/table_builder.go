package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from a Report
// ============================================================================
// One row per series point: label, value, count. The summary carries totals.
// ============================================================================

// BuildTable produces a TableData from a computed report.
// A failed or empty report yields a table with columns and no rows.
func BuildTable(report *Report, q Question) *TableData {
	table := &TableData{
		Title:   report.Title,
		Columns: tableColumns(q),
		Rows:    [][]string{},
	}
	if len(report.Series) == 0 {
		return table
	}

	var totalCount int
	for _, p := range report.Series {
		table.Rows = append(table.Rows, []string{
			p.Label,
			FormatNumber(p.Value),
			FormatInt(p.Count),
		})
		totalCount += p.Count
	}

	table.Summary = &Summary{
		Label: fmt.Sprintf("Total (%d groups)", len(report.Series)),
		Values: map[string]string{
			"value": FormatNumber(report.Series.Total()),
			"count": FormatInt(totalCount),
		},
	}
	return table
}

func tableColumns(q Question) []Column {
	groupLabel := "Group"
	if q.XAxis != "" {
		groupLabel = q.XAxis
	} else if len(q.GroupBy) > 0 {
		groupLabel = LabelForDimension(q.GroupBy[0])
	}
	valueLabel := q.YAxis
	if valueLabel == "" {
		valueLabel = LabelForAggregation(q.Aggregation, q.Measure)
	}

	return []Column{
		{Key: "group", Label: groupLabel, Type: "text", Align: "left"},
		{Key: "value", Label: valueLabel, Type: "number", Align: "right"},
		{Key: "count", Label: "Rows", Type: "number", Align: "right"},
	}
}
