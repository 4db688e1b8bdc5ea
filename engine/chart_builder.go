package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from a Series
// ============================================================================
// Stateless: the series is copied into the config, never mutated.
// An empty series yields a placeholder carrying the title and NoDataMessage.
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// DefaultColor returns the i-th palette color, wrapping around.
func DefaultColor(i int) string {
	if i < 0 {
		i = -i
	}
	return defaultColors[i%len(defaultColors)]
}

// Render describes how series should be drawn as a chart of the given kind.
// An unknown kind falls back to vertical bars.
func Render(series Series, kind ChartKind, title string, opts ...RenderOption) *ChartConfig {
	rc := applyRenderOptions(opts)
	if !kind.Valid() {
		kind = ChartBar
	}

	config := &ChartConfig{
		ChartType: kind,
		Title:     title,
		Series:    []ChartSeries{},
	}

	if len(series) == 0 {
		config.Empty = true
		config.Message = NoDataMessage
		return config
	}

	config.XAxis = rc.XAxis
	config.YAxis = rc.YAxis
	config.ShowGrid = rc.Grid
	config.Markers = kind == ChartLine

	color := rc.Color
	if color == "" {
		color = DefaultColor(0)
	}
	config.Series = buildSingleSeries(series, seriesName(rc.YAxis, title), color)
	config.Colors = []string{color}
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(series Series, name string, color string) []ChartSeries {
	points := make([]ChartPoint, 0, len(series))
	for _, p := range series {
		points = append(points, ChartPoint{
			Label: p.Label,
			Value: RoundTo2(p.Value),
		})
	}

	return []ChartSeries{{
		Name:  name,
		Data:  points,
		Color: color,
	}}
}

func seriesName(yAxis, title string) string {
	if yAxis != "" {
		return yAxis
	}
	if title != "" {
		return title
	}
	return "Value"
}
