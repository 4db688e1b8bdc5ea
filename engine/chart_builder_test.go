package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmptySeriesIsPlaceholder(t *testing.T) {
	for _, kind := range []ChartKind{ChartBar, ChartBarH, ChartLine} {
		t.Run(string(kind), func(t *testing.T) {
			cfg := Render(Series{}, kind, "Vendas de Men's Footwear na Alemanha", WithAxes("x", "y"))

			require.NotNil(t, cfg)
			assert.True(t, cfg.Empty)
			assert.Equal(t, "Vendas de Men's Footwear na Alemanha", cfg.Title)
			assert.Equal(t, NoDataMessage, cfg.Message)
			assert.Equal(t, kind, cfg.ChartType)
			assert.Empty(t, cfg.Series)
			assert.Empty(t, cfg.XAxis)
			assert.False(t, cfg.ShowGrid)
		})
	}

	cfg := Render(nil, ChartBar, "")
	assert.True(t, cfg.Empty)
	assert.Empty(t, cfg.Title)
}

func TestRenderSeries(t *testing.T) {
	series := Series{{Label: "A", Value: 130.456}, {Label: "B", Value: 50}}

	cfg := Render(series, ChartBarH, "Top", WithAxes("Customer", "Sales ($)"), WithColor("#123456"))

	assert.False(t, cfg.Empty)
	assert.Equal(t, ChartBarH, cfg.ChartType)
	assert.Equal(t, "Customer", cfg.XAxis)
	assert.Equal(t, "Sales ($)", cfg.YAxis)
	assert.True(t, cfg.ShowGrid)
	assert.False(t, cfg.Markers)
	require.Len(t, cfg.Series, 1)
	assert.Equal(t, "Sales ($)", cfg.Series[0].Name)
	assert.Equal(t, "#123456", cfg.Series[0].Color)
	assert.Equal(t, []ChartPoint{{Label: "A", Value: 130.46}, {Label: "B", Value: 50}}, cfg.Series[0].Data)
}

func TestRenderDefaults(t *testing.T) {
	cfg := Render(Series{{Label: "2009", Value: 1}}, ChartKind("pie"), "Trend", WithoutGrid())

	assert.Equal(t, ChartBar, cfg.ChartType)
	assert.Equal(t, DefaultColor(0), cfg.Series[0].Color)
	assert.Equal(t, "Trend", cfg.Series[0].Name)
	assert.False(t, cfg.ShowGrid)

	line := Render(Series{{Label: "2009", Value: 1}}, ChartLine, "Trend")
	assert.True(t, line.Markers)
}

func TestRenderDoesNotMutateSeries(t *testing.T) {
	series := Series{{Label: "A", Value: 1.005}, {Label: "B", Value: 2}}
	before := append(Series(nil), series...)

	Render(series, ChartBar, "t")

	assert.Equal(t, before, series)
}
