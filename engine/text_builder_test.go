package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func yearly(values ...float64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = Point{Label: FormatYear(2009 + i), Value: v}
	}
	return s
}

func TestBuildTrend(t *testing.T) {
	tests := []struct {
		name   string
		series Series
		want   string
	}{
		{"empty", Series{}, TrendInsufficient},
		{"single period", yearly(10), TrendInsufficient},
		{"increasing", yearly(10, 20, 20, 40), TrendIncreasing},
		{"decreasing", yearly(40, 30, 10), TrendDecreasing},
		{"variable", yearly(10, 30, 20), TrendVariable},
		{"flat", yearly(5, 5, 5), TrendVariable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildTrend(tt.series).Direction)
		})
	}
}

func TestBuildTrendPeriods(t *testing.T) {
	trend := BuildTrend(yearly(200, 250, 300, 500))

	assert.Equal(t, "2009", trend.FirstPeriod)
	assert.Equal(t, 200.0, trend.FirstValue)
	assert.Equal(t, "2012", trend.LastPeriod)
	assert.Equal(t, 500.0, trend.LastValue)
	assert.Equal(t, 300.0, trend.ChangeAmount)
	assert.Equal(t, 150.0, trend.ChangePercent)
	assert.Equal(t, "2009 – 2012", trend.Period())
	assert.Equal(t, "Sales are increasing between 2009 and 2012.", trend.Conclusion())
}

func TestTrendConclusionInsufficient(t *testing.T) {
	var none *TrendData

	assert.Equal(t, "Not enough periods to judge the trend.", none.Conclusion())
	assert.Equal(t, "No data", none.Period())
	assert.Equal(t, "2009", BuildTrend(yearly(1)).Period())
}
