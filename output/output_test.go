package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebrunovs/bi-atvi2/engine"
)

func fixtureReports() []*engine.Report {
	missing := errors.New(`question "carrier-freight": required column "freight" is missing`)

	trendSeries := engine.Series{
		{Label: "2009", Key: "2009", Value: 100.5, Count: 3},
		{Label: "2010", Key: "2010", Value: 0, Count: 1},
		{Label: "2012", Key: "2012", Value: 255.5, Count: 2},
	}

	return []*engine.Report{
		{
			QuestionID: "top-customers",
			Number:     1,
			Title:      "Top customers",
			Series: engine.Series{
				{Label: "Bolt GmbH", Key: "Bolt GmbH", Value: 200, Count: 1},
				{Label: "Ana Trading", Key: "Ana Trading", Value: 100.5, Count: 2},
			},
			Reply: "Bolt GmbH leads with $200.00.",
		},
		{
			QuestionID: "carrier-freight",
			Number:     4,
			Title:      "Freight by carrier",
			Series:     engine.Series{},
			Error:      missing.Error(),
			Err:        missing,
		},
		{
			QuestionID: "mens-footwear-germany",
			Number:     5,
			Title:      "Men's Footwear in Germany",
			Series:     engine.Series{},
			Reply:      engine.NoDataMessage,
		},
		{
			QuestionID: "yearly-sales-trend",
			Number:     8,
			Title:      "Yearly sales (2009-2012)",
			Series:     trendSeries,
			Trend:      engine.BuildTrend(trendSeries),
			Reply:      "Total sold in 2009: $100.50. Sales are stable or variable between 2009 and 2012.",
		},
	}
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, fixtureReports()))

	golden(t).Assert(t, "reports_text", buf.Bytes())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, fixtureReports()))

	golden(t).Assert(t, "reports_csv", buf.Bytes())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatPretty, fixtureReports()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 4)
	assert.Equal(t, "top-customers", decoded[0]["questionId"])
	assert.Equal(t, `question "carrier-freight": required column "freight" is missing`, decoded[1]["error"])
	assert.NotContains(t, decoded[1], "Err")
	assert.Equal(t, "stable or variable", decoded[3]["trend"].(map[string]any)["direction"])
	assert.Contains(t, buf.String(), "\n  {")

	buf.Reset()
	require.NoError(t, Write(&buf, FormatJSON, fixtureReports()[:1]))
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", nil)

	assert.EqualError(t, err, `unknown format "xml" (want text, json, pretty or csv)`)
}

func TestFmtNum(t *testing.T) {
	assert.Equal(t, "200", fmtNum(200))
	assert.Equal(t, "100.50", fmtNum(100.5))
	assert.Equal(t, "-3", fmtNum(-3))
	assert.Equal(t, "0", fmtNum(0))
}
