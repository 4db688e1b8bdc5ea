package dashboard

import (
	"encoding/base64"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebrunovs/bi-atvi2/engine"
	"github.com/ebrunovs/bi-atvi2/schema"
)

func fixture(t *testing.T) *Dashboard {
	t.Helper()

	rows := []engine.JoinedFact{
		{FactRow: engine.FactRow{CustomerName: "Alfreds", Sale: 120, Freight: 5}, CarrierName: "Speedy Express"},
		{FactRow: engine.FactRow{CustomerName: "Bólido", Sale: 60, Freight: 3}, CarrierName: "United Package"},
		{FactRow: engine.FactRow{CustomerName: "Alfreds", Sale: 30, Freight: 2}, CarrierName: "Speedy Express"},
	}
	ds := engine.NewDataset(rows, []string{schema.CustomerName, schema.CarrierName, schema.Sale, schema.Freight})

	questions := []engine.Question{
		engine.Normalize(engine.Question{
			ID: "top-customers", Number: 1, Title: "Top customers <by sales>",
			GroupBy: []string{schema.CustomerName}, Measure: schema.Sale,
		}),
		engine.Normalize(engine.Question{
			ID: "freight", Number: 2, Title: "Freight by carrier",
			GroupBy: []string{schema.CarrierName}, Measure: schema.Freight, Chart: engine.ChartBarH,
		}),
		engine.Normalize(engine.Question{
			ID: "by-year", Number: 3, Title: "Sales by year",
			GroupBy: []string{schema.Year}, Measure: schema.Sale,
		}),
	}
	reports := engine.ComputeAll(questions, ds)

	d, err := New(questions, reports, WithTitle("Test dashboard"))
	require.NoError(t, err)
	return d
}

func get(t *testing.T, d *Dashboard, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	d.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestIndexPage(t *testing.T) {
	d := fixture(t)
	rec := get(t, d, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "<h1>Test dashboard</h1>")
	assert.Contains(t, body, "Top customers &lt;by sales&gt;")
	assert.Contains(t, html.UnescapeString(body), `src="data:image/svg+xml;base64,`)
	assert.Contains(t, body, "Alfreds")
	assert.Contains(t, body, "150.00")
	assert.Contains(t, body, `class="error"`)
	assert.Contains(t, body, `id="by-year"`)
}

var imageSrc = regexp.MustCompile(`src="([^"]+)"`)

func TestIndexPageEmbedsCharts(t *testing.T) {
	d := fixture(t)
	body := get(t, d, "/").Body.String()

	sources := imageSrc.FindAllStringSubmatch(body, -1)
	require.Len(t, sources, 3)

	const prefix = "data:image/svg+xml;base64,"
	uri := html.UnescapeString(sources[1][1])
	require.True(t, strings.HasPrefix(uri, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	assert.Equal(t, get(t, d, "/charts/freight.svg").Body.String(), string(raw))
}

func TestChartRoute(t *testing.T) {
	d := fixture(t)

	rec := get(t, d, "/charts/freight.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<svg")
	assert.Contains(t, rec.Body.String(), "Speedy Express")

	// a failed question still has a placeholder chart
	rec = get(t, d, "/charts/by-year.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), engine.NoDataMessage)

	rec = get(t, d, "/charts/nope.svg")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportsAPI(t *testing.T) {
	d := fixture(t)

	rec := get(t, d, "/api/reports")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var summaries []Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 3)
	assert.Equal(t, Summary{ID: "top-customers", Number: 1, Title: "Top customers <by sales>", Points: 2}, summaries[0])
	assert.Equal(t, 2, summaries[1].Points)
	assert.NotEmpty(t, summaries[2].Error)
}

func TestReportAPI(t *testing.T) {
	d := fixture(t)

	rec := get(t, d, "/api/reports/top-customers")
	require.Equal(t, http.StatusOK, rec.Code)

	var report engine.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "top-customers", report.QuestionID)
	require.Len(t, report.Series, 2)
	assert.Equal(t, "Alfreds", report.Series[0].Label)
	assert.InDelta(t, 150.0, report.Series[0].Value, 1e-9)
	assert.Equal(t, "Bólido", report.Series[1].Label)

	rec = get(t, d, "/api/reports/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	d := fixture(t)
	rec := httptest.NewRecorder()
	d.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNewRejectsMismatchedInput(t *testing.T) {
	_, err := New([]engine.Question{{ID: "a"}}, nil)
	assert.Error(t, err)
}
