// Package dashboard serves precomputed reports as an HTML page and a
// read-only JSON API.
package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ebrunovs/bi-atvi2/engine"
	"github.com/ebrunovs/bi-atvi2/render"
)

//go:embed templates/index.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

// Panel is one question on the page.
type Panel struct {
	ID     string
	Number int
	Title  string
	Image  template.URL // data URI of the chart
	Reply  string
	Error  string
	Table  *engine.TableData
}

// Dashboard holds reports and their rendered charts. It never recomputes.
type Dashboard struct {
	title   string
	reports []*engine.Report
	byID    map[string]int
	charts  [][]byte
	page    []byte
	logger  zerolog.Logger
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithTitle sets the page heading.
func WithTitle(title string) Option {
	return func(d *Dashboard) {
		d.title = title
	}
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dashboard) {
		d.logger = l
	}
}

// New renders every chart and the page once. questions[i] must describe reports[i].
func New(questions []engine.Question, reports []*engine.Report, opts ...Option) (*Dashboard, error) {
	if len(questions) != len(reports) {
		return nil, fmt.Errorf("dashboard: %d questions for %d reports", len(questions), len(reports))
	}

	d := &Dashboard{
		title:   "Sales dashboard",
		reports: reports,
		byID:    make(map[string]int, len(reports)),
		charts:  make([][]byte, len(reports)),
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(d)
	}

	panels := make([]Panel, len(reports))
	for i, r := range reports {
		d.byID[r.QuestionID] = i

		var buf bytes.Buffer
		if err := render.SVG(&buf, chartOf(r)); err != nil {
			return nil, fmt.Errorf("failed to render %q: %w", r.QuestionID, err)
		}
		d.charts[i] = buf.Bytes()

		uri, err := render.DataURI(chartOf(r))
		if err != nil {
			return nil, err
		}
		panels[i] = Panel{
			ID:     r.QuestionID,
			Number: r.Number,
			Title:  r.Title,
			Image:  template.URL(uri),
			Reply:  r.Reply,
			Error:  r.Error,
			Table:  engine.BuildTable(r, questions[i]),
		}
	}

	var page bytes.Buffer
	err := pageTemplate.Execute(&page, map[string]any{
		"Title":     d.title,
		"Panels":    panels,
		"Generated": time.Now().Format("2006-01-02 15:04"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build page: %w", err)
	}
	d.page = page.Bytes()
	return d, nil
}

// chartOf returns the report's chart, or a placeholder when it has none.
func chartOf(r *engine.Report) *engine.ChartConfig {
	if r.Chart != nil {
		return r.Chart
	}
	return engine.Render(engine.Series{}, engine.ChartBar, r.Title)
}

// Report returns the report with the given question id.
func (d *Dashboard) Report(id string) (*engine.Report, bool) {
	i, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return d.reports[i], true
}
