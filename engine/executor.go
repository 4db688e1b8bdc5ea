package engine

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ============================================================================
// EXECUTOR — Question dispatcher + Placeholder Resolution
// ============================================================================
// Entry points: ComputeReport(q, ds) and ComputeAll(questions, ds, opts...)
//
// Pipeline per question:
//   1. Validate required columns against the dataset
//   2. Filter → group → aggregate → sort → limit (Aggregate)
//   3. Describe the chart (Render)
//   4. Attach the trend summary when asked
//   5. Resolve the reply template placeholders
//
// Zero data copy — every question reads the shared dataset through RecordView.
// ============================================================================

// ComputeReport answers one question. A question whose columns are not
// available returns a failed report carrying a placeholder chart and the
// *schema.MissingColumnError.
func ComputeReport(q Question, ds *Dataset) (*Report, error) {
	report := &Report{
		QuestionID: q.ID,
		Number:     q.Number,
		Title:      q.Title,
		Series:     Series{},
	}

	if err := q.Validate(ds); err != nil {
		return fail(report, q, err), err
	}

	report.Series = Aggregate(ds.View(), q)
	report.Chart = Render(report.Series, q.Chart, q.Title, q.renderOptions()...)
	if q.Summary == SummaryTrend {
		report.Trend = BuildTrend(report.Series)
	}
	report.Reply = ResolvePlaceholders(q.Reply, report)
	return report, nil
}

// ComputeAll answers every question on a bounded worker pool.
// reports[i] answers questions[i]. A failing question never stops the others;
// its report carries the error instead.
func ComputeAll(questions []Question, ds *Dataset, opts ...Option) []*Report {
	cfg := applyOptions(opts)
	reports := make([]*Report, len(questions))

	cfg.Logger.Info().
		Int("questions", len(questions)).
		Int("rows", ds.Len()).
		Int("workers", cfg.Workers).
		Msg("computing reports")

	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for i, q := range questions {
		i, q := i, q
		g.Go(func() error {
			start := time.Now()
			report, err := computeSafely(q, ds)
			reports[i] = report
			if err != nil {
				cfg.Logger.Warn().Err(err).Str("question", q.ID).Msg("question skipped")
				return nil
			}
			cfg.Logger.Debug().
				Str("question", q.ID).
				Int("points", len(report.Series)).
				Dur("took", time.Since(start)).
				Msg("question computed")
			return nil
		})
	}
	_ = g.Wait()

	return reports
}

// computeSafely turns a panic inside one question into that question's error.
func computeSafely(q Question, ds *Dataset) (report *Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("question %q: %v", q.ID, r)
			report = fail(&Report{QuestionID: q.ID, Number: q.Number, Title: q.Title, Series: Series{}}, q, err)
		}
	}()
	return ComputeReport(q, ds)
}

func fail(report *Report, q Question, err error) *Report {
	report.Err = err
	report.Error = err.Error()
	report.Chart = Render(Series{}, q.Chart, q.Title)
	return report
}

// ============================================================================
// PLACEHOLDER RESOLUTION
// ============================================================================

// ResolvePlaceholders substitutes computed values into a reply template.
//
//	{total} {count} {groups}            series totals
//	{top_label} {top_value}             highest point
//	{bottom_label} {bottom_value}       lowest point
//	{first_period} {first_value}        trend start (trend questions)
//	{last_period} {last_value}
//	{change_amount} {change_percent} {direction}
//
// Unresolved placeholders are stripped.
func ResolvePlaceholders(template string, report *Report) string {
	if template == "" {
		return buildDefaultReply(report)
	}
	if len(report.Series) == 0 {
		return NoDataMessage
	}

	series := report.Series
	var count int
	for _, p := range series {
		count += p.Count
	}

	replacements := map[string]string{
		"{total}":  FormatCurrency(series.Total()),
		"{count}":  FormatInt(count),
		"{groups}": FormatInt(len(series)),
	}

	top, bottom := series[0], series[0]
	for _, p := range series[1:] {
		if p.Value > top.Value {
			top = p
		}
		if p.Value < bottom.Value {
			bottom = p
		}
	}
	replacements["{top_label}"] = top.Label
	replacements["{top_value}"] = FormatCurrency(top.Value)
	replacements["{bottom_label}"] = bottom.Label
	replacements["{bottom_value}"] = FormatCurrency(bottom.Value)

	if t := report.Trend; t != nil {
		replacements["{first_period}"] = t.FirstPeriod
		replacements["{first_value}"] = FormatCurrency(t.FirstValue)
		replacements["{last_period}"] = t.LastPeriod
		replacements["{last_value}"] = FormatCurrency(t.LastValue)
		replacements["{change_amount}"] = FormatCurrency(t.ChangeAmount)
		replacements["{change_percent}"] = fmt.Sprintf("%.1f%%", t.ChangePercent)
		replacements["{direction}"] = t.Direction
	}

	result := template
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Safety net: strip unresolved placeholders
	return stripUnresolvedPlaceholders(result)
}

// ============================================================================
// QUESTION NORMALIZATION
// ============================================================================

// Normalize fills the defaults of a decoded question: sum, value_desc, bar.
func Normalize(q Question) Question {
	if q.Aggregation == "" {
		q.Aggregation = AggSum
	}
	if q.SortBy == "" {
		q.SortBy = SortValueDesc
	}
	if q.Chart == "" {
		q.Chart = ChartBar
	}
	return q
}

// ============================================================================
// INTERNAL HELPERS
// ============================================================================

func buildDefaultReply(report *Report) string {
	if len(report.Series) == 0 {
		return NoDataMessage
	}
	return fmt.Sprintf("%s groups totalling %s.",
		FormatInt(len(report.Series)), FormatNumber(report.Series.Total()))
}

// FilterLabel creates a human-readable label from Filters, keys sorted.
func FilterLabel(f Filters) string {
	if f.IsEmpty() {
		return "All records"
	}

	parts := []string{}
	for _, key := range f.Keys() {
		if !f.HasFilter(key) {
			continue // required-only keys restrict silently
		}
		if vals := f.Dimensions[key]; len(vals) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", LabelForDimension(key), strings.Join(vals, ", ")))
		}
		if r, ok := f.Ranges[key]; ok {
			parts = append(parts, fmt.Sprintf("%s: %d–%d", LabelForDimension(key), r.Min, r.Max))
		}
	}

	if len(parts) == 0 {
		return "All records"
	}
	return strings.Join(parts, "; ")
}

var placeholderRegex = regexp.MustCompile(`\{[a-z_]+\}`)

func stripUnresolvedPlaceholders(text string) string {
	if !placeholderRegex.MatchString(text) {
		return text
	}
	cleaned := placeholderRegex.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimRight(cleaned, " .—-–")
	if cleaned == "" {
		return text
	}
	return cleaned
}
