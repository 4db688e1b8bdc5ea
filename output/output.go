// Package output writes computed reports as JSON, CSV or plain text.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/ebrunovs/bi-atvi2/engine"
)

// Formats accepted by Write.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
	FormatCSV    = "csv"
)

// Write dispatches on format.
func Write(w io.Writer, format string, reports []*engine.Report) error {
	switch format {
	case FormatText, "":
		return WriteText(w, reports)
	case FormatJSON:
		return WriteJSON(w, reports, false)
	case FormatPretty:
		return WriteJSON(w, reports, true)
	case FormatCSV:
		return WriteCSV(w, reports)
	default:
		return fmt.Errorf("unknown format %q (want text, json, pretty or csv)", format)
	}
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

// WriteJSON writes v followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var out []byte
	var err error

	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}

// ============================================================================
// CSV OUTPUT
// ============================================================================

var csvHeader = []string{"question", "number", "title", "label", "value", "count", "error"}

// WriteCSV writes one row per series point. A failed or empty report still
// gets one row so every question appears.
func WriteCSV(w io.Writer, reports []*engine.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range reports {
		number := ""
		if r.Number > 0 {
			number = strconv.Itoa(r.Number)
		}
		if len(r.Series) == 0 {
			if err := cw.Write([]string{r.QuestionID, number, r.Title, "", "", "", r.Error}); err != nil {
				return err
			}
			continue
		}
		for _, p := range r.Series {
			row := []string{r.QuestionID, number, r.Title, p.Label, fmtNum(p.Value), strconv.Itoa(p.Count), ""}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ============================================================================
// TEXT OUTPUT
// ============================================================================

// WriteText writes an aligned listing of each report.
func WriteText(w io.Writer, reports []*engine.Report) error {
	for i, r := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeReportText(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeReportText(w io.Writer, r *engine.Report) error {
	header := r.Title
	if r.Number > 0 {
		header = fmt.Sprintf("%d. %s", r.Number, r.Title)
	}
	lines := []string{header}

	switch {
	case r.Error != "":
		lines = append(lines, "   error: "+r.Error)
	case len(r.Series) == 0:
		lines = append(lines, "   "+engine.NoDataMessage)
	default:
		labels := append(r.Series.Labels(), "Total")
		values := make([]string, 0, len(labels))
		for _, p := range r.Series {
			values = append(values, engine.FormatNumber(p.Value))
		}
		values = append(values, engine.FormatNumber(r.Series.Total()))

		lw, vw := widest(labels), widest(values)
		for i := range labels {
			lines = append(lines, fmt.Sprintf("   %-*s  %*s", lw, labels[i], vw, values[i]))
		}

		switch {
		case r.Reply != "":
			lines = append(lines, "   "+r.Reply)
		case r.Trend != nil:
			lines = append(lines, "   "+r.Trend.Conclusion())
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

func widest(items []string) int {
	n := 0
	for _, s := range items {
		if l := utf8.RuneCountInString(s); l > n {
			n = l
		}
	}
	return n
}

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
