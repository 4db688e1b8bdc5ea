// Package render draws engine.ChartConfig descriptions as SVG images.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/ebrunovs/bi-atvi2/engine"
)

// ============================================================================
// SVG BACKEND — ChartConfig → SVG document
// ============================================================================
// Vertical bars, horizontal bars (first point at the bottom), lines with
// markers, and the "No data available" placeholder with no axes.
// ============================================================================

const (
	titleStyle   = "font-family:sans-serif;font-size:16px;font-weight:bold;text-anchor:middle;fill:#1F2937"
	labelStyle   = "font-family:sans-serif;font-size:11px;fill:#374151"
	messageStyle = "font-family:sans-serif;font-size:14px;text-anchor:middle;fill:#6B7280"
	axisStyle    = "stroke:#374151;stroke-width:1"
	gridStyle    = "stroke:#E5E7EB;stroke-width:1"
	ticks        = 5
)

// SVG writes cfg as a standalone SVG document.
func SVG(w io.Writer, cfg *engine.ChartConfig, opts ...Option) error {
	o := applyOptions(opts)
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	canvas.Start(o.Width, o.Height)
	canvas.Title(cfg.Title)
	canvas.Rect(0, 0, o.Width, o.Height, "fill:"+o.Background)
	canvas.Text(o.Width/2, 28, cfg.Title, titleStyle)

	if cfg.Empty || len(cfg.Series) == 0 || len(cfg.Series[0].Data) == 0 {
		message := cfg.Message
		if message == "" {
			message = engine.NoDataMessage
		}
		canvas.Text(o.Width/2, o.Height/2, message, messageStyle)
		canvas.End()
		return ew.err
	}

	l := newLayout(o, cfg)
	switch cfg.ChartType {
	case engine.ChartBarH:
		drawBarH(canvas, l, cfg)
	case engine.ChartLine:
		drawLine(canvas, l, cfg)
	default:
		drawBar(canvas, l, cfg)
	}
	drawAxisLabels(canvas, l, cfg)

	canvas.End()
	return ew.err
}

// DataURI encodes cfg as an embeddable data:image/svg+xml URI.
func DataURI(cfg *engine.ChartConfig, opts ...Option) (string, error) {
	var buf bytes.Buffer
	if err := SVG(&buf, cfg, opts...); err != nil {
		return "", fmt.Errorf("failed to render %q: %w", cfg.Title, err)
	}
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ============================================================================
// LAYOUT
// ============================================================================

// layout is the plot area and the value scale of one chart.
type layout struct {
	left, top, width, height int
	min, max                 float64
	n                        int
}

func newLayout(o *options, cfg *engine.ChartConfig) layout {
	l := layout{
		left:   o.MarginLeft,
		top:    o.MarginTop,
		width:  o.Width - o.MarginLeft - o.MarginRight,
		height: o.Height - o.MarginTop - o.MarginBottom,
		n:      len(cfg.Series[0].Data),
	}
	if cfg.ChartType == engine.ChartBarH {
		l.left = o.MarginLeftBarH
		l.width = o.Width - o.MarginLeftBarH - o.MarginRight
	}

	for _, p := range cfg.Series[0].Data {
		l.min = math.Min(l.min, p.Value)
		l.max = math.Max(l.max, p.Value)
	}
	if l.max == l.min {
		l.max = l.min + 1
	}
	return l
}

// frac maps v onto [0, 1] of the value scale.
func (l layout) frac(v float64) float64 {
	return (v - l.min) / (l.max - l.min)
}

// valueY is the pixel row of v on a vertical scale.
func (l layout) valueY(v float64) int {
	return l.top + l.height - int(math.Round(l.frac(v)*float64(l.height)))
}

// valueX is the pixel column of v on a horizontal scale.
func (l layout) valueX(v float64) int {
	return l.left + int(math.Round(l.frac(v)*float64(l.width)))
}

// band returns the start and size of slot i along an axis of the given length.
func (l layout) band(i, length int) (int, int) {
	slot := float64(length) / float64(l.n)
	return int(math.Round(float64(i) * slot)), int(math.Round(slot))
}

// rowY is the top of horizontal bar i; i = 0 sits at the bottom.
func (l layout) rowY(i int) (int, int) {
	start, size := l.band(l.n-1-i, l.height)
	return l.top + start, size
}

func (l layout) tick(k int) float64 {
	return l.min + (l.max-l.min)*float64(k)/ticks
}

// ============================================================================
// DRAWING
// ============================================================================

func drawBar(canvas *svg.SVG, l layout, cfg *engine.ChartConfig) {
	if cfg.ShowGrid {
		for k := 0; k <= ticks; k++ {
			y := l.valueY(l.tick(k))
			canvas.Line(l.left, y, l.left+l.width, y, gridStyle)
			canvas.Text(l.left-6, y+4, engine.FormatNumber(l.tick(k)), labelStyle+";text-anchor:end")
		}
	}

	s := cfg.Series[0]
	zero := l.valueY(0)
	for i, p := range s.Data {
		start, size := l.band(i, l.width)
		barW := size * 7 / 10
		x := l.left + start + (size-barW)/2
		y := l.valueY(p.Value)
		top, h := y, zero-y
		if h < 0 {
			top, h = zero, -h
		}
		canvas.Rect(x, top, barW, h, "fill:"+s.Color)

		cx := l.left + start + size/2
		ly := l.top + l.height + 14
		canvas.Text(cx, ly, p.Label, labelStyle+";text-anchor:end",
			fmt.Sprintf(`transform="rotate(-35 %d %d)"`, cx, ly))
	}
	canvas.Line(l.left, zero, l.left+l.width, zero, axisStyle)
	canvas.Line(l.left, l.top, l.left, l.top+l.height, axisStyle)
}

func drawBarH(canvas *svg.SVG, l layout, cfg *engine.ChartConfig) {
	if cfg.ShowGrid {
		for k := 0; k <= ticks; k++ {
			x := l.valueX(l.tick(k))
			canvas.Line(x, l.top, x, l.top+l.height, gridStyle)
			canvas.Text(x, l.top+l.height+16, engine.FormatNumber(l.tick(k)), labelStyle+";text-anchor:middle")
		}
	}

	s := cfg.Series[0]
	zero := l.valueX(0)
	for i, p := range s.Data {
		rowTop, size := l.rowY(i)
		barH := size * 7 / 10
		y := rowTop + (size-barH)/2
		x := l.valueX(p.Value)
		left, w := zero, x-zero
		if w < 0 {
			left, w = x, -w
		}
		canvas.Rect(left, y, w, barH, "fill:"+s.Color)
		canvas.Text(l.left-6, rowTop+size/2+4, p.Label, labelStyle+";text-anchor:end")
	}
	canvas.Line(zero, l.top, zero, l.top+l.height, axisStyle)
	canvas.Line(l.left, l.top+l.height, l.left+l.width, l.top+l.height, axisStyle)
}

func drawLine(canvas *svg.SVG, l layout, cfg *engine.ChartConfig) {
	if cfg.ShowGrid {
		for k := 0; k <= ticks; k++ {
			y := l.valueY(l.tick(k))
			canvas.Line(l.left, y, l.left+l.width, y, gridStyle)
			canvas.Text(l.left-6, y+4, engine.FormatNumber(l.tick(k)), labelStyle+";text-anchor:end")
		}
	}

	s := cfg.Series[0]
	xs := make([]int, len(s.Data))
	ys := make([]int, len(s.Data))
	for i, p := range s.Data {
		start, size := l.band(i, l.width)
		xs[i] = l.left + start + size/2
		ys[i] = l.valueY(p.Value)
		canvas.Text(xs[i], l.top+l.height+16, p.Label, labelStyle+";text-anchor:middle")
	}
	canvas.Polyline(xs, ys, "fill:none;stroke-width:2;stroke:"+s.Color)
	if cfg.Markers {
		for i := range xs {
			canvas.Circle(xs[i], ys[i], 4, "fill:"+s.Color)
		}
	}
	canvas.Line(l.left, l.top+l.height, l.left+l.width, l.top+l.height, axisStyle)
	canvas.Line(l.left, l.top, l.left, l.top+l.height, axisStyle)
}

func drawAxisLabels(canvas *svg.SVG, l layout, cfg *engine.ChartConfig) {
	x, y := cfg.XAxis, cfg.YAxis
	if cfg.ChartType == engine.ChartBarH {
		x, y = y, x
	}
	if x != "" {
		canvas.Text(l.left+l.width/2, l.top+l.height+70, x, labelStyle+";text-anchor:middle;font-weight:bold")
	}
	if y != "" {
		cx, cy := 16, l.top+l.height/2
		canvas.Text(cx, cy, y, labelStyle+";text-anchor:middle;font-weight:bold",
			fmt.Sprintf(`transform="rotate(-90 %d %d)"`, cx, cy))
	}
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err == nil {
		if _, err := e.w.Write(p); err != nil {
			e.err = err
		}
	}
	return len(p), nil
}
