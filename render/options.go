package render

// Option configures the SVG canvas.
type Option func(*options)

type options struct {
	Width, Height  int
	MarginLeft     int
	MarginLeftBarH int // room for category labels left of horizontal bars
	MarginRight    int
	MarginTop      int
	MarginBottom   int
	Background     string
}

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.Width = width
			o.Height = height
		}
	}
}

// WithBackground sets the canvas fill color.
func WithBackground(color string) Option {
	return func(o *options) {
		o.Background = color
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		Width:          800,
		Height:         480,
		MarginLeft:     90,
		MarginLeftBarH: 200,
		MarginRight:    30,
		MarginTop:      50,
		MarginBottom:   110,
		Background:     "#FFFFFF",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
