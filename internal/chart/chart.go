// Package chart builds declarative chart descriptions from literal
// data. A Spec says what to draw, never how: surfaces in
// internal/plot and internal/report turn it into pixels or markup.
package chart

import (
	"errors"
	"fmt"
)

// Kind identifies the chart family.
type Kind string

// Supported chart kinds.
const (
	Donut Kind = "donut"
	Line  Kind = "line"
)

// ErrInvalidInput is returned by the builders when the parallel
// input slices disagree in length.
var ErrInvalidInput = errors.New("invalid chart input")

// Layout hint keys understood by the bundled surfaces.
const (
	HintHeight     = "height"
	HintHole       = "hole"
	HintShowLegend = "show_legend"
	HintMode       = "mode"
	HintLineWidth  = "line_width"
	HintMarkerSize = "marker_size"
)

// Slice is one category of a donut chart.
type Slice struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// Point is one sample of a line chart.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Hints carries surface-specific layout preferences such as height
// or donut hole size. Surfaces ignore keys they do not know.
type Hints map[string]any

// Spec is a declarative chart description.
type Spec struct {
	Kind  Kind   `json:"kind"`
	Title string `json:"title"`

	// Slices is set for Donut charts, in input order.
	Slices []Slice `json:"slices,omitempty"`

	// Points is set for Line charts, in input order.
	Points []Point `json:"points,omitempty"`

	// Colors holds one token per slice for Donut charts and a single
	// series color for Line charts.
	Colors []string `json:"colors"`

	SeriesName string `json:"series_name,omitempty"`
	YAxisLabel string `json:"y_axis_label,omitempty"`

	Hints Hints `json:"layout_hints"`
}

// Option adjusts the layout hints of a Spec under construction.
type Option func(Hints)

// WithHeight sets the preferred rendering height in pixels.
func WithHeight(px int) Option {
	return func(h Hints) { h[HintHeight] = px }
}

// WithHint sets an arbitrary layout hint.
func WithHint(key string, value any) Option {
	return func(h Hints) { h[key] = value }
}

// BuildDonut returns a donut Spec pairing categories[i] with
// values[i] and colors[i]. Values are not normalized; surfaces scale
// them proportionally.
func BuildDonut(categories []string, values []float64, colors []string, title string, opts ...Option) (Spec, error) {
	if len(categories) != len(values) || len(values) != len(colors) {
		return Spec{}, fmt.Errorf("%w: donut %q: categories=%d, values=%d, colors=%d",
			ErrInvalidInput, title, len(categories), len(values), len(colors))
	}

	slices := make([]Slice, len(categories))
	for i := range categories {
		slices[i] = Slice{Category: categories[i], Value: values[i]}
	}

	hints := Hints{
		HintHole:       0.7,
		HintShowLegend: true,
	}
	for _, opt := range opts {
		opt(hints)
	}

	return Spec{
		Kind:   Donut,
		Title:  title,
		Slices: slices,
		Colors: append([]string(nil), colors...),
		Hints:  hints,
	}, nil
}

// BuildLine returns a single-series line Spec pairing xs[i] with
// ys[i]. Non-monotonic xs are accepted; see Spec.Monotonic.
func BuildLine(xs, ys []float64, seriesName, color, title, yAxisLabel string, opts ...Option) (Spec, error) {
	if len(xs) != len(ys) {
		return Spec{}, fmt.Errorf("%w: line %q: xs=%d, ys=%d",
			ErrInvalidInput, title, len(xs), len(ys))
	}

	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{X: xs[i], Y: ys[i]}
	}

	hints := Hints{
		HintMode:       "lines+markers",
		HintLineWidth:  4,
		HintMarkerSize: 12,
	}
	for _, opt := range opts {
		opt(hints)
	}

	return Spec{
		Kind:       Line,
		Title:      title,
		Points:     points,
		Colors:     []string{color},
		SeriesName: seriesName,
		YAxisLabel: yAxisLabel,
		Hints:      hints,
	}, nil
}

// Monotonic reports whether a line chart's x values never decrease.
// Donut charts are always monotonic.
func (s Spec) Monotonic() bool {
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i].X < s.Points[i-1].X {
			return false
		}
	}
	return true
}

// Len returns the number of data items in the chart.
func (s Spec) Len() int {
	if s.Kind == Donut {
		return len(s.Slices)
	}
	return len(s.Points)
}

// Height returns the height hint, or fallback when unset.
func (s Spec) Height(fallback int) int {
	switch v := s.Hints[HintHeight].(type) {
	case int:
		if v > 0 {
			return v
		}
	case float64:
		if v > 0 {
			return int(v)
		}
	}
	return fallback
}

// Hole returns the donut hole ratio in [0, 0.95].
func (s Spec) Hole() float64 {
	v, ok := s.Hints[HintHole].(float64)
	if !ok || v < 0 {
		return 0
	}
	if v > 0.95 {
		return 0.95
	}
	return v
}

// ShowLegend reports whether the legend should be drawn. Defaults to
// true.
func (s Spec) ShowLegend() bool {
	v, ok := s.Hints[HintShowLegend].(bool)
	return !ok || v
}

// Color returns the color for item i, cycling when fewer colors than
// items are given and falling back when none are.
func (s Spec) Color(i int, fallback string) string {
	if len(s.Colors) == 0 {
		return fallback
	}
	return s.Colors[i%len(s.Colors)]
}
