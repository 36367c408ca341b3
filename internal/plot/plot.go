// Package plot draws chart.Spec values as SVG or PNG images. Layout
// is computed once per chart and shared by both encoders.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/techflow-ai/pitchdeck/internal/chart"
	"github.com/techflow-ai/pitchdeck/internal/config"
)

// Format is an image encoding.
type Format string

// Supported formats.
const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ErrUnsupportedFormat is returned for formats other than svg and png.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ParseFormat accepts "svg", "png" and their dotted extensions in any
// case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case SVG, PNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (want svg or png)", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Style holds the non-series colors of a chart image.
type Style struct {
	Background string
	Text       string
	Muted      string
	Grid       string
	Font       string
}

// ThemeStyle derives an image style from the configured theme.
func ThemeStyle(t config.Theme) Style {
	return Style{
		Background: t.Palette.Background,
		Text:       t.Palette.Text,
		Muted:      t.Palette.Muted,
		Grid:       t.Palette.Surface,
		Font:       config.SanitizeFont(t.Font),
	}
}

// Options controls image size and styling.
type Options struct {
	// Width in pixels. Zero means 640.
	Width int

	// Height in pixels. Zero means the chart's height hint, or 360.
	Height int

	Style Style
}

// DefaultOptions returns options styled with the default theme.
func DefaultOptions() Options {
	return Options{Style: ThemeStyle(config.DefaultTheme())}
}

const (
	defaultWidth  = 640
	defaultHeight = 360
	titleBand     = 40
	padding       = 24
)

// Render encodes spec in the given format.
func Render(w io.Writer, format Format, spec chart.Spec, opts Options) error {
	l, err := buildLayout(spec, opts)
	if err != nil {
		return err
	}
	switch format {
	case SVG:
		return renderSVG(w, l)
	case PNG:
		return renderPNG(w, l)
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

// --- layout computation ----------------------------------------------------

type arc struct {
	Start, End float64 // radians, clockwise from 12 o'clock
	Share      float64
	Color      string
	Label      string
}

type legendEntry struct {
	Color string
	Label string
}

type tick struct {
	Pos   float64
	Label string
}

type marker struct {
	X, Y float64
}

type layout struct {
	Kind   chart.Kind
	Width  int
	Height int
	Title  string
	Style  Style
	Empty  bool

	// Donut geometry.
	CX, CY         float64
	Radius         float64
	RingWidth      float64
	Arcs           []arc
	Legend         []legendEntry
	LegendX        float64
	LegendY        float64
	ShowLegend     bool
	HoleLabel      string
	HoleLabelColor string

	// Line geometry.
	Left, Top, Right, Bottom float64
	Markers                  []marker
	XTicks, YTicks           []tick
	SeriesColor              string
	LineWidth                float64
	MarkerRadius             float64
	YAxisLabel               string
	SeriesName               string
}

func buildLayout(spec chart.Spec, opts Options) (layout, error) {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := opts.Height
	if height <= 0 {
		height = spec.Height(defaultHeight)
	}
	style := opts.Style
	if style == (Style{}) {
		style = DefaultOptions().Style
	}

	l := layout{
		Kind:   spec.Kind,
		Width:  width,
		Height: height,
		Title:  spec.Title,
		Style:  style,
	}

	switch spec.Kind {
	case chart.Donut:
		layoutDonut(&l, spec)
	case chart.Line:
		layoutLine(&l, spec)
	default:
		return layout{}, fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
	return l, nil
}

func layoutDonut(l *layout, spec chart.Spec) {
	values := make([]float64, len(spec.Slices))
	for i, s := range spec.Slices {
		values[i] = math.Max(s.Value, 0)
	}
	total := 0.0
	if len(values) > 0 {
		total = floats.Sum(values)
	}
	if total <= 0 {
		l.Empty = true
		return
	}

	l.ShowLegend = spec.ShowLegend()
	plotW := float64(l.Width)
	if l.ShowLegend {
		plotW = float64(l.Width) * 0.6
	}
	plotH := float64(l.Height - titleBand)
	l.Radius = math.Max(math.Min(plotW, plotH)/2-padding, 10)
	l.CX = plotW / 2
	l.CY = titleBand + plotH/2

	hole := spec.Hole()
	l.RingWidth = l.Radius * (1 - hole)

	angle := -math.Pi / 2
	for i, s := range spec.Slices {
		share := values[i] / total
		sweep := share * 2 * math.Pi
		l.Arcs = append(l.Arcs, arc{
			Start: angle,
			End:   angle + sweep,
			Share: share,
			Color: spec.Color(i, fallbackColor(l.Style)),
			Label: s.Category,
		})
		l.Legend = append(l.Legend, legendEntry{
			Color: spec.Color(i, fallbackColor(l.Style)),
			Label: fmt.Sprintf("%s (%s)", s.Category, percent(share)),
		})
		angle += sweep
	}

	if hole >= 0.4 {
		top := floats.MaxIdx(values)
		l.HoleLabel = percent(values[top] / total)
		l.HoleLabelColor = spec.Color(top, l.Style.Text)
	}

	l.LegendX = plotW + 8
	l.LegendY = titleBand + padding
}

func layoutLine(l *layout, spec chart.Spec) {
	if len(spec.Points) == 0 {
		l.Empty = true
		return
	}

	l.SeriesColor = spec.Color(0, fallbackColor(l.Style))
	l.SeriesName = spec.SeriesName
	l.YAxisLabel = spec.YAxisLabel
	l.LineWidth = hintFloat(spec.Hints[chart.HintLineWidth], 3)
	l.MarkerRadius = hintFloat(spec.Hints[chart.HintMarkerSize], 8) / 2

	l.Left = 72
	l.Top = titleBand + 8
	l.Right = float64(l.Width) - padding
	l.Bottom = float64(l.Height) - 48

	xs := make([]float64, len(spec.Points))
	ys := make([]float64, len(spec.Points))
	for i, p := range spec.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	xMin, xMax := floats.Min(xs), floats.Max(xs)
	yMin := math.Min(0, floats.Min(ys))
	yMax, step := niceCeil(floats.Max(ys), yMin)

	scaleX := func(x float64) float64 {
		if xMax == xMin {
			return (l.Left + l.Right) / 2
		}
		return l.Left + (x-xMin)/(xMax-xMin)*(l.Right-l.Left)
	}
	scaleY := func(y float64) float64 {
		return l.Bottom - (y-yMin)/(yMax-yMin)*(l.Bottom-l.Top)
	}

	seen := make(map[float64]bool, len(xs))
	for i := range xs {
		l.Markers = append(l.Markers, marker{X: scaleX(xs[i]), Y: scaleY(ys[i])})
		if !seen[xs[i]] {
			seen[xs[i]] = true
			l.XTicks = append(l.XTicks, tick{Pos: scaleX(xs[i]), Label: formatNumber(xs[i])})
		}
	}
	for i := 0; yMin+float64(i)*step <= yMax+step/2; i++ {
		v := yMin + float64(i)*step
		l.YTicks = append(l.YTicks, tick{Pos: scaleY(v), Label: formatNumber(v)})
	}
}

// niceCeil picks a 1/2/2.5/5×10^n step and the first multiple of it
// above lo that covers hi in about five steps.
func niceCeil(hi, lo float64) (top, step float64) {
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	raw := span / 5
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		step = m * mag
		if step >= raw {
			break
		}
	}
	top = lo + math.Ceil(span/step)*step
	return top, step
}

func hintFloat(v any, fallback float64) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return fallback
	}
}

func fallbackColor(s Style) string {
	if s.Text != "" {
		return s.Text
	}
	return "#333333"
}

func percent(share float64) string {
	return strconv.FormatFloat(share*100, 'f', 1, 64) + "%"
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// point returns the screen position at angle a on a circle.
func point(cx, cy, r, a float64) (float64, float64) {
	return cx + r*math.Cos(a), cy + r*math.Sin(a)
}
