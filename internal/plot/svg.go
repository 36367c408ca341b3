package plot

import (
	"fmt"
	"io"
	"math"

	"github.com/ajstarks/svgo"

	"github.com/techflow-ai/pitchdeck/internal/config"
)

func renderSVG(w io.Writer, l layout) error {
	canvas := svg.New(w)
	canvas.Start(l.Width, l.Height)
	canvas.Title(l.Title)
	canvas.Rect(0, 0, l.Width, l.Height, fmt.Sprintf("fill:%s", l.Style.Background))
	canvas.Text(padding, 28, l.Title, textStyle(l.Style.Text, 16, true, l.Style.Font))

	switch {
	case l.Empty:
		canvas.Text(l.Width/2, l.Height/2, "No data available",
			textStyle(l.Style.Muted, 13, false, l.Style.Font)+";text-anchor:middle")
	case len(l.Arcs) > 0:
		drawDonutSVG(canvas, l)
	default:
		drawLineSVG(canvas, l)
	}

	canvas.End()
	return nil
}

func drawDonutSVG(canvas *svg.SVG, l layout) {
	mid := l.Radius - l.RingWidth/2
	for _, a := range l.Arcs {
		stroke := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.2f", a.Color, l.RingWidth)
		if a.Share >= 0.9999 {
			canvas.Circle(int(math.Round(l.CX)), int(math.Round(l.CY)), int(math.Round(mid)), stroke)
			continue
		}
		if a.Share <= 0 {
			continue
		}
		x1, y1 := point(l.CX, l.CY, mid, a.Start)
		x2, y2 := point(l.CX, l.CY, mid, a.End)
		large := 0
		if a.End-a.Start > math.Pi {
			large = 1
		}
		canvas.Path(fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f",
			x1, y1, mid, mid, large, x2, y2), stroke)
	}

	if l.HoleLabel != "" {
		canvas.Text(int(l.CX), int(l.CY)+8, l.HoleLabel,
			textStyle(l.HoleLabelColor, 22, true, l.Style.Font)+";text-anchor:middle")
	}

	if !l.ShowLegend {
		return
	}
	x, y := int(l.LegendX), int(l.LegendY)
	for i, e := range l.Legend {
		row := y + i*22
		canvas.Roundrect(x, row-10, 14, 14, 3, 3, fmt.Sprintf("fill:%s", e.Color))
		canvas.Text(x+20, row+2, e.Label, textStyle(l.Style.Text, 12, false, l.Style.Font))
	}
}

func drawLineSVG(canvas *svg.SVG, l layout) {
	left, top, right, bottom := int(l.Left), int(l.Top), int(l.Right), int(l.Bottom)

	for _, t := range l.YTicks {
		y := int(math.Round(t.Pos))
		canvas.Line(left, y, right, y, fmt.Sprintf("stroke:%s;stroke-width:1", l.Style.Grid))
		canvas.Text(left-8, y+4, t.Label,
			textStyle(l.Style.Muted, 11, false, l.Style.Font)+";text-anchor:end")
	}
	canvas.Line(left, bottom, right, bottom, fmt.Sprintf("stroke:%s;stroke-width:1", l.Style.Muted))
	canvas.Line(left, top, left, bottom, fmt.Sprintf("stroke:%s;stroke-width:1", l.Style.Muted))

	for _, t := range l.XTicks {
		canvas.Text(int(math.Round(t.Pos)), bottom+18, t.Label,
			textStyle(l.Style.Muted, 11, false, l.Style.Font)+";text-anchor:middle")
	}

	if l.YAxisLabel != "" {
		canvas.TranslateRotate(18, (top+bottom)/2, -90)
		canvas.Text(0, 0, l.YAxisLabel,
			textStyle(l.Style.Text, 12, false, l.Style.Font)+";text-anchor:middle")
		canvas.Gend()
	}

	xs := make([]int, len(l.Markers))
	ys := make([]int, len(l.Markers))
	for i, m := range l.Markers {
		xs[i] = int(math.Round(m.X))
		ys[i] = int(math.Round(m.Y))
	}
	canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f;stroke-linejoin:round",
		l.SeriesColor, l.LineWidth))
	for i := range xs {
		canvas.Circle(xs[i], ys[i], int(math.Max(l.MarkerRadius, 2)), fmt.Sprintf("fill:%s", l.SeriesColor))
	}

	if l.SeriesName != "" {
		canvas.Text(right, 28, l.SeriesName,
			textStyle(l.SeriesColor, 12, false, l.Style.Font)+";text-anchor:end")
	}
}

func textStyle(color string, size int, bold bool, font string) string {
	font = config.SanitizeFont(font)
	if font == "" {
		font = "sans-serif"
	} else {
		font = font + ",sans-serif"
	}
	s := fmt.Sprintf("fill:%s;font-size:%dpx;font-family:%s", color, size, font)
	if bold {
		s += ";font-weight:bold"
	}
	return s
}
