package plot

import (
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

func renderPNG(w io.Writer, l layout) error {
	dc := gg.NewContext(l.Width, l.Height)
	dc.SetHexColor(l.Style.Background)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetHexColor(l.Style.Text)
	dc.DrawStringAnchored(l.Title, padding, 24, 0, 0.5)

	switch {
	case l.Empty:
		dc.SetHexColor(l.Style.Muted)
		dc.DrawStringAnchored("No data available", float64(l.Width)/2, float64(l.Height)/2, 0.5, 0.5)
	case len(l.Arcs) > 0:
		drawDonutPNG(dc, l)
	default:
		drawLinePNG(dc, l)
	}

	return dc.EncodePNG(w)
}

func drawDonutPNG(dc *gg.Context, l layout) {
	mid := l.Radius - l.RingWidth/2
	dc.SetLineWidth(l.RingWidth)
	for _, a := range l.Arcs {
		if a.Share <= 0 {
			continue
		}
		dc.SetHexColor(a.Color)
		dc.DrawArc(l.CX, l.CY, mid, a.Start, a.End)
		dc.Stroke()
	}

	if l.HoleLabel != "" {
		dc.SetHexColor(l.HoleLabelColor)
		dc.DrawStringAnchored(l.HoleLabel, l.CX, l.CY, 0.5, 0.5)
	}

	if !l.ShowLegend {
		return
	}
	for i, e := range l.Legend {
		row := l.LegendY + float64(i)*22
		dc.SetHexColor(e.Color)
		dc.DrawRoundedRectangle(l.LegendX, row-10, 14, 14, 3)
		dc.Fill()
		dc.SetHexColor(l.Style.Text)
		dc.DrawStringAnchored(e.Label, l.LegendX+20, row-3, 0, 0.5)
	}
}

func drawLinePNG(dc *gg.Context, l layout) {
	dc.SetLineWidth(1)
	for _, t := range l.YTicks {
		dc.SetHexColor(l.Style.Grid)
		dc.DrawLine(l.Left, t.Pos, l.Right, t.Pos)
		dc.Stroke()
		dc.SetHexColor(l.Style.Muted)
		dc.DrawStringAnchored(t.Label, l.Left-8, t.Pos, 1, 0.5)
	}

	dc.SetHexColor(l.Style.Muted)
	dc.DrawLine(l.Left, l.Bottom, l.Right, l.Bottom)
	dc.DrawLine(l.Left, l.Top, l.Left, l.Bottom)
	dc.Stroke()
	for _, t := range l.XTicks {
		dc.DrawStringAnchored(t.Label, t.Pos, l.Bottom+16, 0.5, 0.5)
	}

	if l.YAxisLabel != "" {
		cx, cy := 18.0, (l.Top+l.Bottom)/2
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), cx, cy)
		dc.SetHexColor(l.Style.Text)
		dc.DrawStringAnchored(l.YAxisLabel, cx, cy, 0.5, 0.5)
		dc.Pop()
	}

	dc.SetHexColor(l.SeriesColor)
	dc.SetLineWidth(l.LineWidth)
	for i, m := range l.Markers {
		if i == 0 {
			dc.MoveTo(m.X, m.Y)
			continue
		}
		dc.LineTo(m.X, m.Y)
	}
	dc.Stroke()
	for _, m := range l.Markers {
		dc.DrawCircle(m.X, m.Y, l.MarkerRadius)
		dc.Fill()
	}

	if l.SeriesName != "" {
		dc.DrawStringAnchored(l.SeriesName, l.Right, 24, 1, 0.5)
	}
}
