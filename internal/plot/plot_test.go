package plot

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/techflow-ai/pitchdeck/internal/chart"
	"github.com/techflow-ai/pitchdeck/internal/config"
)

func donutSpec(t *testing.T) chart.Spec {
	t.Helper()
	spec, err := chart.BuildDonut(
		[]string{"Voice Preferred", "Text Preferred", "Mixed"},
		[]float64{65, 20, 15},
		[]string{"#FF4444", "#FFA500", "#FFD700"},
		"Communication Preference",
		chart.WithHeight(300),
	)
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func lineSpec(t *testing.T) chart.Spec {
	t.Helper()
	spec, err := chart.BuildLine(
		[]float64{2024, 2025, 2026, 2027, 2028},
		[]float64{0.5, 2.4, 8.7, 24.3, 52.8},
		"Revenue (Billions USD)", "#0066CC", "5-Year Revenue Projection", "Billions USD",
	)
	if err != nil {
		t.Fatal(err)
	}
	return spec
}

func renderString(t *testing.T, format Format, spec chart.Spec) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, format, spec, DefaultOptions()); err != nil {
		t.Fatalf("Render(%s): %v", format, err)
	}
	return buf.String()
}

// ============================================================================
// SVG
// ============================================================================

func TestSVG_DonutValidXML(t *testing.T) {
	out := renderString(t, SVG, donutSpec(t))

	var doc interface{}
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("SVG is not valid XML: %v\n%s", err, out)
	}
	if !strings.Contains(out, "<svg") {
		t.Error("missing <svg> root")
	}
}

func TestSVG_DonutOneArcPerSlice(t *testing.T) {
	out := renderString(t, SVG, donutSpec(t))

	if got := strings.Count(out, "<path"); got != 3 {
		t.Errorf("expected 3 arcs, got %d", got)
	}
	for _, c := range []string{"#FF4444", "#FFA500", "#FFD700"} {
		if !strings.Contains(out, c) {
			t.Errorf("missing slice color %s", c)
		}
	}
	if !strings.Contains(out, "Voice Preferred (65.0%)") {
		t.Error("legend should show the share of each category")
	}
	if !strings.Contains(out, ">65.0%<") {
		t.Error("hole label should show the largest share")
	}
}

func TestSVG_DonutSingleSliceIsCircle(t *testing.T) {
	spec, err := chart.BuildDonut([]string{"all"}, []float64{1}, []string{"#123456"}, "one")
	if err != nil {
		t.Fatal(err)
	}
	out := renderString(t, SVG, spec)
	if strings.Contains(out, "<path") {
		t.Error("a full ring should not be drawn as an arc path")
	}
	if !strings.Contains(out, "stroke:#123456") {
		t.Error("full ring missing")
	}
}

func TestSVG_DonutZeroTotal(t *testing.T) {
	spec, err := chart.BuildDonut([]string{"a", "b"}, []float64{0, 0}, []string{"#000", "#fff"}, "zero")
	if err != nil {
		t.Fatal(err)
	}
	out := renderString(t, SVG, spec)
	if !strings.Contains(out, "No data available") {
		t.Error("zero-total donut should render the empty placeholder")
	}
}

func TestSVG_LineHasSeriesAndAxes(t *testing.T) {
	out := renderString(t, SVG, lineSpec(t))

	var doc interface{}
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("SVG is not valid XML: %v", err)
	}
	if strings.Count(out, "<polyline") != 1 {
		t.Error("expected exactly one series polyline")
	}
	if strings.Count(out, "<circle") != 5 {
		t.Errorf("expected 5 markers, got %d", strings.Count(out, "<circle"))
	}
	for _, label := range []string{">2024<", ">2028<", "Billions USD", "rotate(-90"} {
		if !strings.Contains(out, label) {
			t.Errorf("missing %q", label)
		}
	}
}

func TestSVG_EscapesTitles(t *testing.T) {
	spec, err := chart.BuildDonut([]string{"<a>"}, []float64{1}, []string{"#000"}, "R&D <2025>")
	if err != nil {
		t.Fatal(err)
	}
	out := renderString(t, SVG, spec)
	var doc interface{}
	if err := xml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("special characters broke the SVG: %v", err)
	}
}

// ============================================================================
// PNG
// ============================================================================

func TestPNG_Decodes(t *testing.T) {
	for _, spec := range []chart.Spec{donutSpec(t), lineSpec(t)} {
		var buf bytes.Buffer
		if err := Render(&buf, PNG, spec, Options{Width: 320, Height: 200}); err != nil {
			t.Fatalf("Render PNG %s: %v", spec.Kind, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("%s: output is not a PNG: %v", spec.Kind, err)
		}
		if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
			t.Errorf("%s: size = %dx%d, want 320x200", spec.Kind, b.Dx(), b.Dy())
		}
	}
}

func TestPNG_HeightFromHint(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, PNG, donutSpec(t), Options{}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dy() != 300 {
		t.Errorf("height = %d, want hint 300", img.Bounds().Dy())
	}
}

// ============================================================================
// Formats and layout helpers
// ============================================================================

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"svg": SVG, ".PNG": PNG, "Svg": SVG} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(gif) error = %v", err)
	}
	if PNG.ContentType() != "image/png" || SVG.ContentType() != "image/svg+xml" {
		t.Error("unexpected content types")
	}
}

func TestRender_UnknownKind(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, SVG, chart.Spec{Kind: "radar"}, DefaultOptions()); err == nil {
		t.Fatal("expected error for unknown chart kind")
	}
}

func TestNiceCeil(t *testing.T) {
	top, step := niceCeil(52.8, 0)
	if step != 20 || top != 60 {
		t.Errorf("niceCeil(52.8) = %v, %v; want 60, 20", top, step)
	}
	top, step = niceCeil(0, 0)
	if top <= 0 || step <= 0 {
		t.Errorf("niceCeil(0) = %v, %v; want positive range", top, step)
	}
}

// ============================================================================
// Theme font
// ============================================================================

const hostileFont = `Inter"><script>alert(1)</script><x a="`

// wellFormed walks every token so malformed markup is reported.
func wellFormed(t *testing.T, out string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("SVG is not well-formed: %v\n%s", err, out)
		}
	}
}

func TestSVG_FontIsSanitized(t *testing.T) {
	theme := config.DefaultTheme()
	theme.Font = hostileFont
	opts := DefaultOptions()
	opts.Style = ThemeStyle(theme)

	for _, spec := range []chart.Spec{donutSpec(t), lineSpec(t)} {
		var buf bytes.Buffer
		if err := Render(&buf, SVG, spec, opts); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		wellFormed(t, out)
		if strings.Contains(out, "<script") {
			t.Errorf("font leaked markup into SVG:\n%s", out)
		}
		if !strings.Contains(out, `style="fill:`) {
			t.Errorf("text style should stay inside a style attribute:\n%s", out)
		}
	}
}

func TestSVG_FontSanitizedWithoutTheme(t *testing.T) {
	opts := DefaultOptions()
	opts.Style.Font = hostileFont

	var buf bytes.Buffer
	if err := Render(&buf, SVG, donutSpec(t), opts); err != nil {
		t.Fatal(err)
	}
	wellFormed(t, buf.String())
	if strings.Contains(buf.String(), "alert(1)</script>") {
		t.Error("font leaked markup into SVG")
	}
}
