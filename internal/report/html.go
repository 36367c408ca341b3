package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/techflow-ai/pitchdeck/internal/config"
	"github.com/techflow-ai/pitchdeck/internal/deck"
	"github.com/techflow-ai/pitchdeck/internal/plot"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// HTMLOptions controls how pages link to each other and to charts.
type HTMLOptions struct {
	// LinkFor maps a section slug to its navigation href. Nil links to
	// in-page anchors.
	LinkFor func(slug string) string

	// ChartSrc, when set, references chart images by URL instead of
	// inlining SVG. index counts charts within one page from zero.
	ChartSrc func(slug string, index int) string
}

// WriteHTML writes the document as a self-contained HTML page with
// charts embedded as SVG.
func WriteHTML(w io.Writer, doc Document, opts HTMLOptions) error {
	view, err := buildView(doc, opts)
	if err != nil {
		return err
	}
	return pageTemplate.ExecuteTemplate(w, "page.html", view)
}

type navView struct {
	Label    string
	Href     string
	Selected bool
}

type blockView struct {
	deck.Block
	Children []blockView
	Grid     template.CSS
	ChartSVG template.HTML
	ChartSrc string
}

type pageView struct {
	Slug   string
	Title  string
	Blocks []blockView
}

type documentView struct {
	Title   string
	CSS     template.CSS
	Sidebar deck.Sidebar
	Nav     []navView
	Pages   []pageView
}

func buildView(doc Document, opts HTMLOptions) (documentView, error) {
	link := opts.LinkFor
	if link == nil {
		link = func(slug string) string { return "#" + slug }
	}

	v := documentView{
		Title:   doc.Title,
		CSS:     stylesheet(doc.Theme),
		Sidebar: doc.Sidebar,
	}
	for _, n := range doc.Nav {
		v.Nav = append(v.Nav, navView{Label: n.Label, Href: link(n.Slug), Selected: n.Slug == doc.Selected})
	}

	style := plot.ThemeStyle(doc.Theme)
	for _, p := range doc.Pages {
		charts := 0
		blocks, err := viewBlocks(p.Blocks, p.Slug, &charts, style, opts)
		if err != nil {
			return documentView{}, fmt.Errorf("page %s: %w", p.Slug, err)
		}
		v.Pages = append(v.Pages, pageView{Slug: p.Slug, Title: p.Title, Blocks: blocks})
	}
	return v, nil
}

func viewBlocks(blocks []deck.Block, slug string, charts *int, style plot.Style, opts HTMLOptions) ([]blockView, error) {
	out := make([]blockView, 0, len(blocks))
	for _, b := range blocks {
		bv := blockView{Block: b}

		children, err := viewBlocks(b.Children, slug, charts, style, opts)
		if err != nil {
			return nil, err
		}
		bv.Children = children

		if b.Kind == deck.KindColumns {
			bv.Grid = gridColumns(b.Weights, len(b.Children))
		}

		if b.Kind == deck.KindChart && b.Chart != nil {
			if opts.ChartSrc != nil {
				bv.ChartSrc = opts.ChartSrc(slug, *charts)
			} else {
				var buf bytes.Buffer
				if err := plot.Render(&buf, plot.SVG, *b.Chart, plot.Options{Style: style}); err != nil {
					return nil, fmt.Errorf("chart %d: %w", *charts, err)
				}
				bv.ChartSVG = template.HTML(inlineSVG(buf.String()))
			}
			*charts++
		}
		out = append(out, bv)
	}
	return out, nil
}

// inlineSVG drops the XML declaration so the image can sit in HTML.
func inlineSVG(s string) string {
	if i := strings.Index(s, "<svg"); i > 0 {
		return s[i:]
	}
	return s
}

func gridColumns(weights []int, n int) template.CSS {
	parts := make([]string, n)
	for i := range parts {
		w := 1
		if i < len(weights) && weights[i] > 0 {
			w = weights[i]
		}
		parts[i] = fmt.Sprintf("%dfr", w)
	}
	return template.CSS("grid-template-columns:" + strings.Join(parts, " "))
}

func stylesheet(t config.Theme) template.CSS {
	p := t.Palette
	font := config.SanitizeFont(t.Font)
	if font == "" {
		font = "sans-serif"
	}
	return template.CSS(fmt.Sprintf(`:root{--primary:%s;--accent:%s;--success:%s;--danger:%s;--warning:%s;--highlight:%s;--surface:%s;--text:%s;--muted:%s;--background:%s;--font:"%s",sans-serif}`,
		p.Primary, p.Accent, p.Success, p.Danger, p.Warning, p.Highlight,
		p.Surface, p.Text, p.Muted, p.Background, font) + baseCSS)
}

const baseCSS = `
body{margin:0;display:flex;font-family:var(--font);color:var(--text);background:var(--background)}
.sidebar{width:260px;min-height:100vh;padding:1.5rem;background:var(--surface);box-sizing:border-box}
.sidebar ul{list-style:none;padding:0}
.sidebar li{margin:.25rem 0}
.sidebar li a{display:block;padding:.35rem .6rem;border-radius:6px;color:var(--text);text-decoration:none}
.sidebar li.selected a{background:var(--primary);color:var(--background)}
.metric{display:flex;flex-direction:column;margin:.5rem 0}
.metric-label{color:var(--muted);font-size:.85rem}
.metric-value{font-size:1.3rem;font-weight:bold}
main{flex:1;padding:2rem;max-width:1100px}
.page+.page{border-top:2px solid var(--surface);margin-top:2rem;padding-top:2rem}
.main-header{font-size:2.6rem;text-align:center;background:linear-gradient(90deg,var(--primary),var(--accent));-webkit-background-clip:text;background-clip:text;color:transparent}
.columns{display:grid;gap:1.5rem}
.card{padding:1.5rem;border-radius:12px;margin:1rem 0;background:var(--surface)}
.card-hero{background:linear-gradient(135deg,var(--primary),var(--accent));color:var(--background);text-align:center}
.card-stat{border-left:4px solid var(--primary)}
.card-problem{border-left:4px solid var(--danger)}
.card-solution{border-left:4px solid var(--success)}
.card-tech{border-left:4px solid var(--primary)}
.card-demo{border:2px dashed var(--accent)}
.card-phone{background:var(--success);color:var(--background);text-align:center;font-size:1.3rem}
.stat-value{font-size:2rem;font-weight:bold;color:var(--primary);margin:.25rem 0}
.caption{color:var(--muted)}
.diagram{background:var(--surface);padding:1rem;border-radius:8px;overflow-x:auto}
figure{margin:1rem 0}
figure img{max-width:100%}
.chart svg,.chart img{max-width:100%;height:auto}
.timeline li{margin:.75rem 0}
.timeline span{display:block;color:var(--muted)}
.cta{display:inline-block;padding:.6rem 1.2rem;border-radius:8px;background:var(--primary);color:var(--background);text-decoration:none;margin-right:.5rem}
blockquote{border-left:4px solid var(--accent);margin:1rem 0;padding:.5rem 1rem}
`
