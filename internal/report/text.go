package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/techflow-ai/pitchdeck/internal/chart"
	"github.com/techflow-ai/pitchdeck/internal/deck"
)

// DefaultWidth is the text width used when the caller has no terminal
// size.
const DefaultWidth = 80

// WriteText writes the document's pages as human-readable styled text.
// Output uses lipgloss for color and formatting when the output is a
// TTY; degrades gracefully for pipes and CI.
func WriteText(w io.Writer, doc Document, width int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	s := NewStyles(doc.Theme)

	for i, p := range doc.Pages {
		if i > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, s.Muted.Render(strings.Repeat("═", width)))
			fmt.Fprintln(w)
		}
		if _, err := fmt.Fprintln(w, RenderPage(p, s, width)); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\n%s\n", s.Muted.Render(fmt.Sprintf(
		"%d of %d section(s) rendered", len(doc.Pages), len(doc.Nav))))
	return nil
}

// RenderPage returns one page as styled text wrapped to width.
func RenderPage(p deck.Page, s Styles, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	body := renderBlocks(p.Blocks, s, width)
	if p.Title == "" {
		return body
	}
	return s.Title.Width(width).Render(p.Title) + "\n\n" + body
}

// RenderSidebar returns the sidebar: brand, navigation with the
// selected entry highlighted, quick stats and contact lines.
func RenderSidebar(doc Document, selected int, s Styles, width int) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(doc.Sidebar.Brand))
	b.WriteString("\n\n")
	b.WriteString(s.Heading.Render("Navigate to:"))
	b.WriteString("\n")
	for i, item := range doc.Nav {
		marker := "○ "
		style := s.NavItem
		if i == selected {
			marker = "● "
			style = s.NavSelected
		}
		b.WriteString(style.Render(runewidth.FillRight(marker+item.Label, width-2)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Heading.Render("📊 Quick Stats"))
	b.WriteString("\n")
	for _, m := range doc.Sidebar.QuickStats {
		b.WriteString(s.Muted.Render(m.Label))
		b.WriteString("\n")
		b.WriteString(s.StatValue.Render(m.Value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Heading.Render("📞 Contact"))
	for _, c := range doc.Sidebar.Contact {
		b.WriteString("\n")
		b.WriteString(runewidth.Truncate(c, width, "…"))
	}
	return b.String()
}

func renderBlocks(blocks []deck.Block, s Styles, width int) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if out := renderBlock(b, s, width); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n\n")
}

func renderBlock(b deck.Block, s Styles, width int) string {
	switch b.Kind {
	case deck.KindHeading:
		if b.Level <= 1 {
			return s.Title.Width(width).Render(b.Text)
		}
		return s.Heading.Width(width).Render(b.Text)

	case deck.KindText:
		return s.Text.Width(width).Render(b.Text)

	case deck.KindCard:
		box := s.Card(b.Tone)
		inner := width - box.GetHorizontalFrameSize()
		body := renderBlocks(b.Children, s, inner)
		if b.Title != "" {
			body = s.Heading.Width(inner).Render(b.Title) + "\n" + body
		}
		return box.Width(inner + box.GetHorizontalPadding()).Render(body)

	case deck.KindColumns:
		return renderColumns(b, s, width)

	case deck.KindStat:
		box := s.Card(deck.ToneStat)
		inner := width - box.GetHorizontalFrameSize()
		lines := []string{
			s.Heading.Render(strings.TrimSpace(b.Icon + " " + b.Title)),
			s.StatValue.Render(b.Value),
		}
		if b.Caption != "" {
			lines = append(lines, s.Muted.Width(inner).Render(b.Caption))
		}
		return box.Width(inner + box.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))

	case deck.KindList:
		lines := make([]string, len(b.Items))
		for i, item := range b.Items {
			lines[i] = lipgloss.JoinHorizontal(lipgloss.Top, "• ", s.Text.Width(width-2).Render(item))
		}
		return strings.Join(lines, "\n")

	case deck.KindPre:
		return s.Pre.Render(strings.Trim(b.Text, "\n"))

	case deck.KindImage:
		return s.Muted.Width(width).Render(fmt.Sprintf("[image] %s (%s)", b.Caption, b.URL))

	case deck.KindChart:
		if b.Chart == nil {
			return ""
		}
		return renderChartTable(*b.Chart, s, width)

	case deck.KindTimeline:
		return renderTimeline(b.Milestones, s, width)

	case deck.KindLinks:
		anchors := make([]string, len(b.Links))
		for i, l := range b.Links {
			anchors[i] = s.Link.Render(l.Text)
		}
		return strings.Join(anchors, "  ")

	case deck.KindQuote:
		head := s.Heading.Render(strings.TrimSpace(b.Icon + " " + b.Caption))
		return head + "\n" + s.Quote.Width(width).Render("“"+b.Text+"”")

	case deck.KindDivider:
		return s.Muted.Render(strings.Repeat("─", max(width, 1)))
	}
	return ""
}

// renderColumns splits width by the block's weights. Narrow terminals
// stack the columns instead.
func renderColumns(b deck.Block, s Styles, width int) string {
	n := len(b.Children)
	if n == 0 {
		return ""
	}
	const gap = 2
	if width < n*24 {
		return renderBlocks(b.Children, s, width)
	}

	weights := make([]int, n)
	total := 0
	for i := range weights {
		weights[i] = 1
		if i < len(b.Weights) && b.Weights[i] > 0 {
			weights[i] = b.Weights[i]
		}
		total += weights[i]
	}

	avail := width - gap*(n-1)
	cols := make([]string, 0, 2*n-1)
	used := 0
	for i, child := range b.Children {
		w := avail * weights[i] / total
		if i == n-1 {
			w = avail - used
		}
		used += w
		if i > 0 {
			cols = append(cols, strings.Repeat(" ", gap))
		}
		cols = append(cols, lipgloss.NewStyle().Width(w).Render(renderBlock(child, s, w)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderChartTable shows a chart's data as a table since a terminal
// cannot draw the image.
func renderChartTable(spec chart.Spec, s Styles, width int) string {
	var headers []string
	var rows [][]string

	switch spec.Kind {
	case chart.Donut:
		total := 0.0
		for _, sl := range spec.Slices {
			total += sl.Value
		}
		const barWidth = 20
		headers = []string{"CATEGORY", "VALUE", "SHARE", ""}
		for _, sl := range spec.Slices {
			share := 0.0
			if total > 0 {
				share = sl.Value / total
			}
			rows = append(rows, []string{
				runewidth.Truncate(sl.Category, 28, "…"),
				strconv.FormatFloat(sl.Value, 'f', -1, 64),
				strconv.FormatFloat(share*100, 'f', 1, 64) + "%",
				strings.Repeat("█", int(share*barWidth+0.5)),
			})
		}
	case chart.Line:
		x, y := "X", spec.YAxisLabel
		if y == "" {
			y = "Y"
		}
		headers = []string{x, strings.ToUpper(y)}
		for _, p := range spec.Points {
			rows = append(rows, []string{
				strconv.FormatFloat(p.X, 'f', -1, 64),
				strconv.FormatFloat(p.Y, 'f', -1, 64),
			})
		}
	default:
		return s.Muted.Render(fmt.Sprintf("[%s chart] %s", spec.Kind, spec.Title))
	}

	colors := spec.Colors
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if spec.Kind == chart.Donut && col == 3 && len(colors) > 0 && row >= 0 {
				return s.TableCell.Foreground(lipgloss.Color(colors[row%len(colors)]))
			}
			return s.TableCell
		}).
		Headers(headers...).
		Rows(rows...)

	title := s.Heading.Render("📊 " + spec.Title)
	if spec.Kind == chart.Line && spec.SeriesName != "" {
		title += " " + s.Muted.Render("("+spec.SeriesName+")")
	}
	return title + "\n" + t.String()
}

func renderTimeline(ms []deck.Milestone, s Styles, width int) string {
	rows := make([][]string, len(ms))
	descWidth := width - 30
	if descWidth < 20 {
		descWidth = 20
	}
	for i, m := range ms {
		rows[i] = []string{m.When, m.Phase, runewidth.Truncate(m.Description, descWidth, "…")}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if col == 0 {
				return s.TableCell.Bold(true)
			}
			return s.TableCell
		}).
		Headers("WHEN", "PHASE", "DESCRIPTION").
		Rows(rows...)
	return t.String()
}
