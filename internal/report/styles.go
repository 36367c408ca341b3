package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/techflow-ai/pitchdeck/internal/config"
	"github.com/techflow-ai/pitchdeck/internal/deck"
)

// Styles defines the visual theme for terminal output.
// Lipgloss automatically degrades to no-color when output is not a TTY.
type Styles struct {
	// Title is used for page titles and level-1 headings.
	Title lipgloss.Style

	// Heading is used for lower-level headings and card titles.
	Heading lipgloss.Style

	Text  lipgloss.Style
	Muted lipgloss.Style

	// StatValue styles the headline figure of a stat card.
	StatValue lipgloss.Style

	// Quote styles testimonial text.
	Quote lipgloss.Style

	// Pre styles preformatted diagrams.
	Pre lipgloss.Style

	// Link styles call-to-action anchors.
	Link lipgloss.Style

	// TableHeader styles the header row of tables.
	TableHeader lipgloss.Style

	// TableCell styles regular table cells.
	TableCell lipgloss.Style

	// Border is used for table borders.
	Border lipgloss.Style

	// NavItem and NavSelected style sidebar entries.
	NavItem     lipgloss.Style
	NavSelected lipgloss.Style

	palette config.Palette
}

// NewStyles builds terminal styles from a theme.
func NewStyles(t config.Theme) Styles {
	p := t.Palette
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary)),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent)),
		Text:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),

		StatValue: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary)),
		Quote:     lipgloss.NewStyle().Italic(true),
		Pre:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Primary)),
		Link: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(p.Background)).
			Background(lipgloss.Color(p.Success)).
			Padding(0, 1),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary)),
		TableCell:   lipgloss.NewStyle().PaddingRight(1),
		Border:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)),

		NavItem: lipgloss.NewStyle().PaddingLeft(1),
		NavSelected: lipgloss.NewStyle().PaddingLeft(1).Bold(true).
			Foreground(lipgloss.Color(p.Background)).
			Background(lipgloss.Color(p.Primary)),

		palette: p,
	}
}

// DefaultStyles returns the default color scheme for terminal output.
func DefaultStyles() Styles {
	return NewStyles(config.DefaultTheme())
}

// Card returns the bordered box style for a card tone.
func (s Styles) Card(tone deck.Tone) lipgloss.Style {
	border := lipgloss.RoundedBorder()
	color := s.palette.Accent
	switch tone {
	case deck.ToneHero:
		border = lipgloss.DoubleBorder()
		color = s.palette.Primary
	case deck.ToneProblem:
		color = s.palette.Danger
	case deck.ToneSolution:
		color = s.palette.Success
	case deck.ToneTech:
		color = s.palette.Primary
	case deck.TonePhone:
		color = s.palette.Success
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1)
}
