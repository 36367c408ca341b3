package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/techflow-ai/pitchdeck/internal/config"
	"github.com/techflow-ai/pitchdeck/internal/deck"
	"github.com/techflow-ai/pitchdeck/internal/report"
)

// sidebarWidth is the width of the navigation column.
const sidebarWidth = 28

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Jump     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Jump},
		{k.PageUp, k.PageDown},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Prev:     key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("^/k", "previous section")),
	Next:     key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("v/j", "next section")),
	Jump:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump to section")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

var (
	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			PaddingRight(1).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("63"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// browseModel is the Bubble Tea model for browsing the deck. The
// Navigator holds the selected section; its surface stores the
// rendered page where the model can read it.
type browseModel struct {
	doc      report.Document
	styles   report.Styles
	nav      *deck.Navigator
	current  *deck.Page
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
	err      error
}

func newBrowseModel(reg *deck.Registry, cfg *config.Config) (browseModel, error) {
	current := &deck.Page{}
	nav := deck.NewNavigator(reg, deck.SurfaceFunc(func(p deck.Page) error {
		*current = p
		return nil
	}))

	start := defaultSection(reg, cfg)
	if err := nav.SelectID(start.ID()); err != nil {
		return browseModel{}, err
	}

	return browseModel{
		doc:     report.NewDocument(reg, cfg),
		styles:  report.NewStyles(cfg.Theme),
		nav:     nav,
		current: current,
		help:    help.New(),
		keys:    defaultKeyMap,
	}, nil
}

// contentWidth is the width left for the page next to the sidebar.
func contentWidth(total int) int {
	w := total - sidebarWidth - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m browseModel) renderContent() string {
	w := m.viewport.Width
	if w <= 0 {
		w = report.DefaultWidth
	}
	return report.RenderPage(*m.current, m.styles, w)
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		footerHeight := 2
		width := contentWidth(msg.Width)

		if !m.ready {
			m.viewport = viewport.New(width, msg.Height-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = width
			m.viewport.Height = msg.Height - footerHeight
		}
		m.viewport.SetContent(m.renderContent())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			return m.navigate(m.nav.Move(-1))
		case key.Matches(msg, m.keys.Next):
			return m.navigate(m.nav.Move(1))
		case key.Matches(msg, m.keys.Jump):
			n, _ := strconv.Atoi(msg.String())
			if n < 1 || n > len(m.doc.Nav) {
				return m, nil
			}
			return m.navigate(m.nav.Select(m.doc.Nav[n-1].Label))
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// navigate refreshes the content after a selection change.
func (m browseModel) navigate(err error) (tea.Model, tea.Cmd) {
	m.err = err
	if m.ready {
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
	}
	return m, nil
}

func (m browseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	selected := 0
	for i, n := range m.doc.Nav {
		if n.Label == m.nav.Selected() {
			selected = i
		}
	}
	sidebar := sidebarStyle.Height(m.viewport.Height).
		Render(report.RenderSidebar(m.doc, selected, m.styles, sidebarWidth-1))

	status := statusStyle.Render(fmt.Sprintf(" %s  %3.f%% ", m.nav.Selected(), m.viewport.ScrollPercent()*100))
	if m.err != nil {
		status = errorStyle.Render(" " + m.err.Error() + " ")
	}
	footer := status + " " + m.help.View(m.keys)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", m.viewport.View()) + "\n" + footer
}

// runBrowse launches the Bubble Tea TUI for browsing the deck.
func runBrowse(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	model, err := newBrowseModel(deck.Default(), cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func newBrowseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the deck interactively in the terminal",
		Long: `Open the deck in a full-screen terminal UI: the sidebar lists
the sections, arrow keys or 1-9 switch between them, and the page
scrolls with pgup/pgdn.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(flags.configPath)
		},
	}
}
