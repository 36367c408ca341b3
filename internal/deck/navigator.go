package deck

import "fmt"

// Surface receives rendered pages. Implementations draw them: the
// terminal browser, the HTTP handlers and the static exporter each
// provide one.
type Surface interface {
	Present(Page) error
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(Page) error

// Present calls f(p).
func (f SurfaceFunc) Present(p Page) error {
	return f(p)
}

// Navigator owns the navigation state of one session: the selected
// section label. It is not safe for concurrent use; each session
// gets its own.
type Navigator struct {
	registry *Registry
	surface  Surface
	selected int
}

// NewNavigator starts a session on the registry's first section.
// A nil surface discards pages.
func NewNavigator(registry *Registry, surface Surface) *Navigator {
	if surface == nil {
		surface = SurfaceFunc(func(Page) error { return nil })
	}
	return &Navigator{registry: registry, surface: surface}
}

// Selected returns the label of the selected section.
func (n *Navigator) Selected() string {
	return Label(n.registry.sections[n.selected])
}

// SelectedID returns the id of the selected section.
func (n *Navigator) SelectedID() ID {
	return n.registry.sections[n.selected].ID()
}

// Select makes label the current section, renders it once and hands
// the page to the surface. An unknown label leaves the state
// untouched and returns ErrNotFound.
func (n *Navigator) Select(label string) error {
	i, ok := n.registry.byLabel[label]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, label)
	}
	n.selected = i
	return n.Show()
}

// SelectID is Select for callers holding an ID.
func (n *Navigator) SelectID(id ID) error {
	return n.Select(id.Label())
}

// Move shifts the selection by delta positions, wrapping at both
// ends, and shows the new section.
func (n *Navigator) Move(delta int) error {
	count := len(n.registry.sections)
	n.selected = ((n.selected+delta)%count + count) % count
	return n.Show()
}

// Show renders the selected section and presents it without changing
// the selection.
func (n *Navigator) Show() error {
	s := n.registry.sections[n.selected]
	page, err := s.Render()
	if err != nil {
		return fmt.Errorf("rendering %s: %w", s.ID(), err)
	}
	if err := n.surface.Present(page); err != nil {
		return fmt.Errorf("presenting %s: %w", s.ID(), err)
	}
	return nil
}
