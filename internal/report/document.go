// Package report renders deck pages as styled terminal text, JSON or
// self-contained HTML.
package report

import (
	"github.com/techflow-ai/pitchdeck/internal/config"
	"github.com/techflow-ai/pitchdeck/internal/deck"
)

// NavItem is one sidebar navigation entry.
type NavItem struct {
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// Document is what every writer renders: the deck chrome plus the
// pages to show.
type Document struct {
	Title   string
	Sidebar deck.Sidebar
	Nav     []NavItem

	// Selected is the slug of the highlighted navigation entry. Empty
	// means none.
	Selected string

	Pages []deck.Page
	Theme config.Theme
}

// NewDocument builds the chrome for reg under cfg. Callers add pages.
func NewDocument(reg *deck.Registry, cfg *config.Config) Document {
	doc := Document{
		Title:   cfg.Title,
		Sidebar: deck.DefaultSidebar(),
		Theme:   cfg.Theme,
	}
	for _, s := range reg.Sections() {
		doc.Nav = append(doc.Nav, NavItem{Label: deck.Label(s), Slug: s.ID().Slug()})
	}
	return doc
}

// WithPages returns a copy of d showing pages. A single page is also
// marked as selected.
func (d Document) WithPages(pages ...deck.Page) Document {
	d.Pages = pages
	d.Selected = ""
	if len(pages) == 1 {
		d.Selected = pages[0].Slug
	}
	return d
}
