package report

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/techflow-ai/pitchdeck/internal/deck"
)

// JSONReport is the top-level JSON output structure.
type JSONReport struct {
	Version    string       `json:"version"`
	Title      string       `json:"title"`
	Navigation []NavItem    `json:"navigation"`
	Sidebar    deck.Sidebar `json:"sidebar"`
	Sections   []deck.Page  `json:"sections"`
}

// WriteJSON writes the document as formatted JSON to the writer.
func WriteJSON(w io.Writer, doc Document, version string) error {
	report := JSONReport{
		Version:    version,
		Title:      doc.Title,
		Navigation: doc.Nav,
		Sidebar:    doc.Sidebar,
		Sections:   doc.Pages,
	}
	if report.Navigation == nil {
		report.Navigation = []NavItem{}
	}
	if report.Sections == nil {
		report.Sections = []deck.Page{}
	}
	if report.Sidebar.QuickStats == nil {
		report.Sidebar.QuickStats = []deck.Metric{}
	}
	if report.Sidebar.Contact == nil {
		report.Sidebar.Contact = []string{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
