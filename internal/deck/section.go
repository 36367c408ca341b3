// Package deck holds the TechFlow AI presentation: its closed set of
// sections, the ordered registry that drives navigation, and the
// navigator that dispatches a selection to exactly one render.
package deck

import (
	"strconv"
	"strings"
	"unicode"
)

// ID enumerates the sections of the deck. The zero value is Home.
type ID int

// Section identifiers in display order.
const (
	Home ID = iota
	Problem
	Solution
	Demo
	TechStack
	Market
	Impact
	Future

	numSections
)

var sectionLabels = [numSections]string{
	Home:      "🏠 Home",
	Problem:   "📊 Problem",
	Solution:  "💡 Solution",
	Demo:      "🚀 Live Demo",
	TechStack: "🛠️ Tech Stack",
	Market:    "📈 Market",
	Impact:    "🎯 Impact",
	Future:    "🔮 Future",
}

var sectionSlugs = [numSections]string{
	Home:      "home",
	Problem:   "problem",
	Solution:  "solution",
	Demo:      "demo",
	TechStack: "tech",
	Market:    "market",
	Impact:    "impact",
	Future:    "future",
}

// IDs returns every section identifier in display order.
func IDs() []ID {
	ids := make([]ID, numSections)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// Valid reports whether id names a known section.
func (id ID) Valid() bool {
	return id >= 0 && id < numSections
}

// Label returns the sidebar label, emoji included.
func (id ID) Label() string {
	if !id.Valid() {
		return ""
	}
	return sectionLabels[id]
}

// Slug returns the URL-safe name of the section.
func (id ID) Slug() string {
	if !id.Valid() {
		return ""
	}
	return sectionSlugs[id]
}

// Name returns the label without its leading emoji.
func (id ID) Name() string {
	return plainLabel(id.Label())
}

func (id ID) String() string {
	if !id.Valid() {
		return "section(" + strconv.Itoa(int(id)) + ")"
	}
	return id.Slug()
}

// Section is one navigable content panel. The set of implementations
// is closed: every Section is one of the eight variants declared in
// sections.go.
type Section interface {
	ID() ID
	Render() (Page, error)
}

// Label returns the sidebar label of s.
func Label(s Section) string {
	return s.ID().Label()
}

// plainLabel strips leading symbols and spaces so "🛠️ Tech Stack"
// becomes "Tech Stack".
func plainLabel(label string) string {
	return strings.TrimLeftFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
