package deck

import (
	"errors"
	"fmt"
	"strings"
)

// Registry errors.
var (
	// ErrNotFound means a label or name matched no registered section.
	ErrNotFound = errors.New("section not found")

	// ErrDuplicateLabel means two sections share a label.
	ErrDuplicateLabel = errors.New("duplicate section label")
)

// Registry is an ordered, read-only set of sections with unique
// labels. It is built once and safe for concurrent readers.
type Registry struct {
	sections []Section
	byLabel  map[string]int
}

// NewRegistry builds a registry that lists sections in the given
// order.
func NewRegistry(sections ...Section) (*Registry, error) {
	if len(sections) == 0 {
		return nil, errors.New("registry needs at least one section")
	}

	r := &Registry{
		sections: make([]Section, 0, len(sections)),
		byLabel:  make(map[string]int, len(sections)),
	}
	for _, s := range sections {
		label := Label(s)
		if label == "" {
			return nil, fmt.Errorf("section %v has no label", s.ID())
		}
		if _, dup := r.byLabel[label]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, label)
		}
		r.byLabel[label] = len(r.sections)
		r.sections = append(r.sections, s)
	}
	return r, nil
}

// Default returns the full TechFlow AI deck in display order.
func Default() *Registry {
	r, err := NewRegistry(
		homeSection{},
		problemSection{},
		solutionSection{},
		demoSection{},
		techStackSection{},
		marketSection{},
		impactSection{},
		futureSection{},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of sections.
func (r *Registry) Len() int {
	return len(r.sections)
}

// Labels returns the labels in display order.
func (r *Registry) Labels() []string {
	out := make([]string, len(r.sections))
	for i, s := range r.sections {
		out[i] = Label(s)
	}
	return out
}

// Sections returns the sections in display order.
func (r *Registry) Sections() []Section {
	return append([]Section(nil), r.sections...)
}

// First returns the section a new session starts on.
func (r *Registry) First() Section {
	return r.sections[0]
}

// Resolve returns the section registered under label exactly.
func (r *Registry) Resolve(label string) (Section, error) {
	i, ok := r.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, label)
	}
	return r.sections[i], nil
}

// Section returns the registered section with the given id.
func (r *Registry) Section(id ID) (Section, bool) {
	for _, s := range r.sections {
		if s.ID() == id {
			return s, true
		}
	}
	return nil, false
}

// Index returns the display position of label, or -1.
func (r *Registry) Index(label string) int {
	i, ok := r.byLabel[label]
	if !ok {
		return -1
	}
	return i
}

// Find resolves loosely typed names from URLs and the command line.
// It accepts an exact label, a slug ("tech"), or the label without
// its emoji in any case ("tech stack").
func (r *Registry) Find(name string) (Section, error) {
	if s, err := r.Resolve(name); err == nil {
		return s, nil
	}

	want := strings.ToLower(strings.TrimSpace(plainLabel(name)))
	if want != "" {
		for _, s := range r.sections {
			id := s.ID()
			if want == id.Slug() || want == strings.ToLower(id.Name()) {
				return s, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}
