package deck

import (
	"errors"
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

func TestDefault_LabelsInDisplayOrder(t *testing.T) {
	want := []string{
		"🏠 Home", "📊 Problem", "💡 Solution", "🚀 Live Demo",
		"🛠️ Tech Stack", "📈 Market", "🎯 Impact", "🔮 Future",
	}
	got := Default().Labels()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
}

func TestDefault_FirstIsHome(t *testing.T) {
	if id := Default().First().ID(); id != Home {
		t.Errorf("first section = %v, want home", id)
	}
}

func TestResolve_ReferentiallyStable(t *testing.T) {
	r := Default()
	for _, label := range r.Labels() {
		a, err := r.Resolve(label)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", label, err)
		}
		b, err := r.Resolve(label)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", label, err)
		}
		if a != b {
			t.Errorf("Resolve(%q) returned different sections", label)
		}
		if Label(a) != label {
			t.Errorf("Resolve(%q) returned section labelled %q", label, Label(a))
		}
	}
}

func TestResolve_UnknownLabel(t *testing.T) {
	r := Default()
	for _, label := range []string{"", "Home", "home", "🏠 home", "🏠 Home ", "Pricing"} {
		_, err := r.Resolve(label)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ErrNotFound", label, err)
		}
	}
}

// TestResolve_NotFoundProperty checks that every string other than a
// registered label fails to resolve.
func TestResolve_NotFoundProperty(t *testing.T) {
	r := Default()
	registered := make(map[string]bool)
	for _, l := range r.Labels() {
		registered[l] = true
	}

	rapid.Check(t, func(t *rapid.T) {
		label := rapid.String().Draw(t, "label")
		_, err := r.Resolve(label)
		if registered[label] {
			if err != nil {
				t.Fatalf("registered label %q failed: %v", label, err)
			}
			return
		}
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("Resolve(%q) error = %v, want ErrNotFound", label, err)
		}
	})
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(homeSection{}, problemSection{}, homeSection{})
	if !errors.Is(err, ErrDuplicateLabel) {
		t.Fatalf("expected ErrDuplicateLabel, got %v", err)
	}
}

func TestNewRegistry_RejectsEmpty(t *testing.T) {
	if _, err := NewRegistry(); err == nil {
		t.Fatal("expected error for empty registry")
	}
}

func TestNewRegistry_PreservesCustomOrder(t *testing.T) {
	r, err := NewRegistry(marketSection{}, homeSection{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"📈 Market", "🏠 Home"}
	if got := r.Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
	if _, ok := r.Section(Problem); ok {
		t.Error("Section(Problem) found a section that was never registered")
	}
}

func TestFind_AcceptsSlugsAndNames(t *testing.T) {
	r := Default()
	cases := map[string]ID{
		"🛠️ Tech Stack": TechStack,
		"tech":          TechStack,
		"Tech Stack":    TechStack,
		"tech stack":    TechStack,
		"live demo":     Demo,
		"demo":          Demo,
		" market ":      Market,
	}
	for name, want := range cases {
		s, err := r.Find(name)
		if err != nil {
			t.Errorf("Find(%q): %v", name, err)
			continue
		}
		if s.ID() != want {
			t.Errorf("Find(%q) = %v, want %v", name, s.ID(), want)
		}
	}

	if _, err := r.Find("pricing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(pricing) error = %v, want ErrNotFound", err)
	}
	if _, err := r.Find("🚀"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find(emoji only) error = %v, want ErrNotFound", err)
	}
}

func TestID_Names(t *testing.T) {
	if got := TechStack.Name(); got != "Tech Stack" {
		t.Errorf("TechStack.Name() = %q", got)
	}
	if got := ID(99).Label(); got != "" {
		t.Errorf("invalid id label = %q, want empty", got)
	}
	if got := ID(99).String(); got != "section(99)" {
		t.Errorf("invalid id string = %q", got)
	}
	if len(IDs()) != Default().Len() {
		t.Errorf("IDs() and Default() disagree on section count")
	}
}
