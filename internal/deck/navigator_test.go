package deck

import (
	"errors"
	"reflect"
	"testing"
)

// recorder is a Surface that keeps every presented page.
type recorder struct {
	pages []Page
	err   error
}

func (r *recorder) Present(p Page) error {
	r.pages = append(r.pages, p)
	return r.err
}

func TestNavigator_StartsOnFirstSection(t *testing.T) {
	nav := NewNavigator(Default(), nil)
	if got := nav.Selected(); got != "🏠 Home" {
		t.Errorf("Selected() = %q, want first label", got)
	}
	if nav.SelectedID() != Home {
		t.Errorf("SelectedID() = %v, want home", nav.SelectedID())
	}
}

func TestNavigator_SelectRendersOnce(t *testing.T) {
	rec := &recorder{}
	nav := NewNavigator(Default(), rec)

	if err := nav.Select("📈 Market"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(rec.pages) != 1 {
		t.Fatalf("expected exactly one render, got %d", len(rec.pages))
	}
	if rec.pages[0].Section != Market {
		t.Errorf("presented %v, want market", rec.pages[0].Section)
	}
	if nav.Selected() != "📈 Market" {
		t.Errorf("Selected() = %q", nav.Selected())
	}
}

func TestNavigator_UnknownLabelKeepsState(t *testing.T) {
	rec := &recorder{}
	nav := NewNavigator(Default(), rec)
	if err := nav.SelectID(Impact); err != nil {
		t.Fatal(err)
	}

	err := nav.Select("Pricing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if nav.SelectedID() != Impact {
		t.Errorf("selection changed to %v after failed select", nav.SelectedID())
	}
	if len(rec.pages) != 1 {
		t.Errorf("failed select must not render, got %d pages", len(rec.pages))
	}
}

func TestNavigator_NoCrossSectionLeakage(t *testing.T) {
	rec := &recorder{}
	nav := NewNavigator(Default(), rec)

	for _, label := range []string{"📊 Problem", "📈 Market", "📊 Problem"} {
		if err := nav.Select(label); err != nil {
			t.Fatalf("Select(%q): %v", label, err)
		}
	}
	if !reflect.DeepEqual(rec.pages[0], rec.pages[2]) {
		t.Error("revisiting a section produced a different page")
	}
	if reflect.DeepEqual(rec.pages[0], rec.pages[1]) {
		t.Error("different sections produced equal pages")
	}
}

func TestNavigator_MoveWraps(t *testing.T) {
	nav := NewNavigator(Default(), nil)
	if err := nav.Move(-1); err != nil {
		t.Fatal(err)
	}
	if nav.SelectedID() != Future {
		t.Errorf("Move(-1) from home = %v, want future", nav.SelectedID())
	}
	if err := nav.Move(2); err != nil {
		t.Fatal(err)
	}
	if nav.SelectedID() != Problem {
		t.Errorf("Move(2) from future = %v, want problem", nav.SelectedID())
	}
}

func TestNavigator_SurfaceErrorPropagates(t *testing.T) {
	boom := errors.New("surface down")
	nav := NewNavigator(Default(), &recorder{err: boom})
	if err := nav.Show(); !errors.Is(err, boom) {
		t.Errorf("Show() error = %v, want wrapped surface error", err)
	}
}

func TestSurfaceFunc(t *testing.T) {
	var got Page
	nav := NewNavigator(Default(), SurfaceFunc(func(p Page) error {
		got = p
		return nil
	}))
	if err := nav.SelectID(Future); err != nil {
		t.Fatal(err)
	}
	if got.Slug != "future" {
		t.Errorf("surface saw %q, want future", got.Slug)
	}
}
