package site

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/techflow-ai/pitchdeck/internal/config"
	"github.com/techflow-ai/pitchdeck/internal/deck"
	"github.com/techflow-ai/pitchdeck/internal/plot"
)

func export(t *testing.T, dir string, opts Options) (*Result, string) {
	t.Helper()
	var buf bytes.Buffer
	opts.TargetDir = dir
	opts.Stdout = &buf
	result, err := Export(context.Background(), deck.Default(), config.DefaultConfig(), opts)
	if err != nil {
		t.Fatalf("Export() returned error: %v", err)
	}
	return result, buf.String()
}

func TestExport_CreatesFiles(t *testing.T) {
	dir := t.TempDir()
	result, output := export(t, dir, Options{Version: "1.2.3"})

	// index + 8 pages + 2 charts + deck.json
	if len(result.Created) != 12 {
		t.Errorf("expected 12 created files, got %d: %v", len(result.Created), result.Created)
	}
	if len(result.Skipped) != 0 || len(result.Overwritten) != 0 {
		t.Errorf("fresh export skipped %v, overwrote %v", result.Skipped, result.Overwritten)
	}

	expected := []string{
		"index.html",
		"home.html",
		"problem.html",
		"future.html",
		"charts/problem-0.svg",
		"charts/market-0.svg",
		"deck.json",
	}
	for _, rel := range expected {
		if _, err := os.Stat(filepath.Join(dir, rel)); os.IsNotExist(err) {
			t.Errorf("expected file %s to exist", rel)
		}
	}

	if !strings.Contains(output, "created: index.html") {
		t.Errorf("summary should list created files, got:\n%s", output)
	}
}

func TestExport_PagesLinkLocally(t *testing.T) {
	dir := t.TempDir()
	export(t, dir, Options{})

	data, err := os.ReadFile(filepath.Join(dir, "problem.html"))
	if err != nil {
		t.Fatal(err)
	}
	page := string(data)
	for _, want := range []string{`href="market.html"`, `src="charts/problem-0.svg"`, `id="problem"`} {
		if !strings.Contains(page, want) {
			t.Errorf("problem.html missing %s", want)
		}
	}
}

func TestExport_VersionMarker(t *testing.T) {
	dir := t.TempDir()
	export(t, dir, Options{Version: "1.2.3"})

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<!-- exported by pitchdeck 1.2.3 -->\n") {
		t.Errorf("index.html does not start with the version marker:\n%.80s", data)
	}

	var doc struct {
		Version  string `json:"version"`
		Sections []any  `json:"sections"`
	}
	raw, err := os.ReadFile(filepath.Join(dir, "deck.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Version != "1.2.3" || len(doc.Sections) != 8 {
		t.Errorf("deck.json version %q with %d sections", doc.Version, len(doc.Sections))
	}
}

func TestExport_SkipsExisting(t *testing.T) {
	dir := t.TempDir()
	export(t, dir, Options{})

	sentinel := []byte("hand edited")
	if err := os.WriteFile(filepath.Join(dir, "home.html"), sentinel, 0o644); err != nil {
		t.Fatal(err)
	}

	result, output := export(t, dir, Options{})
	if len(result.Created) != 0 || len(result.Skipped) != 12 {
		t.Errorf("second export created %d, skipped %d", len(result.Created), len(result.Skipped))
	}
	data, _ := os.ReadFile(filepath.Join(dir, "home.html"))
	if !bytes.Equal(data, sentinel) {
		t.Error("existing file was modified without --force")
	}
	if !strings.Contains(output, "12 file(s) skipped (use --force to overwrite).") {
		t.Errorf("summary should mention skipped files, got:\n%s", output)
	}
}

func TestExport_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	export(t, dir, Options{})
	if err := os.WriteFile(filepath.Join(dir, "home.html"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, _ := export(t, dir, Options{Force: true})
	if len(result.Overwritten) != 12 {
		t.Errorf("expected 12 overwritten files, got %d", len(result.Overwritten))
	}
	data, _ := os.ReadFile(filepath.Join(dir, "home.html"))
	if string(data) == "old" {
		t.Error("--force did not overwrite home.html")
	}
}

func TestExport_PNG(t *testing.T) {
	dir := t.TempDir()
	result, _ := export(t, dir, Options{PNG: true})
	if len(result.Created) != 14 {
		t.Errorf("expected 14 created files with PNG, got %d", len(result.Created))
	}

	f, err := os.Open(filepath.Join(dir, ChartFile("market", 0, plot.PNG)))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("market chart is not a PNG: %v", err)
	}
}

func TestExport_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Export(ctx, deck.Default(), config.DefaultConfig(), Options{TargetDir: t.TempDir(), Stdout: &bytes.Buffer{}})
	if err == nil {
		t.Error("expected error for canceled context")
	}
}
