// Package site exports the deck as a static website: one HTML page
// per section, chart images, and the JSON document.
package site

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/techflow-ai/pitchdeck/internal/config"
	"github.com/techflow-ai/pitchdeck/internal/deck"
	"github.com/techflow-ai/pitchdeck/internal/plot"
	"github.com/techflow-ai/pitchdeck/internal/report"
)

// Options configures the export.
type Options struct {
	// TargetDir is the directory to export into. Defaults to "site"
	// under the current working directory.
	TargetDir string

	// Force overwrites existing files when true.
	// When false, existing files are skipped.
	Force bool

	// PNG also writes a PNG next to every SVG chart.
	PNG bool

	// Version is embedded in the marker comment of each HTML page and
	// in deck.json. Defaults to "dev".
	Version string

	// Stdout is the writer for summary output.
	// Defaults to os.Stdout.
	Stdout io.Writer
}

// Result reports what the export did. Paths are relative to the
// target directory.
type Result struct {
	// Created lists files that were written for the first time.
	Created []string

	// Skipped lists files that already existed and were not
	// overwritten (Force was false).
	Skipped []string

	// Overwritten lists files that existed and were replaced
	// (Force was true).
	Overwritten []string
}

// versionMarker returns the comment prepended to each exported HTML
// page.
func versionMarker(version string) string {
	return fmt.Sprintf("<!-- exported by pitchdeck %s -->\n", version)
}

// PageFile returns the file name of a section page.
func PageFile(slug string) string {
	return slug + ".html"
}

// ChartFile returns the path of the index-th chart of a section.
func ChartFile(slug string, index int, format plot.Format) string {
	return fmt.Sprintf("charts/%s-%d.%s", slug, index, format)
}

type file struct {
	rel  string
	data []byte
}

// Export renders every section of reg and writes the site. Existing
// files are skipped unless opts.Force is set.
func Export(ctx context.Context, reg *deck.Registry, cfg *config.Config, opts Options) (*Result, error) {
	if opts.TargetDir == "" {
		opts.TargetDir = "site"
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	pages, err := deck.RenderAll(ctx, reg)
	if err != nil {
		return nil, err
	}
	files, err := build(reg, cfg, pages, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outPath := filepath.Join(opts.TargetDir, filepath.FromSlash(f.rel))

		_, statErr := os.Stat(outPath)
		exists := statErr == nil
		if exists && !opts.Force {
			result.Skipped = append(result.Skipped, f.rel)
			continue
		}

		dir := filepath.Dir(outPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
		if err := os.WriteFile(outPath, f.data, 0o644); err != nil {
			return nil, fmt.Errorf("creating %s: %w", f.rel, err)
		}

		if exists {
			result.Overwritten = append(result.Overwritten, f.rel)
		} else {
			result.Created = append(result.Created, f.rel)
		}
	}

	printSummary(opts.Stdout, opts.TargetDir, result)
	return result, nil
}

// build renders every output file in memory, in write order.
func build(reg *deck.Registry, cfg *config.Config, pages []deck.Page, opts Options) ([]file, error) {
	doc := report.NewDocument(reg, cfg)
	marker := []byte(versionMarker(opts.Version))
	htmlOpts := report.HTMLOptions{
		LinkFor: PageFile,
		ChartSrc: func(slug string, i int) string {
			return ChartFile(slug, i, plot.SVG)
		},
	}
	style := plot.Options{Style: plot.ThemeStyle(cfg.Theme)}

	var files []file
	renderHTML := func(rel string, p deck.Page) error {
		var buf bytes.Buffer
		buf.Write(marker)
		if err := report.WriteHTML(&buf, doc.WithPages(p), htmlOpts); err != nil {
			return fmt.Errorf("rendering %s: %w", rel, err)
		}
		files = append(files, file{rel: rel, data: buf.Bytes()})
		return nil
	}

	if err := renderHTML("index.html", landingPage(reg, cfg, pages)); err != nil {
		return nil, err
	}

	formats := []plot.Format{plot.SVG}
	if opts.PNG {
		formats = append(formats, plot.PNG)
	}
	for _, p := range pages {
		if err := renderHTML(PageFile(p.Slug), p); err != nil {
			return nil, err
		}
		for i, spec := range p.Charts() {
			for _, f := range formats {
				var buf bytes.Buffer
				if err := plot.Render(&buf, f, spec, style); err != nil {
					return nil, fmt.Errorf("rendering chart %d of %s: %w", i, p.Slug, err)
				}
				files = append(files, file{rel: ChartFile(p.Slug, i, f), data: buf.Bytes()})
			}
		}
	}

	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, doc.WithPages(pages...), opts.Version); err != nil {
		return nil, fmt.Errorf("rendering deck.json: %w", err)
	}
	files = append(files, file{rel: "deck.json", data: buf.Bytes()})
	return files, nil
}

// landingPage is the configured default section, or the first one.
func landingPage(reg *deck.Registry, cfg *config.Config, pages []deck.Page) deck.Page {
	id := reg.First().ID()
	if cfg.DefaultSection != "" {
		if s, err := reg.Find(cfg.DefaultSection); err == nil {
			id = s.ID()
		}
	}
	for _, p := range pages {
		if p.Section == id {
			return p
		}
	}
	return pages[0]
}

// printSummary writes a human-readable summary of the export to w.
func printSummary(w io.Writer, dir string, r *Result) {
	fmt.Fprintf(w, "Deck exported to %s:\n", dir)

	for _, f := range r.Created {
		fmt.Fprintf(w, "  created: %s\n", f)
	}
	for _, f := range r.Skipped {
		fmt.Fprintf(w, "  skipped: %s (already exists)\n", f)
	}
	for _, f := range r.Overwritten {
		fmt.Fprintf(w, "  overwritten: %s\n", f)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Open %s in a browser to view the deck.\n", filepath.Join(dir, "index.html"))

	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "%d file(s) skipped (use --force to overwrite).\n", len(r.Skipped))
	}
}
