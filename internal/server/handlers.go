package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/techflow-ai/pitchdeck/internal/chart"
	"github.com/techflow-ai/pitchdeck/internal/deck"
	"github.com/techflow-ai/pitchdeck/internal/plot"
	"github.com/techflow-ai/pitchdeck/internal/report"
)

// maxChartSize bounds the width and height query parameters of chart
// images.
const maxChartSize = 4096

func sectionLink(slug string) string {
	return "/sections/" + slug
}

func chartLink(slug string, index int) string {
	return fmt.Sprintf("/charts/%s/%d.svg", slug, index)
}

// htmlSurface presents a page as a full HTML document on w.
func (s *Server) htmlSurface(w http.ResponseWriter) deck.Surface {
	cfg := s.Config()
	doc := report.NewDocument(s.registry, cfg)
	return deck.SurfaceFunc(func(p deck.Page) error {
		// Nothing reaches w until the whole page has rendered.
		var buf bytes.Buffer
		err := report.WriteHTML(&buf, doc.WithPages(p), report.HTMLOptions{
			LinkFor:  sectionLink,
			ChartSrc: chartLink,
		})
		if err != nil {
			return err
		}
		s.metrics.SectionRenders.WithLabelValues(p.Slug).Inc()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err = buf.WriteTo(w)
		return err
	})
}

// handleIndex shows the configured default section, or the section
// named by the "section" query parameter.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	nav := deck.NewNavigator(s.registry, s.htmlSurface(w))

	if label := r.URL.Query().Get("section"); label != "" {
		if err := nav.Select(label); err != nil {
			s.fail(w, r, err)
		}
		return
	}

	if name := s.Config().DefaultSection; name != "" {
		sec, err := s.registry.Find(name)
		if err != nil {
			s.logger.Warn("default section not found", "name", name)
		} else {
			if err := nav.SelectID(sec.ID()); err != nil {
				s.fail(w, r, err)
			}
			return
		}
	}

	if err := nav.Show(); err != nil {
		s.fail(w, r, err)
	}
}

func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	sec, err := s.registry.Find(mux.Vars(r)["slug"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	nav := deck.NewNavigator(s.registry, s.htmlSurface(w))
	if err := nav.SelectID(sec.ID()); err != nil {
		s.fail(w, r, err)
	}
}

// sectionSummary is one entry of /api/sections.
type sectionSummary struct {
	Label  string `json:"label"`
	Slug   string `json:"slug"`
	Charts int    `json:"charts"`
	Href   string `json:"href"`
}

func (s *Server) handleAPISections(w http.ResponseWriter, r *http.Request) {
	out := struct {
		Version  string           `json:"version"`
		Title    string           `json:"title"`
		Sections []sectionSummary `json:"sections"`
	}{
		Version: s.version,
		Title:   s.Config().Title,
	}
	for _, sec := range s.registry.Sections() {
		p, err := sec.Render()
		if err != nil {
			s.fail(w, r, err)
			return
		}
		out.Sections = append(out.Sections, sectionSummary{
			Label:  p.Label,
			Slug:   p.Slug,
			Charts: len(p.Charts()),
			Href:   "/api/sections/" + p.Slug,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPISection(w http.ResponseWriter, r *http.Request) {
	sec, err := s.registry.Find(mux.Vars(r)["slug"])
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var page deck.Page
	nav := deck.NewNavigator(s.registry, deck.SurfaceFunc(func(p deck.Page) error {
		page = p
		return nil
	}))
	if err := nav.SelectID(sec.ID()); err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.SectionRenders.WithLabelValues(page.Slug).Inc()
	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sec, err := s.registry.Find(vars["slug"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format, err := plot.ParseFormat(vars["format"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		s.fail(w, r, fmt.Errorf("%w: chart index %q", errBadRequest, vars["index"]))
		return
	}

	page, err := sec.Render()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	charts := page.Charts()
	if index >= len(charts) {
		s.fail(w, r, fmt.Errorf("%w: %s has %d chart(s)", deck.ErrNotFound, page.Slug, len(charts)))
		return
	}

	opts := plot.Options{Style: plot.ThemeStyle(s.Config().Theme)}
	if opts.Width, err = sizeParam(r, "width"); err != nil {
		s.fail(w, r, err)
		return
	}
	if opts.Height, err = sizeParam(r, "height"); err != nil {
		s.fail(w, r, err)
		return
	}

	if !charts[index].Monotonic() {
		s.logger.Warn("line chart x values are not monotonic", "chart", charts[index].Title)
	}
	w.Header().Set("Content-Type", format.ContentType())
	if err := plot.Render(w, format, charts[index], opts); err != nil {
		s.logger.Error("chart render failed", "id", RequestID(r.Context()), "err", err)
		return
	}
	s.metrics.ChartRenders.WithLabelValues(string(format)).Inc()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  s.version,
		"sections": s.registry.Len(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.fail(w, r, fmt.Errorf("%w: %s", errNoRoute, r.URL.Path))
}

var (
	errBadRequest = errors.New("bad request")
	errNoRoute    = errors.New("no such route")
)

// fail maps err to a status code and writes it as JSON.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, deck.ErrNotFound), errors.Is(err, errNoRoute):
		code = http.StatusNotFound
	case errors.Is(err, errBadRequest), errors.Is(err, plot.ErrUnsupportedFormat), errors.Is(err, chart.ErrInvalidInput):
		code = http.StatusBadRequest
	default:
		s.logger.Error("request failed", "id", RequestID(r.Context()), "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, code, map[string]string{
		"error":      err.Error(),
		"request_id": RequestID(r.Context()),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

func sizeParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > maxChartSize {
		return 0, fmt.Errorf("%w: %s must be an integer in [1, %d]", errBadRequest, name, maxChartSize)
	}
	return n, nil
}
