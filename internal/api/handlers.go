package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/flexgrid/pkg/buildinfo"
	flexerrors "github.com/matzehuels/flexgrid/pkg/errors"
	"github.com/matzehuels/flexgrid/pkg/pipeline"
	"github.com/matzehuels/flexgrid/pkg/screen"
)

// ScreenSummary describes one built-in screen in the catalog.
type ScreenSummary struct {
	Name     string   `json:"name"`
	Title    string   `json:"title,omitempty"`
	Width    float64  `json:"width"`
	Sections []string `json:"sections"`
	Items    int      `json:"items"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleListScreens(w http.ResponseWriter, _ *http.Request) {
	defs, err := screen.Builtin()
	if err != nil {
		s.fail(w, err)
		return
	}
	out := make([]ScreenSummary, 0, len(defs))
	for _, d := range defs {
		out = append(out, summarize(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func summarize(d screen.Definition) ScreenSummary {
	sum := ScreenSummary{Name: d.Name, Title: d.Title, Width: d.Width, Sections: make([]string, 0, len(d.Sections))}
	if sum.Width <= 0 {
		sum.Width = screen.DefaultWidth
	}
	for _, sec := range d.Sections {
		sum.Sections = append(sum.Sections, sec.Name)
		sum.Items += len(sec.Items)
	}
	return sum
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Screen:  chi.URLParam(r, "name"),
		Style:   q.Get("style"),
		Refresh: q.Get("refresh") == "true",
		Images:  q.Get("images") == "true",
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	if raw := q.Get("width"); raw != "" {
		width, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.fail(w, flexerrors.New(flexerrors.ErrCodeInvalidInput, "width must be a number, got %q", raw))
			return
		}
		opts.Width = width
	}
	if raw := q.Get("columns"); raw != "" {
		cols, err := strconv.Atoi(raw)
		if err != nil {
			s.fail(w, flexerrors.New(flexerrors.ErrCodeInvalidInput, "columns must be an integer, got %q", raw))
			return
		}
		opts.TextColumns = cols
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.BuildHit && res.CacheInfo.RenderHit))
	w.Header().Set("ETag", strconv.Quote(res.TreeHash))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	var req pipeline.GridOptions
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.fail(w, flexerrors.Wrap(flexerrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	res, hit, err := s.runner.GridWithCacheInfo(r.Context(), req)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	writeJSON(w, http.StatusOK, res)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
