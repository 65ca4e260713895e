package api

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/siderail/pkg/buildinfo"
	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/page"
	"github.com/matzehuels/siderail/pkg/pipeline"
)

// Response headers set on layout responses.
const (
	HeaderPlanID = "X-Plan-ID"
	HeaderCache  = "X-Cache"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := buildinfo.Info()
	body["status"] = "ok"
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	format, err := bodyFormat(r.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := page.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes), format)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.layout(w, r, doc)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	if err := errors.ValidatePath(rel); err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := page.ReadFile(filepath.Join(s.pagesDir, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			err = notFound("no page %q", rel)
		}
		writeError(w, r, err)
		return
	}
	s.layout(w, r, doc)
}

// handleGetPlan renders a plan computed by an earlier request.
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid plan id %q", id))
		return
	}
	opts, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Logger = s.logger.With("request", RequestID(r.Context()))

	p, err := s.runner.LoadPlan(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), p, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := opts.Formats[0]
	writeArtifact(w, p.ID, format, artifacts[format], hit)
}

// layout runs the pipeline for doc and writes the single requested artifact.
func (s *Server) layout(w http.ResponseWriter, r *http.Request, doc *page.Document) {
	opts, err := optionsFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Logger = s.logger.With("request", RequestID(r.Context()))

	result, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	format := opts.Formats[0]
	hit := result.CacheInfo.PlanHit && result.CacheInfo.RenderHit
	writeArtifact(w, result.Plan.ID, format, result.Artifacts[format], hit)
}

// fail writes err, logging it when it is a server fault.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if statusFor(err) == http.StatusInternalServerError {
		s.logger.Error("layout failed", "request", RequestID(r.Context()), "err", err)
	}
	writeError(w, r, err)
}

func writeArtifact(w http.ResponseWriter, planID, format string, data []byte, hit bool) {
	cacheState := "miss"
	if hit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set(HeaderPlanID, planID)
	w.Header().Set(HeaderCache, cacheState)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Formats: []string{pipeline.FormatJSON}}

	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number, got %q", v)
		}
		opts.Scale = scale
	}
	if v := q.Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "refresh must be a boolean, got %q", v)
		}
		opts.Refresh = refresh
	}
	opts.Detailed = q.Has("detailed")

	return opts, opts.Validate()
}

// bodyFormat picks the document decoder from a Content-Type header. JSON is
// assumed when none is given.
func bodyFormat(contentType string) (page.Format, error) {
	if contentType == "" {
		return page.FormatJSON, nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errors.New(errors.ErrCodeInvalidFormat, "bad content type %q", contentType)
	}
	switch mediaType {
	case "application/json":
		return page.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return page.FormatYAML, nil
	case "application/toml":
		return page.FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q (use json, yaml or toml)", mediaType)
}

// pagesDirExists reports whether dir is an existing directory.
func pagesDirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
