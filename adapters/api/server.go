// Package api exposes the renderer over HTTP: JSON endpoints for single
// and batch rendering, stored-report access and an HTML preview.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/patilv/papaja/app"
	"github.com/patilv/papaja/internal/errors"
	"github.com/patilv/papaja/ports"
)

// Server wires the render service into a chi router.
type Server struct {
	router  *chi.Mux
	service *app.RenderService
	reports ports.ReportRepository // nil when no database is configured
}

// NewServer creates the HTTP server. reports may be nil.
func NewServer(service *app.RenderService, reports ports.ReportRepository) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		reports: reports,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/render/batch", s.handleRenderBatch)
		r.Post("/preview", s.handlePreview)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
	})
}

// Handler returns the router for mounting or serving.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var item app.RenderItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, errors.InvalidInput("malformed request body: "+err.Error()))
		return
	}

	out, err := s.service.Render(r.Context(), item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRenderBatch(w http.ResponseWriter, r *http.Request) {
	var items []app.RenderItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeError(w, errors.InvalidInput("malformed request body: "+err.Error()))
		return
	}

	outcomes, err := s.service.RenderBatch(r.Context(), items)
	if err != nil {
		writeError(w, err)
		return
	}

	type batchEntry struct {
		Source string         `json:"source,omitempty"`
		Output interface{}    `json:"output,omitempty"`
		Error  *errorResponse `json:"error,omitempty"`
	}
	entries := make([]batchEntry, len(outcomes))
	for i, oc := range outcomes {
		entries[i] = batchEntry{Source: oc.Source}
		if oc.Err != nil {
			entries[i].Error = &errorResponse{
				Code:  errors.GetCode(oc.Err),
				Error: oc.Err.Error(),
			}
			continue
		}
		entries[i].Output = oc.Output
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		writeError(w, errors.NotFound("report storage is not configured"))
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	reports, err := s.reports.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		writeError(w, errors.NotFound("report storage is not configured"))
		return
	}
	report, err := s.reports.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput, errors.CodeMissingSampleSize:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Code: code, Error: err.Error()})
}
