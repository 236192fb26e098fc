// Package api implements the HTTP API for enhancement, templates,
// and history.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/promptsmith/promptsmith/internal/buildinfo"
	"github.com/promptsmith/promptsmith/internal/engine"
	"github.com/promptsmith/promptsmith/internal/enhance"
	"github.com/promptsmith/promptsmith/internal/fetch"
	"github.com/promptsmith/promptsmith/internal/history"
	"github.com/promptsmith/promptsmith/internal/templates"
	"github.com/promptsmith/promptsmith/internal/web"
)

// writeJSON encodes v as JSON to w, logging any errors at debug level.
// Errors here typically mean the client disconnected mid-response,
// which is not actionable but worth tracking for debugging.
func writeJSON(w http.ResponseWriter, v any, logger *slog.Logger) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("failed to write JSON response", "error", err)
	}
}

// Server is the HTTP API server.
type Server struct {
	address       string
	port          int
	engine        *engine.Engine
	history       history.Store
	fetcher       *fetch.Fetcher
	fetchMaxChars int
	webUI         *web.UI
	logger        *slog.Logger
	server        *http.Server
}

// NewServer creates a new API server.
func NewServer(address string, port int, eng *engine.Engine, store history.Store, logger *slog.Logger) *Server {
	return &Server{
		address: address,
		port:    port,
		engine:  eng,
		history: store,
		logger:  logger,
	}
}

// SetFetcher configures URL context fetching for enhance requests.
// maxChars caps how much fetched text is injected; zero means the
// fetch package default.
func (s *Server) SetFetcher(f *fetch.Fetcher, maxChars int) {
	s.fetcher = f
	s.fetchMaxChars = maxChars
}

// SetWebUI mounts the browser UI when the server starts.
func (s *Server) SetWebUI(ui *web.UI) {
	s.webUI = ui
}

// Handler returns the server's complete HTTP handler with logging and
// CORS middleware applied. Start serves it; tests can drive it
// directly.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Enhancement
	mux.HandleFunc("POST /api/enhance", s.handleEnhance)

	// Template catalog
	mux.HandleFunc("GET /api/templates", s.handleTemplateList)
	mux.HandleFunc("GET /api/templates/{id}", s.handleTemplateGet)
	mux.HandleFunc("POST /api/templates/{id}/render", s.handleTemplateRender)

	// History
	mux.HandleFunc("GET /api/history", s.handleHistoryList)
	mux.HandleFunc("GET /api/history/search", s.handleHistorySearch)
	mux.HandleFunc("POST /api/history/{id}/star", s.handleHistoryStar)
	mux.HandleFunc("DELETE /api/history/{id}", s.handleHistoryDelete)
	mux.HandleFunc("DELETE /api/history", s.handleHistoryClear)

	// Health endpoints
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/version", s.handleVersion)

	// Browser UI
	if s.webUI != nil {
		s.webUI.RegisterRoutes(mux)
	}

	return s.withLogging(s.withCORS(mux))
}

// Start begins serving HTTP requests.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.address, s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	addr := s.address
	if addr == "" {
		addr = "0.0.0.0"
	}
	s.logger.Info("starting API server", "address", addr, "port", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.New().String()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// withCORS lets browser clients on any origin call the API.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) errorResponse(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	writeJSON(w, map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    "invalid_request_error",
			"code":    code,
		},
	}, s.logger)
}

// enhanceRequest is the enhance endpoint's request body. ContextURL,
// when set, is fetched and appended to the request context before
// processing.
type enhanceRequest struct {
	engine.Request
	ContextURL string `json:"context_url,omitempty"`
}

func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	var req enhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Tone != "" {
		if _, err := enhance.ParseTone(string(req.Tone)); err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Category != "" {
		if _, err := enhance.ParseCategory(string(req.Category)); err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if req.ContextURL != "" {
		if s.fetcher == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "context fetching not configured")
			return
		}
		page, err := s.fetcher.Fetch(r.Context(), req.ContextURL, s.fetchMaxChars)
		if err != nil {
			s.logger.Warn("context fetch failed", "url", req.ContextURL, "error", err)
			s.errorResponse(w, http.StatusBadGateway, "failed to fetch context URL: "+err.Error())
			return
		}
		if req.Context != "" {
			req.Context += "\n\n" + page.Content
		} else {
			req.Context = page.Content
		}
	}

	result, err := s.engine.Process(r.Context(), req.Request)
	switch {
	case errors.Is(err, engine.ErrEmptyPrompt):
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, templates.ErrNotFound):
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		s.logger.Error("enhancement failed", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "enhancement failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, result, s.logger)
}

// Template handlers

func (s *Server) handleTemplateList(w http.ResponseWriter, r *http.Request) {
	var category enhance.Category
	if c := r.URL.Query().Get("category"); c != "" {
		parsed, err := enhance.ParseCategory(c)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		category = parsed
	}

	list := templates.List(category)
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]any{
		"templates": list,
		"count":     len(list),
	}, s.logger)
}

func (s *Server) handleTemplateGet(w http.ResponseWriter, r *http.Request) {
	tmpl, err := templates.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, tmpl, s.logger)
}

func (s *Server) handleTemplateRender(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	vars := map[string]string{}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&vars); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	rendered, err := templates.Render(id, vars)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{
		"template_id": id,
		"rendered":    rendered,
	}, s.logger)
}

// History handlers

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	opts := history.ListOptions{Limit: history.DefaultListLimit}

	if c := r.URL.Query().Get("category"); c != "" {
		parsed, err := enhance.ParseCategory(c)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.Category = parsed
	}
	if v := r.URL.Query().Get("starred"); v != "" {
		starred, err := strconv.ParseBool(v)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "starred must be a boolean")
			return
		}
		opts.Starred = starred
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > 100 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		opts.Limit = n
	}

	entries, err := s.history.List(opts)
	if err != nil {
		s.logger.Error("history list failed", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to list history")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]any{
		"entries": entries,
		"count":   len(entries),
	}, s.logger)
}

func (s *Server) handleHistorySearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.errorResponse(w, http.StatusBadRequest, "q parameter is required")
		return
	}

	limit := history.DefaultSearchLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > 100 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	results, err := s.history.Search(query, limit)
	if err != nil {
		s.logger.Error("history search failed", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "search failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]any{
		"results": results,
		"count":   len(results),
		"query":   query,
	}, s.logger)
}

func (s *Server) handleHistoryStar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid history id")
		return
	}

	entry, err := s.history.Star(id)
	if errors.Is(err, history.ErrNotFound) {
		s.errorResponse(w, http.StatusNotFound, "history entry not found")
		return
	}
	if err != nil {
		s.logger.Error("history star failed", "error", err, "id", id)
		s.errorResponse(w, http.StatusInternalServerError, "failed to update entry")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, entry, s.logger)
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid history id")
		return
	}

	deleted, err := s.history.Delete(id)
	if err != nil {
		s.logger.Error("history delete failed", "error", err, "id", id)
		s.errorResponse(w, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "history entry not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]int64{"deleted": id}, s.logger)
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	cleared, err := s.history.Clear()
	if err != nil {
		s.logger.Error("history clear failed", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to clear history")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]int{"cleared": cleared}, s.logger)
}

// Health endpoints

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.history.Count()
	if err != nil {
		s.logger.Debug("history count failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]any{
		"status":          "healthy",
		"version":         buildinfo.Version,
		"history_entries": count,
	}, s.logger)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, buildinfo.Info(), s.logger)
}
