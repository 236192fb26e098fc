// Package web provides the browser UI for enhancing prompts and
// browsing history.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/promptsmith/promptsmith/internal/engine"
	"github.com/promptsmith/promptsmith/internal/history"
)

//go:embed static/*
var staticFiles embed.FS

const brandName = "Promptsmith"

// Config holds the dependencies for the UI.
type Config struct {
	Engine  *engine.Engine
	History history.Store
	Logger  *slog.Logger
}

// UI serves the HTML pages and htmx fragments.
type UI struct {
	engine    *engine.Engine
	history   history.Store
	logger    *slog.Logger
	templates map[string]*template.Template
}

// New creates the UI and parses its embedded templates.
func New(cfg Config) *UI {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UI{
		engine:    cfg.Engine,
		history:   cfg.History,
		logger:    logger,
		templates: loadTemplates(),
	}
}

// PageData is the part of the template context shared by all pages.
type PageData struct {
	BrandName string
	ActiveNav string
}

// RegisterRoutes adds the UI routes to a mux.
func (ui *UI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /", ui.handleDashboard)
	mux.HandleFunc("POST /enhance", ui.handleEnhance)
	mux.HandleFunc("GET /history/{id}/preview", ui.handleHistoryPreview)

	subFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(subFS))))
}
