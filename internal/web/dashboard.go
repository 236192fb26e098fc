package web

import (
	"net/http"

	"github.com/promptsmith/promptsmith/internal/buildinfo"
	"github.com/promptsmith/promptsmith/internal/enhance"
	"github.com/promptsmith/promptsmith/internal/history"
	"github.com/promptsmith/promptsmith/internal/templates"
)

// DashboardData is the template context for the main page.
type DashboardData struct {
	PageData
	Tones        []enhance.Tone
	Categories   []enhance.Category
	Templates    []templates.Template
	Recent       []entryRow
	HistoryCount int
	Build        map[string]string
	Uptime       string
}

// entryRow is a display-friendly wrapper around a history entry.
type entryRow struct {
	ID       int64
	Original string
	Category string
	Tone     string
	Starred  bool
	Age      string
}

// handleDashboard renders the main page at "/". Only exact "/"
// requests get the dashboard; all other paths return 404.
func (ui *UI) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := DashboardData{
		PageData:   PageData{BrandName: brandName, ActiveNav: "enhance"},
		Tones:      enhance.Tones(),
		Categories: enhance.Categories(),
		Templates:  templates.List(""),
		Build:      buildinfo.Info(),
		Uptime:     buildinfo.Uptime().String(),
	}

	entries, err := ui.history.List(history.ListOptions{Limit: 10})
	if err != nil {
		ui.logger.Error("history list failed", "error", err)
	}
	for _, e := range entries {
		data.Recent = append(data.Recent, entryRow{
			ID:       e.ID,
			Original: truncate(e.Original, 80),
			Category: string(e.Category),
			Tone:     string(e.Tone),
			Starred:  e.Starred,
			Age:      timeAgo(e.Timestamp),
		})
	}
	if n, err := ui.history.Count(); err == nil {
		data.HistoryCount = n
	}

	ui.render(w, r, "dashboard.html", data)
}
