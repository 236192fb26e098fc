package web

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFiles embed.FS

// templateFuncs provides helper functions available in all templates.
var templateFuncs = template.FuncMap{
	"truncate": truncate,
	"timeAgo":  timeAgo,
}

// loadTemplates parses the layout and each page template. Each page
// template is a clone of the layout with the page-specific blocks
// overridden. Fragments render without the layout and are parsed
// standalone. Panics on syntax errors so that startup fails fast.
func loadTemplates() map[string]*template.Template {
	layout := template.Must(
		template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFiles, "templates/layout.html"),
	)

	pages := []string{"dashboard.html"}
	fragments := []string{"result.html", "preview.html"}
	result := make(map[string]*template.Template, len(pages)+len(fragments))

	for _, page := range pages {
		t := template.Must(layout.Clone())
		template.Must(t.ParseFS(templateFiles, "templates/"+page))
		result[page] = t
	}

	for _, frag := range fragments {
		result[frag] = template.Must(
			template.New(frag).Funcs(templateFuncs).ParseFS(templateFiles, "templates/"+frag),
		)
	}

	return result
}

// render executes a named page template. If the request has the
// HX-Request header (htmx partial), only the "content" block is
// rendered. Otherwise the full layout is rendered.
func (ui *UI) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	t, ok := ui.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	block := "layout.html"
	if r.Header.Get("HX-Request") == "true" {
		block = "content"
	}

	if err := t.ExecuteTemplate(w, block, data); err != nil {
		ui.logger.Error("template render failed", "template", name, "block", block, "error", err)
	}
}

// renderFragment executes a standalone fragment template.
func (ui *UI) renderFragment(w http.ResponseWriter, name string, data any) {
	t, ok := ui.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		ui.logger.Error("template render failed", "template", name, "error", err)
	}
}
