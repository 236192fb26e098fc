package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/yuin/goldmark"

	"github.com/promptsmith/promptsmith/internal/history"
)

// PreviewData is the template context for the markdown preview page.
type PreviewData struct {
	Title string
	Body  template.HTML
}

// handleHistoryPreview renders a history entry's enhanced text as
// markdown in a minimal standalone page. Prompts routinely carry
// markdown structure (headings, fences, bullet lists), so a rendered
// view is easier to review than the raw text.
func (ui *UI) handleHistoryPreview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	entry, err := ui.history.Get(id)
	if errors.Is(err, history.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		ui.logger.Error("history get failed", "error", err, "id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(entry.Enhanced), &buf); err != nil {
		ui.logger.Error("markdown render failed", "error", err, "id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	ui.renderFragment(w, "preview.html", PreviewData{
		Title: fmt.Sprintf("Prompt #%d", id),
		Body:  template.HTML(buf.String()),
	})
}
