package web

import (
	"net/http"

	"github.com/promptsmith/promptsmith/internal/engine"
	"github.com/promptsmith/promptsmith/internal/enhance"
)

// ResultData is the template context for the enhancement result
// fragment. Either Error or Result is set, never both.
type ResultData struct {
	Error  string
	Result engine.Result
}

// handleEnhance processes the dashboard form and renders the result
// fragment for htmx to swap in.
func (ui *UI) handleEnhance(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ui.renderFragment(w, "result.html", ResultData{Error: "invalid form submission"})
		return
	}

	// Checkboxes are absent from the form data when unchecked, so
	// presence alone decides the flag.
	auto := r.FormValue("auto_enhance") != ""

	req := engine.Request{
		RawPrompt:   r.FormValue("prompt"),
		Tone:        enhance.Tone(r.FormValue("tone")),
		Category:    enhance.Category(r.FormValue("category")),
		Context:     r.FormValue("context"),
		TemplateID:  r.FormValue("template_id"),
		AutoEnhance: &auto,
	}

	result, err := ui.engine.Process(r.Context(), req)
	if err != nil {
		ui.renderFragment(w, "result.html", ResultData{Error: err.Error()})
		return
	}

	ui.renderFragment(w, "result.html", ResultData{Result: result})
}
