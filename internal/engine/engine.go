// Package engine ties enhancement, templates, context, and history
// together into a single request pipeline.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/promptsmith/promptsmith/internal/config"
	"github.com/promptsmith/promptsmith/internal/enhance"
	"github.com/promptsmith/promptsmith/internal/history"
	"github.com/promptsmith/promptsmith/internal/templates"
)

// ErrEmptyPrompt is returned when a request's prompt is empty or only
// whitespace.
var ErrEmptyPrompt = errors.New("prompt must not be empty")

// Request is an incoming prompt to process.
type Request struct {
	RawPrompt string           `json:"raw_prompt"`
	Tone      enhance.Tone     `json:"tone,omitempty"`
	Category  enhance.Category `json:"category,omitempty"`
	Context   string           `json:"context,omitempty"`
	// AutoEnhance defaults to true when absent, so it is a pointer:
	// only an explicit false disables enhancement.
	AutoEnhance *bool  `json:"auto_enhance,omitempty"`
	TemplateID  string `json:"template_id,omitempty"`
}

func (r Request) autoEnhance() bool {
	return r.AutoEnhance == nil || *r.AutoEnhance
}

// Result is the outcome of processing a request. Original always holds
// the text the caller sent, even when a template expanded it first.
type Result struct {
	Original          string           `json:"original"`
	Enhanced          string           `json:"enhanced"`
	Category          enhance.Category `json:"category"`
	Tone              enhance.Tone     `json:"tone"`
	TechniquesApplied []string         `json:"techniques_applied"`
	Timestamp         time.Time        `json:"timestamp"`
}

// Engine processes prompt requests end to end.
type Engine struct {
	history     history.Store
	logger      *slog.Logger
	defaultTone enhance.Tone
	now         func() time.Time
}

// New creates an engine writing to the given history store.
func New(store history.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		history:     store,
		logger:      logger,
		defaultTone: enhance.ToneProfessional,
		now:         time.Now,
	}
}

// SetDefaultTone changes the tone applied when a request leaves Tone
// unset. The engine starts with [enhance.ToneProfessional].
func (e *Engine) SetDefaultTone(t enhance.Tone) {
	if t != "" {
		e.defaultTone = t
	}
}

// Process runs a request through template rendering, enhancement, and
// history recording. Unknown template ids surface
// [templates.ErrNotFound]; an empty prompt surfaces [ErrEmptyPrompt].
// A history write failure is logged but does not discard the result.
func (e *Engine) Process(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.RawPrompt) == "" {
		return Result{}, ErrEmptyPrompt
	}

	tone := req.Tone
	if tone == "" {
		tone = e.defaultTone
	}

	base := req.RawPrompt
	if req.TemplateID != "" {
		rendered, err := templates.Render(req.TemplateID, templateVars(base))
		if err != nil {
			return Result{}, err
		}
		base = rendered
	}

	var (
		enhanced   string
		category   enhance.Category
		techniques []string
	)
	if req.autoEnhance() {
		enhanced, category, techniques = enhance.Apply(base, enhance.Options{
			Tone:     tone,
			Category: req.Category,
			Context:  req.Context,
		})
	} else {
		enhanced = base
		category = req.Category
		if category == "" {
			category = enhance.CategoryGeneral
		}
		techniques = []string{}

		// Context still applies without enhancement.
		if req.Context != "" {
			enhanced += "\n\nAdditional context:\n" + req.Context
		}
	}

	result := Result{
		Original:          req.RawPrompt,
		Enhanced:          enhanced,
		Category:          category,
		Tone:              tone,
		TechniquesApplied: techniques,
		Timestamp:         e.now().UTC(),
	}

	if _, err := e.history.Add(result.Original, result.Enhanced, result.Category, result.Tone); err != nil {
		e.logger.Warn("history save failed", "error", err)
	}

	e.logger.Debug("prompt processed",
		"category", string(result.Category),
		"tone", string(result.Tone),
		"techniques", len(result.TechniquesApplied),
		"template", req.TemplateID,
	)
	e.logger.Log(ctx, config.LevelTrace, "enhanced prompt", "text", result.Enhanced)

	return result, nil
}

// History exposes the engine's store for the surfaces that browse it.
func (e *Engine) History() history.Store {
	return e.history
}

// templateVars interprets raw as a JSON object of template variables.
// Anything else, including valid JSON that is not an object of
// strings, feeds the whole text through the task_description and
// content variables instead.
func templateVars(raw string) map[string]string {
	var vars map[string]string
	if err := json.Unmarshal([]byte(raw), &vars); err != nil || vars == nil {
		return map[string]string{"task_description": raw, "content": raw}
	}
	return vars
}
