package engine

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptsmith/promptsmith/internal/enhance"
	"github.com/promptsmith/promptsmith/internal/history"
	"github.com/promptsmith/promptsmith/internal/templates"
)

func newTestEngine(t *testing.T) (*Engine, history.Store) {
	t.Helper()
	store := history.NewJSONStore(filepath.Join(t.TempDir(), "history.json"), slog.Default())
	return New(store, slog.Default()), store
}

func boolPtr(b bool) *bool { return &b }

func TestProcess_EndToEnd(t *testing.T) {
	e, store := newTestEngine(t)

	result, err := e.Process(context.Background(), Request{
		RawPrompt: "write a python function to reverse a string",
		Tone:      enhance.ToneTechnical,
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if result.Category != enhance.CategoryCoding {
		t.Errorf("category = %q, want %q", result.Category, enhance.CategoryCoding)
	}
	if !strings.Contains(strings.ToLower(result.Enhanced), "reverse") {
		t.Error("enhanced text should contain the task")
	}
	if len(result.TechniquesApplied) == 0 {
		t.Error("techniques_applied should not be empty")
	}
	if result.Original != "write a python function to reverse a string" {
		t.Errorf("original = %q, want the raw request text", result.Original)
	}
	if result.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("history count = %d, want 1", n)
	}
}

func TestProcess_ExplainRecursion(t *testing.T) {
	e, _ := newTestEngine(t)

	result, err := e.Process(context.Background(), Request{RawPrompt: "explain recursion"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if result.Category != enhance.CategoryExplanation {
		t.Errorf("category = %q, want %q", result.Category, enhance.CategoryExplanation)
	}
	want := []string{
		enhance.TechniqueRoleFraming,
		enhance.TechniqueToneStyling,
		enhance.TechniqueSpecificityBoost,
		enhance.TechniqueStructureGuidance,
		enhance.TechniqueQualityGuardrails,
	}
	if len(result.TechniquesApplied) != len(want) {
		t.Fatalf("techniques = %v, want %v", result.TechniquesApplied, want)
	}
	for i, name := range want {
		if result.TechniquesApplied[i] != name {
			t.Errorf("techniques[%d] = %q, want %q", i, result.TechniquesApplied[i], name)
		}
	}
}

func TestProcess_WithTemplate(t *testing.T) {
	e, _ := newTestEngine(t)

	result, err := e.Process(context.Background(), Request{
		RawPrompt:  `{"language": "Rust", "task_description": "read a file"}`,
		TemplateID: "code-write",
		Tone:       enhance.ToneTechnical,
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if !strings.Contains(result.Enhanced, "Rust") {
		t.Error("enhanced text missing template language variable")
	}
	if !strings.Contains(result.Enhanced, "read a file") {
		t.Error("enhanced text missing template task variable")
	}
	if strings.Contains(result.Enhanced, "[language]") || strings.Contains(result.Enhanced, "[task_description]") {
		t.Errorf("enhanced text has unfilled markers: %q", result.Enhanced)
	}
	// The original field keeps the raw JSON, not the rendered prompt.
	if result.Original != `{"language": "Rust", "task_description": "read a file"}` {
		t.Errorf("original = %q, want the raw request text", result.Original)
	}
}

func TestProcess_TemplateWithPlainTextVars(t *testing.T) {
	e, _ := newTestEngine(t)

	result, err := e.Process(context.Background(), Request{
		RawPrompt:  "make an HTTP server",
		TemplateID: "code-write",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	// Non-JSON prompts feed the task_description variable directly.
	if !strings.Contains(result.Enhanced, "make an HTTP server") {
		t.Error("enhanced text should carry the prompt as the task description")
	}
	// code-write has no content variable, and language stays unfilled.
	if !strings.Contains(result.Enhanced, "[language]") {
		t.Error("missing template variables should stay visible as markers")
	}
}

func TestProcess_TemplateVarsNonObjectJSON(t *testing.T) {
	e, _ := newTestEngine(t)

	// Valid JSON, but not an object: falls back to the plain-text path.
	result, err := e.Process(context.Background(), Request{
		RawPrompt:  `["not", "vars"]`,
		TemplateID: "summarize-text",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !strings.Contains(result.Enhanced, `["not", "vars"]`) {
		t.Error("fallback should feed the raw text through the content variable")
	}
}

func TestProcess_UnknownTemplate(t *testing.T) {
	e, store := newTestEngine(t)

	_, err := e.Process(context.Background(), Request{
		RawPrompt:  "anything",
		TemplateID: "no-such-template",
	})
	if !errors.Is(err, templates.ErrNotFound) {
		t.Errorf("error = %v, want templates.ErrNotFound", err)
	}

	if n, _ := store.Count(); n != 0 {
		t.Errorf("history count after failed request = %d, want 0", n)
	}
}

func TestProcess_EmptyPrompt(t *testing.T) {
	e, _ := newTestEngine(t)

	for _, raw := range []string{"", "   ", "\n\t"} {
		if _, err := e.Process(context.Background(), Request{RawPrompt: raw}); !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("Process(%q) error = %v, want ErrEmptyPrompt", raw, err)
		}
	}
}

func TestProcess_AutoEnhanceDisabled(t *testing.T) {
	e, _ := newTestEngine(t)

	result, err := e.Process(context.Background(), Request{
		RawPrompt:   "keep me as-is",
		AutoEnhance: boolPtr(false),
		Context:     "but with context",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	want := "keep me as-is\n\nAdditional context:\nbut with context"
	if result.Enhanced != want {
		t.Errorf("enhanced = %q, want %q", result.Enhanced, want)
	}
	if len(result.TechniquesApplied) != 0 {
		t.Errorf("techniques = %v, want none", result.TechniquesApplied)
	}
	if result.Category != enhance.CategoryGeneral {
		t.Errorf("category = %q, want general", result.Category)
	}
}

func TestProcess_AutoEnhanceDisabledKeepsCategoryOverride(t *testing.T) {
	e, _ := newTestEngine(t)

	result, err := e.Process(context.Background(), Request{
		RawPrompt:   "raw text",
		AutoEnhance: boolPtr(false),
		Category:    enhance.CategoryCoding,
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Category != enhance.CategoryCoding {
		t.Errorf("category = %q, want the override", result.Category)
	}
	if result.Enhanced != "raw text" {
		t.Errorf("enhanced = %q, want unchanged text", result.Enhanced)
	}
}

func TestProcess_DefaultsToneToProfessional(t *testing.T) {
	e, _ := newTestEngine(t)

	result, err := e.Process(context.Background(), Request{RawPrompt: "hello there friend"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Tone != enhance.ToneProfessional {
		t.Errorf("tone = %q, want professional default", result.Tone)
	}
}

func TestProcess_SetDefaultTone(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetDefaultTone(enhance.ToneCasual)

	result, err := e.Process(context.Background(), Request{RawPrompt: "hello there friend"})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Tone != enhance.ToneCasual {
		t.Errorf("tone = %q, want configured casual default", result.Tone)
	}

	// An explicit tone still wins over the configured default.
	result, err = e.Process(context.Background(), Request{
		RawPrompt: "hello there friend",
		Tone:      enhance.ToneAcademic,
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Tone != enhance.ToneAcademic {
		t.Errorf("tone = %q, want explicit academic", result.Tone)
	}
}

func TestProcess_HistoryRecordsResultFields(t *testing.T) {
	e, store := newTestEngine(t)

	result, err := e.Process(context.Background(), Request{
		RawPrompt: "write a short story",
		Tone:      enhance.ToneCreative,
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	entries, err := store.List(history.ListOptions{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e0 := entries[0]
	if e0.Original != result.Original || e0.Enhanced != result.Enhanced {
		t.Error("history entry should mirror the result text")
	}
	if e0.Category != result.Category || e0.Tone != result.Tone {
		t.Error("history entry should mirror the result category and tone")
	}
}
