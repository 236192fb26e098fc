// Package enhance rewrites vague prompts into structured, effective ones.
package enhance

import (
	"fmt"
	"strings"
)

// Category classifies what kind of task a prompt is asking for.
type Category string

const (
	CategoryCoding        Category = "coding"
	CategoryWriting       Category = "writing"
	CategoryAnalysis      Category = "analysis"
	CategoryBrainstorming Category = "brainstorming"
	CategorySummarization Category = "summarization"
	CategoryTranslation   Category = "translation"
	CategoryDebugging     Category = "debugging"
	CategoryExplanation   Category = "explanation"
	CategoryGeneral       Category = "general"
)

// Categories returns every category in canonical order. Detect scans
// scores in this order, so it is also the tie-break order when two
// categories score equally.
func Categories() []Category {
	return []Category{
		CategoryCoding,
		CategoryWriting,
		CategoryAnalysis,
		CategoryBrainstorming,
		CategorySummarization,
		CategoryTranslation,
		CategoryDebugging,
		CategoryExplanation,
		CategoryGeneral,
	}
}

// ParseCategory converts a case-insensitive string to a Category.
// Returns an error for unrecognized values.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (valid: %s)", s, joinCategories())
}

func joinCategories() string {
	var names []string
	for _, c := range Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

// personas are prepended to prompts during role framing. Every category
// has one; general doubles as the fallback.
var personas = map[Category]string{
	CategoryCoding:        "You are an expert software engineer with deep knowledge of best practices.",
	CategoryDebugging:     "You are a senior developer skilled at diagnosing and fixing complex bugs.",
	CategoryWriting:       "You are a skilled writer who crafts engaging, well-structured content.",
	CategoryAnalysis:      "You are a data analyst who provides clear, evidence-based insights.",
	CategoryBrainstorming: "You are a creative strategist who generates innovative solutions.",
	CategoryExplanation:   "You are a patient teacher who explains complex topics clearly.",
	CategorySummarization: "You are an editor who distills information to its essential points.",
	CategoryTranslation:   "You are a professional translator who preserves meaning and nuance.",
	CategoryGeneral:       "You are a helpful, knowledgeable assistant.",
}

// Persona returns the role-framing sentence for a category. Categories
// without a dedicated persona get the general one.
func Persona(c Category) string {
	if p, ok := personas[c]; ok {
		return p
	}
	return personas[CategoryGeneral]
}

// structureHints ask the model to shape its response. Translation and
// general have none: translations should come back bare, and general
// prompts have no predictable shape to request.
var structureHints = map[Category]string{
	CategoryCoding:        "\n\nStructure your response with: explanation, code, and usage example.",
	CategoryAnalysis:      "\n\nOrganize your analysis with clear sections, bullet points, and a conclusion.",
	CategoryWriting:       "\n\nUse proper headings, paragraphs, and a logical flow.",
	CategoryExplanation:   "\n\nStart with a simple overview, then progressively add detail.",
	CategoryDebugging:     "\n\nStructure: identify the bug → explain the cause → provide the fix → suggest prevention.",
	CategoryBrainstorming: "\n\nPresent ideas in a numbered list with brief descriptions.",
	CategorySummarization: "\n\nProvide an executive summary, then key bullet points.",
}
