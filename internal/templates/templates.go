// Package templates provides the built-in prompt blueprint catalog.
package templates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/promptsmith/promptsmith/internal/enhance"
)

// ErrNotFound is returned when a template id is not in the catalog.
var ErrNotFound = errors.New("template not found")

// Template is a reusable prompt blueprint with named {variable} slots.
type Template struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    enhance.Category `json:"category"`
	Description string           `json:"description"`
	Blueprint   string           `json:"template"`
	Variables   []string         `json:"variables"`
}

// Render fills the blueprint's declared variables from vars. A missing
// variable is left as a visible [name] marker so the gap is obvious in
// the output. Keys in vars that the template does not declare are
// ignored. Substitution is literal text replacement: a value that
// itself contains a later {variable} slot will have it filled too.
func (t Template) Render(vars map[string]string) string {
	result := t.Blueprint
	for _, name := range t.Variables {
		value, ok := vars[name]
		if !ok {
			value = "[" + name + "]"
		}
		result = strings.ReplaceAll(result, "{"+name+"}", value)
	}
	return result
}

// Get returns the template with the given id.
func Get(id string) (Template, error) {
	t, ok := byID[id]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q: %w", id, ErrNotFound)
	}
	return t, nil
}

// List returns templates in catalog order. A non-empty category
// restricts the result to that category.
func List(category enhance.Category) []Template {
	if category == "" {
		return append([]Template(nil), builtins...)
	}
	var out []Template
	for _, t := range builtins {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Render fills the identified template from vars. See Template.Render.
func Render(id string, vars map[string]string) (string, error) {
	t, err := Get(id)
	if err != nil {
		return "", err
	}
	return t.Render(vars), nil
}

var byID = make(map[string]Template, len(builtins))

func init() {
	for _, t := range builtins {
		byID[t.ID] = t
	}
}

// builtins is the catalog in presentation order.
var builtins = []Template{
	{
		ID:          "code-write",
		Name:        "Write Code",
		Category:    enhance.CategoryCoding,
		Description: "Generate clean, well-documented code for a given task",
		Blueprint: `Write {language} code that accomplishes the following:

{task_description}

Requirements:
- Follow best practices and idiomatic patterns for {language}
- Include clear comments explaining the logic
- Handle edge cases and errors gracefully
- Provide example usage`,
		Variables: []string{"language", "task_description"},
	},
	{
		ID:          "code-review",
		Name:        "Code Review",
		Category:    enhance.CategoryCoding,
		Description: "Get a thorough code review with actionable suggestions",
		// Contains ``` fences, so no raw string literal here.
		Blueprint: "Perform a detailed code review of the following code:\n\n" +
			"```{language}\n{code}\n```\n\n" +
			"Evaluate for:\n" +
			"1. Correctness and potential bugs\n" +
			"2. Performance and efficiency\n" +
			"3. Readability and maintainability\n" +
			"4. Security concerns\n" +
			"5. Adherence to {language} best practices\n\n" +
			"Provide specific, actionable suggestions with code examples.",
		Variables: []string{"language", "code"},
	},
	{
		ID:          "code-debug",
		Name:        "Debug Code",
		Category:    enhance.CategoryDebugging,
		Description: "Systematically debug code issues",
		Blueprint: "I have the following {language} code that is producing an error:\n\n" +
			"```{language}\n{code}\n```\n\n" +
			"Error message: {error_message}\n\n" +
			"Please:\n" +
			"1. Identify the root cause of the error\n" +
			"2. Explain why the error occurs\n" +
			"3. Provide the corrected code\n" +
			"4. Suggest how to prevent similar issues",
		Variables: []string{"language", "code", "error_message"},
	},
	{
		ID:          "write-article",
		Name:        "Write Article",
		Category:    enhance.CategoryWriting,
		Description: "Create a well-structured article on any topic",
		Blueprint: `Write a comprehensive article about: {topic}

Target audience: {audience}
Desired length: {length}

Structure the article with:
- An engaging introduction that hooks the reader
- Well-organized sections with clear headings
- Supporting evidence, examples, or data points
- A compelling conclusion with key takeaways

Tone: {tone}`,
		Variables: []string{"topic", "audience", "length", "tone"},
	},
	{
		ID:          "write-email",
		Name:        "Compose Email",
		Category:    enhance.CategoryWriting,
		Description: "Draft a professional or casual email",
		Blueprint: `Draft an email with the following details:

Purpose: {purpose}
Recipient: {recipient}
Key points to cover:
{key_points}

Tone: {tone}
Keep it concise and action-oriented.`,
		Variables: []string{"purpose", "recipient", "key_points", "tone"},
	},
	{
		ID:          "analyze-data",
		Name:        "Analyze Data",
		Category:    enhance.CategoryAnalysis,
		Description: "Get structured analysis of data or information",
		Blueprint: `Analyze the following data/information:

{data}

Please provide:
1. Key findings and patterns
2. Notable outliers or anomalies
3. Trends and correlations
4. Actionable insights and recommendations
5. Limitations of this analysis

Focus area: {focus_area}`,
		Variables: []string{"data", "focus_area"},
	},
	{
		ID:          "compare-options",
		Name:        "Compare Options",
		Category:    enhance.CategoryAnalysis,
		Description: "Get a structured comparison of multiple options",
		Blueprint: `Compare the following options:

{options}

Evaluation criteria: {criteria}

For each option provide:
- Pros and cons
- Best use cases
- Cost/effort considerations
- Final recommendation with justification`,
		Variables: []string{"options", "criteria"},
	},
	{
		ID:          "brainstorm-ideas",
		Name:        "Brainstorm Ideas",
		Category:    enhance.CategoryBrainstorming,
		Description: "Generate creative ideas for a topic or problem",
		Blueprint: `Generate creative and diverse ideas for:

{topic}

Constraints: {constraints}

Please provide:
- At least 10 unique ideas ranging from practical to innovative
- A brief description of each idea
- Why each idea could work
- Quick feasibility rating (Easy / Medium / Hard)`,
		Variables: []string{"topic", "constraints"},
	},
	{
		ID:          "summarize-text",
		Name:        "Summarize Text",
		Category:    enhance.CategorySummarization,
		Description: "Create concise summaries of long content",
		Blueprint: `Summarize the following content:

{content}

Provide:
1. A one-paragraph executive summary
2. Key bullet points (5-7 items)
3. Important details that shouldn't be missed
4. Action items or next steps (if applicable)`,
		Variables: []string{"content"},
	},
	{
		ID:          "explain-concept",
		Name:        "Explain Concept",
		Category:    enhance.CategoryExplanation,
		Description: "Get a clear explanation of any concept",
		Blueprint: `Explain the concept of: {concept}

Target knowledge level: {level}

Please include:
- A simple, intuitive explanation
- A real-world analogy
- Key terminology defined
- A practical example
- Common misconceptions to avoid
- Resources for deeper learning`,
		Variables: []string{"concept", "level"},
	},
	{
		ID:          "eli5",
		Name:        "Explain Like I'm 5",
		Category:    enhance.CategoryExplanation,
		Description: "Super-simple explanation for complex topics",
		Blueprint: `Explain {concept} in the simplest possible terms, as if I'm 5 years old.

Use:
- Everyday analogies and examples
- Short, simple sentences
- No jargon or technical terms
- A fun, engaging tone`,
		Variables: []string{"concept"},
	},
	{
		ID:          "translate-text",
		Name:        "Translate Text",
		Category:    enhance.CategoryTranslation,
		Description: "Translate text while preserving meaning and nuance",
		Blueprint: `Translate the following text from {source_language} to {target_language}:

{text}

Requirements:
- Preserve the original meaning, tone, and nuance
- Use natural phrasing in the target language
- Note any cultural context that affects the translation
- Flag any ambiguous phrases with alternative translations`,
		Variables: []string{"source_language", "target_language", "text"},
	},
}
