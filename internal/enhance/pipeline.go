package enhance

import "strings"

// Technique names recorded in techniques_applied, in the order the
// stages run.
const (
	TechniqueRoleFraming       = "role_framing"
	TechniqueToneStyling       = "tone_styling"
	TechniqueSpecificityBoost  = "specificity_boost"
	TechniqueStructureGuidance = "structure_guidance"
	TechniqueContextInjection  = "context_injection"
	TechniqueQualityGuardrails = "quality_guardrails"
)

// shortPromptWords is the threshold below which a prompt gets the
// specificity boost.
const shortPromptWords = 8

const specificityText = "\n\nPlease be specific and detailed in your response. " +
	"Include concrete examples where relevant."

const guardrailsText = "\n\nImportant guidelines:\n" +
	"- If you're unsure about something, say so rather than guessing\n" +
	"- Prioritize accuracy over completeness\n" +
	"- Use concrete examples to illustrate points"

// Options adjust how Apply rewrites a prompt.
type Options struct {
	// Tone selects the styling instruction. Unknown or empty tones get
	// the professional instruction.
	Tone Tone
	// Category skips detection when non-empty.
	Category Category
	// Context is injected verbatim as an additional-context block when
	// non-empty.
	Context string
}

// Apply rewrites a raw prompt through the enhancement stages in fixed
// order: role framing, tone styling, specificity boost, structure
// guidance, context injection, quality guardrails. It returns the
// enhanced text, the category used, and the technique names in
// application order.
func Apply(raw string, opts Options) (string, Category, []string) {
	category := opts.Category
	if category == "" {
		category = Detect(raw)
	}

	var techniques []string
	var b strings.Builder

	b.WriteString(Persona(category))
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(raw))
	techniques = append(techniques, TechniqueRoleFraming)

	b.WriteString("\n\n")
	b.WriteString(opts.Tone.Instruction())
	techniques = append(techniques, TechniqueToneStyling)

	// The word count comes from the caller's original text, not the
	// framed prompt built so far.
	if len(strings.Fields(raw)) < shortPromptWords {
		b.WriteString(specificityText)
		techniques = append(techniques, TechniqueSpecificityBoost)
	}

	if hint, ok := structureHints[category]; ok {
		b.WriteString(hint)
		techniques = append(techniques, TechniqueStructureGuidance)
	}

	if opts.Context != "" {
		b.WriteString("\n\nAdditional context:\n")
		b.WriteString(opts.Context)
		techniques = append(techniques, TechniqueContextInjection)
	}

	b.WriteString(guardrailsText)
	techniques = append(techniques, TechniqueQualityGuardrails)

	return b.String(), category, techniques
}
