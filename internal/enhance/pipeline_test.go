package enhance

import (
	"strings"
	"testing"
)

func TestApply_RoleAndToneAlwaysPresent(t *testing.T) {
	enhanced, category, techniques := Apply("write python code for sorting", Options{})

	if category != CategoryCoding {
		t.Errorf("category = %q, want %q", category, CategoryCoding)
	}
	if !strings.HasPrefix(enhanced, "You are an expert software engineer") {
		t.Errorf("enhanced should open with the coding persona, got %q", firstLine(enhanced))
	}
	if !strings.Contains(enhanced, ToneProfessional.Instruction()) {
		t.Error("enhanced missing the default professional tone instruction")
	}
	if techniques[0] != TechniqueRoleFraming || techniques[1] != TechniqueToneStyling {
		t.Errorf("techniques = %v, want role_framing then tone_styling first", techniques)
	}
	if techniques[len(techniques)-1] != TechniqueQualityGuardrails {
		t.Errorf("techniques = %v, want quality_guardrails last", techniques)
	}
}

func TestApply_CasualTone(t *testing.T) {
	enhanced, _, techniques := Apply("help me", Options{Tone: ToneCasual})

	if !strings.Contains(enhanced, "relaxed, conversational tone") {
		t.Error("enhanced missing the casual tone instruction")
	}
	if !containsTechnique(techniques, TechniqueToneStyling) {
		t.Errorf("techniques = %v, want tone_styling", techniques)
	}
}

func TestApply_ShortPromptGetsSpecificity(t *testing.T) {
	enhanced, _, techniques := Apply("help", Options{})

	if !containsTechnique(techniques, TechniqueSpecificityBoost) {
		t.Errorf("techniques = %v, want specificity_boost for a one-word prompt", techniques)
	}
	if !strings.Contains(enhanced, "Please be specific and detailed") {
		t.Error("enhanced missing the specificity text")
	}
}

func TestApply_LongPromptSkipsSpecificity(t *testing.T) {
	long := "write a python function that reverses a string without using builtins"
	_, _, techniques := Apply(long, Options{})

	if containsTechnique(techniques, TechniqueSpecificityBoost) {
		t.Errorf("techniques = %v, prompts of eight or more words should not get specificity_boost", techniques)
	}
}

func TestApply_WordCountUsesOriginalText(t *testing.T) {
	// Seven words: the persona and tone sentences added before the
	// length check must not count toward it.
	_, _, techniques := Apply("one two three four five six seven", Options{})

	if !containsTechnique(techniques, TechniqueSpecificityBoost) {
		t.Errorf("techniques = %v, want specificity_boost for seven words", techniques)
	}
}

func TestApply_StructureGuidancePerCategory(t *testing.T) {
	tests := []struct {
		category Category
		want     bool
	}{
		{CategoryCoding, true},
		{CategoryAnalysis, true},
		{CategoryWriting, true},
		{CategoryExplanation, true},
		{CategoryDebugging, true},
		{CategoryBrainstorming, true},
		{CategorySummarization, true},
		{CategoryTranslation, false},
		{CategoryGeneral, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			_, _, techniques := Apply("do the thing", Options{Category: tt.category})
			got := containsTechnique(techniques, TechniqueStructureGuidance)
			if got != tt.want {
				t.Errorf("structure_guidance applied = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_ContextInjection(t *testing.T) {
	enhanced, _, techniques := Apply("sort a list", Options{Context: "Using Python 3.12"})

	if !strings.Contains(enhanced, "Additional context:\nUsing Python 3.12") {
		t.Error("enhanced missing the context block")
	}
	if !containsTechnique(techniques, TechniqueContextInjection) {
		t.Errorf("techniques = %v, want context_injection", techniques)
	}

	_, _, techniques = Apply("sort a list", Options{})
	if containsTechnique(techniques, TechniqueContextInjection) {
		t.Errorf("techniques = %v, context_injection without context", techniques)
	}
}

func TestApply_CategoryOverrideSkipsDetection(t *testing.T) {
	_, category, _ := Apply("write a python function", Options{Category: CategoryWriting})

	if category != CategoryWriting {
		t.Errorf("category = %q, want override %q", category, CategoryWriting)
	}
}

func TestApply_TrimsPromptWhitespace(t *testing.T) {
	enhanced, _, _ := Apply("  sort a list  \n", Options{Category: CategoryGeneral})

	if !strings.Contains(enhanced, "You are a helpful, knowledgeable assistant.\n\nsort a list\n\n") {
		t.Errorf("enhanced should contain the trimmed prompt after the persona, got %q", enhanced)
	}
}

func TestApply_GuardrailsAlwaysLast(t *testing.T) {
	enhanced, _, _ := Apply("explain recursion", Options{Context: "beginner audience"})

	if !strings.HasSuffix(enhanced, "- Use concrete examples to illustrate points") {
		t.Errorf("enhanced should end with the guardrail list, got %q", lastLine(enhanced))
	}
}

func containsTechnique(techniques []string, name string) bool {
	for _, t := range techniques {
		if t == name {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
