package enhance

import (
	"fmt"
	"strings"
)

// Tone selects the voice the enhanced prompt asks for.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneTechnical    Tone = "technical"
	ToneCreative     Tone = "creative"
	ToneAcademic     Tone = "academic"
	ToneFriendly     Tone = "friendly"
)

// Tones returns every tone in canonical order.
func Tones() []Tone {
	return []Tone{
		ToneProfessional,
		ToneCasual,
		ToneTechnical,
		ToneCreative,
		ToneAcademic,
		ToneFriendly,
	}
}

// ParseTone converts a case-insensitive string to a Tone. Returns an
// error for unrecognized values.
func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tones() {
		if t == known {
			return t, nil
		}
	}
	var names []string
	for _, known := range Tones() {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("unknown tone %q (valid: %s)", s, strings.Join(names, ", "))
}

var toneInstructions = map[Tone]string{
	ToneProfessional: "Use a professional, clear, and business-appropriate tone.",
	ToneCasual:       "Use a relaxed, conversational tone — like chatting with a friend.",
	ToneTechnical:    "Use precise technical language with proper terminology.",
	ToneCreative:     "Be creative, expressive, and imaginative in your response.",
	ToneAcademic:     "Use formal academic language with proper citations style.",
	ToneFriendly:     "Be warm, approachable, and encouraging in your response.",
}

// Instruction returns the styling sentence for a tone. Unknown tones
// get the professional instruction.
func (t Tone) Instruction() string {
	if instr, ok := toneInstructions[t]; ok {
		return instr
	}
	return toneInstructions[ToneProfessional]
}
