package enhance

import "strings"

// categoryKeywords drives Detect. Matching is plain lowercase substring
// containment, so multi-word entries match phrases and short entries
// match inside longer words ("api" matches "rapid").
var categoryKeywords = map[Category][]string{
	CategoryCoding: {
		"code", "function", "class", "script", "program", "implement", "api",
		"bug", "error", "syntax", "compile", "algorithm", "database", "sql",
		"python", "javascript", "typescript", "java", "rust", "html", "css",
		"react", "django", "flask", "fastapi", "node", "docker", "git",
	},
	CategoryDebugging: {
		"debug", "fix", "error", "traceback", "exception", "crash", "broken",
		"not working", "fails", "issue", "stack trace", "segfault",
	},
	CategoryWriting: {
		"write", "draft", "compose", "essay", "article", "blog", "email",
		"letter", "copy", "content", "narrative", "story", "report",
	},
	CategoryAnalysis: {
		"analyze", "analyse", "compare", "evaluate", "assess", "review",
		"pros and cons", "tradeoff", "benchmark", "metrics", "data",
	},
	CategoryBrainstorming: {
		"brainstorm", "ideas", "suggest", "creative", "innovate", "think of",
		"come up with", "generate ideas", "possibilities",
	},
	CategorySummarization: {
		"summarize", "summarise", "summary", "tldr", "tl;dr", "key points",
		"brief", "condense", "shorten", "recap",
	},
	CategoryTranslation: {
		"translate", "translation", "convert to", "in spanish", "in french",
		"in german", "in japanese", "in chinese", "in hindi", "localize",
	},
	CategoryExplanation: {
		"explain", "what is", "how does", "how do", "why does", "teach me",
		"eli5", "definition", "meaning of", "concept of", "understand",
	},
}

// Detect returns the most likely task category for the prompt text.
// Each keyword found in the lowercased text adds one point to its
// category. Debugging is more specific than coding, so when both score
// and debugging is at least even, debugging wins outright. Otherwise
// the highest score wins, ties going to the earliest category in
// Categories() order. A prompt matching nothing is general.
func Detect(text string) Category {
	lower := strings.ToLower(text)

	scores := make(map[Category]int, len(categoryKeywords))
	for category, keywords := range categoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				scores[category]++
			}
		}
	}

	if scores[CategoryDebugging] > 0 && scores[CategoryCoding] > 0 {
		if scores[CategoryDebugging] >= scores[CategoryCoding] {
			return CategoryDebugging
		}
	}

	best := CategoryGeneral
	bestScore := 0
	for _, c := range Categories() {
		if scores[c] > bestScore {
			best = c
			bestScore = scores[c]
		}
	}
	return best
}
