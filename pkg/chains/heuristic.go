package chains

import "strings"

var uninformativePhrases = []string{
	"don't have enough information",
	"don't know",
	"cannot determine",
	"not enough context",
	"cannot find",
}

var genericPhrases = []string{
	"i apologize",
	"error occurred",
	"cannot provide",
	"unable to process",
}

// LooksUninformative reports whether a model answer admits it could not
// answer from the provided context.
func LooksUninformative(text string) bool {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return true
	}
	for _, phrase := range uninformativePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// LooksGeneric reports whether a model answer is a boilerplate refusal
// or error apology rather than a real synthesis.
func LooksGeneric(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range genericPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
