package tracker

import (
	"regexp"
	"strings"
)

// literalAbbreviations are replaced verbatim, in order. Longer forms sit
// before their prefixes ("U.S.A." before "U.S.", "w/o" before "w/") so the
// longer match always wins.
var literalAbbreviations = []struct{ abbr, full string }{
	{"U.S.A.", "United States of America"},
	{"U.S.", "United States"},
	{"U.K.", "United Kingdom"},
	{"e.g.", "for example"},
	{"i.e.", "that is"},
	{"etc.", "etcetera"},
	{"approx.", "approximately"},
	{"vs.", "versus"},
	{"w/o", "without"},
	{"w/", "with"},
	{"govt.", "government"},
	{"admin.", "administration"},
	{"%", "percent"},
	{"&", "and"},
	{"$", "dollars"},
	{"#", "number"},
}

// wordAbbreviations need a word boundary so "admin" does not fire inside
// "administration".
var wordAbbreviations = []struct {
	re   *regexp.Regexp
	full string
}{
	{regexp.MustCompile(`\bvs\b`), "versus"},
	{regexp.MustCompile(`\bgovt\b`), "government"},
	{regexp.MustCompile(`\badmin\b`), "administration"},
	{regexp.MustCompile(`\bZIP\b`), "zip code"},
}

// parenAcronymRe matches a parenthesized all-caps acronym of 2+ letters,
// the common "Affordable Care Act (ACA)" pattern.
var parenAcronymRe = regexp.MustCompile(`\(([A-Z]{2,})\)`)

// ExpandAbbreviations rewrites common abbreviations into full words and tags
// parenthesized acronyms so text-to-speech reads them naturally:
// "Affordable Care Act (ACA)" becomes "Affordable Care Act (acronym ACA)".
func ExpandAbbreviations(text string) string {
	for _, r := range literalAbbreviations {
		text = strings.ReplaceAll(text, r.abbr, r.full)
	}
	for _, r := range wordAbbreviations {
		text = r.re.ReplaceAllString(text, r.full)
	}
	return parenAcronymRe.ReplaceAllString(text, "(acronym $1)")
}

// speechExceptions are acronyms commonly pronounced as words; they are left
// intact by CleanForSpeech instead of being spelled out letter by letter.
var speechExceptions = map[string]bool{
	"NASA":  true,
	"COVID": true,
	"AIDS":  true,
	"NATO":  true,
}

var (
	filenameRe      = regexp.MustCompile(`(?i)\b[\w-]+\.(pdf|docx?|txt|csv|xlsx?|md)\b`)
	bareExtensionRe = regexp.MustCompile(`(?i)\.(pdf|docx?|txt|csv|xlsx?|md)\b`)
	standaloneAcrRe = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	markdownCharRe  = regexp.MustCompile(`[#*|]`)
	bulletRe        = regexp.MustCompile(`(?m)^\s*-\s+`)
	multiSpaceRe    = regexp.MustCompile(`[ \t]{2,}`)
)

// CleanForSpeech applies the stricter normalization used right before text is
// handed to the speech synthesizer: markdown punctuation is stripped,
// filename tokens are removed so the engine never reads raw filenames, bare
// file-extension mentions become spoken words, remaining all-caps acronyms
// are re-spaced into individually pronounced letters (minus the exception
// list), and every line gains terminal punctuation.
func CleanForSpeech(text string) string {
	text = bulletRe.ReplaceAllString(text, "")
	text = markdownCharRe.ReplaceAllString(text, "")
	text = filenameRe.ReplaceAllString(text, "")
	text = bareExtensionRe.ReplaceAllStringFunc(text, func(m string) string {
		return " " + strings.ToUpper(strings.TrimPrefix(m, ".")) + " file"
	})
	text = standaloneAcrRe.ReplaceAllStringFunc(text, func(acr string) string {
		if speechExceptions[acr] {
			return acr
		}
		return strings.Join(strings.Split(acr, ""), " ")
	})
	text = multiSpaceRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " ")
		if trimmed == "" {
			lines[i] = trimmed
			continue
		}
		switch trimmed[len(trimmed)-1] {
		case '.', '!', '?', ':':
		default:
			trimmed += "."
		}
		lines[i] = trimmed
	}
	return strings.Join(lines, "\n")
}
