package tracker

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
)

// NoActivitySentence is returned by SessionSummary for an empty log.
const NoActivitySentence = "You haven't performed any actions in this session yet."

// NoContentSentence is returned by ContentSummary for an empty store.
const NoContentSentence = "No policy documents have been analyzed in this session yet."

// detailPriority is the fixed order in which recognized detail keys are
// rendered for a single-occurrence action.
var detailPriority = []struct {
	key    string
	format string
}{
	{"document_name", " document '%v'"},
	{"query", " with the query '%v'"},
	{"legislator_name", " '%v'"},
	{"report_title", " titled '%v'"},
	{"zip_code", " for ZIP code %v"},
	{"result", " and received a %v"},
}

// exampleKeys is the preference order for picking an identifying value out of
// a record's details when aggregating repeated actions.
var exampleKeys = []string{"document_name", "legislator_name", "report_title"}

// SessionSummary renders the activity log as readable prose: one block per
// page, actions grouped within it, closed by the most active page and one
// suggestion based on which pages have been visited.
func SessionSummary(activities []ActivityRecord) string {
	if len(activities) == 0 {
		return NoActivitySentence
	}

	var pageOrder []string
	pageActivities := map[string][]ActivityRecord{}
	for _, a := range activities {
		if _, seen := pageActivities[a.Page]; !seen {
			pageOrder = append(pageOrder, a.Page)
		}
		pageActivities[a.Page] = append(pageActivities[a.Page], a)
	}

	earliest, latest := timeSpan(activities)

	var b strings.Builder
	fmt.Fprintf(&b, "Session Summary: You've performed %d actions between %s and %s.\n\n",
		len(activities), earliest, latest)

	for _, page := range pageOrder {
		acts := pageActivities[page]
		fmt.Fprintf(&b, "On the %s page, you performed %d actions.\n", page, len(acts))

		var actionOrder []string
		actionGroups := map[string][]ActivityRecord{}
		for _, a := range acts {
			if _, seen := actionGroups[a.Action]; !seen {
				actionOrder = append(actionOrder, a.Action)
			}
			actionGroups[a.Action] = append(actionGroups[a.Action], a)
		}

		for _, action := range actionOrder {
			group := actionGroups[action]
			if len(group) == 1 {
				b.WriteString(singleActionLine(group[0]))
			} else {
				b.WriteString(repeatedActionLine(action, group))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("You were most active on the %s page. ", mostActivePage(pageOrder, pageActivities)))

	if suggestion := pageSuggestion(pageActivities); suggestion != "" {
		b.WriteString(suggestion)
	}

	return b.String()
}

func singleActionLine(a ActivityRecord) string {
	line := fmt.Sprintf("- At %s, you %s", shortClock(a.Timestamp), a.Action)
	for _, d := range detailPriority {
		if v, ok := a.Details[d.key]; ok {
			line += fmt.Sprintf(d.format, v)
		}
	}
	return line + ".\n"
}

func repeatedActionLine(action string, group []ActivityRecord) string {
	first := shortClock(group[0].Timestamp)
	last := shortClock(group[len(group)-1].Timestamp)

	var examples []string
	for i, a := range group {
		if i >= 3 {
			break
		}
		for _, key := range exampleKeys {
			if v, ok := a.Details[key]; ok {
				examples = append(examples, fmt.Sprintf("'%v'", v))
				break
			}
		}
	}

	line := fmt.Sprintf("- Between %s and %s, you %s %d times", first, last, action, len(group))
	if len(examples) > 0 {
		joined := strings.Join(examples, ", ")
		if len(examples) < len(group) {
			joined += fmt.Sprintf(", and %d others", len(group)-len(examples))
		}
		line += " including " + joined
	}
	return line + ".\n"
}

// mostActivePage returns the page with the most records. Ties go to the page
// that appeared earliest in the log, which is deterministic because pageOrder
// preserves first-seen order.
func mostActivePage(pageOrder []string, pageActivities map[string][]ActivityRecord) string {
	best := pageOrder[0]
	for _, page := range pageOrder[1:] {
		if len(pageActivities[page]) > len(pageActivities[best]) {
			best = page
		}
	}
	return best
}

func pageSuggestion(pageActivities map[string][]ActivityRecord) string {
	visited := func(page string) bool {
		_, ok := pageActivities[page]
		return ok
	}
	switch {
	case visited("Impact Simulator") && !visited("Export Report"):
		return "You might want to export your impact simulation results using the Export Report page."
	case visited("Policy Decoder") && !visited("Compare Bills"):
		return "You might want to try comparing different policy documents using the Compare Bills page."
	case visited("Chat Memory") && !visited("Voice Summary"):
		return "You can create an audio summary of your chat session using the Voice Summary page."
	}
	return ""
}

// ContentSummary renders the content store grouped by content type (types
// ordered alphabetically, entries newest first), with summaries and analyses
// normalized for downstream speech synthesis.
func ContentSummary(content map[string]ContentEntry) string {
	if len(content) == 0 {
		return NoContentSentence
	}

	byType := map[string][]ContentEntry{}
	for _, entry := range content {
		byType[entry.Type] = append(byType[entry.Type], entry)
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	var b strings.Builder
	b.WriteString("Policy Content Summary:\n\n")

	for _, t := range types {
		entries := byType[t]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Timestamp > entries[j].Timestamp
		})

		fmt.Fprintf(&b, "%s Section\n\n", titleCase(t))
		for i, entry := range entries {
			fmt.Fprintf(&b, "Item %d. Analyzed at %s\n", i+1, shortClock(entry.Timestamp))
			if entry.Summary != "" {
				fmt.Fprintf(&b, "Summary: %s\n\n", ExpandAbbreviations(entry.Summary))
			}
			if entry.Analysis != "" {
				fmt.Fprintf(&b, "Analysis and Recommendations: %s\n\n", ExpandAbbreviations(entry.Analysis))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("General Recommendations Section\n\n")
	if _, ok := byType[ContentTypeComparison]; ok {
		b.WriteString("Based on the bill comparisons you've performed, consider focusing on the key differences in policy approaches and how they might impact implementation.\n\n")
	}
	if _, ok := byType[ContentTypeDocument]; ok {
		b.WriteString("For documents you've analyzed, consider exploring related legislation or research reports to gain a more comprehensive understanding of the policy landscape.\n\n")
	}
	if _, ok := byType[ContentTypeAnalysis]; ok {
		b.WriteString("The analyses you've reviewed suggest several avenues for further research, particularly regarding implementation feasibility and stakeholder impacts.\n\n")
	}

	return b.String()
}

// shortClock converts a stored timestamp into "03:04 PM". Unparseable
// timestamps fall back to the raw HH:MM slice so rendering never fails.
func shortClock(timestamp string) string {
	t, err := time.Parse(TimeLayout, timestamp)
	if err != nil {
		if len(timestamp) >= 16 {
			return timestamp[11:16]
		}
		return timestamp
	}
	return t.Format(clockLayout)
}

func timeSpan(activities []ActivityRecord) (earliest, latest string) {
	var min, max time.Time
	for _, a := range activities {
		t, err := time.Parse(TimeLayout, a.Timestamp)
		if err != nil {
			continue
		}
		if min.IsZero() || t.Before(min) {
			min = t
		}
		if max.IsZero() || t.After(max) {
			max = t
		}
	}
	if min.IsZero() {
		return "", ""
	}
	return min.Format(clockLayout), max.Format(clockLayout)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
