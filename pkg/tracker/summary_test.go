package tracker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func record(ts, action, page string, details map[string]any) ActivityRecord {
	if details == nil {
		details = map[string]any{}
	}
	return ActivityRecord{Timestamp: ts, Action: action, Page: page, Details: details}
}

func TestSessionSummaryEmpty(t *testing.T) {
	assert.Equal(t, NoActivitySentence, SessionSummary(nil))
	assert.Equal(t, NoActivitySentence, SessionSummary([]ActivityRecord{}))
}

func TestSessionSummaryDecoderScenario(t *testing.T) {
	activities := []ActivityRecord{
		record("2026-08-30 14:05:00", "analyzed", "Policy Decoder", map[string]any{
			"document_name": "billA.pdf",
			"query":         "What does section 2 do?",
		}),
	}

	got := SessionSummary(activities)

	for _, want := range []string{"Policy Decoder", "analyzed", "billA.pdf", "What does section 2 do?"} {
		assert.Contains(t, got, want)
	}
	assert.Contains(t, got, "1 actions")
}

func TestSessionSummaryAggregatesRepeatedActions(t *testing.T) {
	activities := []ActivityRecord{
		record("2026-08-30 09:00:00", "analyzed", "Policy Decoder", map[string]any{"document_name": "a.pdf"}),
		record("2026-08-30 09:10:00", "analyzed", "Policy Decoder", map[string]any{"document_name": "b.pdf"}),
		record("2026-08-30 09:20:00", "analyzed", "Policy Decoder", map[string]any{"document_name": "c.pdf"}),
		record("2026-08-30 09:30:00", "analyzed", "Policy Decoder", map[string]any{"document_name": "d.pdf"}),
	}

	got := SessionSummary(activities)

	assert.Contains(t, got, "you analyzed 4 times")
	assert.Contains(t, got, "'a.pdf', 'b.pdf', 'c.pdf'")
	assert.Contains(t, got, "and 1 others")
	assert.NotContains(t, got, "d.pdf")
}

func TestSessionSummaryMostActivePageTieBreak(t *testing.T) {
	// Equal counts: the page seen first in the log wins.
	activities := []ActivityRecord{
		record("2026-08-30 09:00:00", "compared", "Compare Bills", nil),
		record("2026-08-30 09:05:00", "generated quiz", "Civic Quiz", nil),
	}

	got := SessionSummary(activities)
	assert.Contains(t, got, "You were most active on the Compare Bills page.")
}

func TestSessionSummarySuggestionPriority(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{
			name:  "simulator without export",
			pages: []string{"Impact Simulator", "Policy Decoder"},
			want:  "Export Report page",
		},
		{
			name:  "decoder without compare",
			pages: []string{"Policy Decoder"},
			want:  "Compare Bills page",
		},
		{
			name:  "chat without voice",
			pages: []string{"Chat Memory"},
			want:  "Voice Summary page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var activities []ActivityRecord
			for _, page := range tt.pages {
				activities = append(activities, record("2026-08-30 10:00:00", "visited", page, nil))
			}
			got := SessionSummary(activities)
			if !strings.Contains(got, tt.want) {
				t.Errorf("summary %q missing suggestion %q", got, tt.want)
			}
		})
	}
}

func TestContentSummaryEmpty(t *testing.T) {
	assert.Equal(t, NoContentSentence, ContentSummary(nil))
	assert.Equal(t, NoContentSentence, ContentSummary(map[string]ContentEntry{}))
}

func TestContentSummaryGrouping(t *testing.T) {
	content := map[string]ContentEntry{
		"decoder:a.pdf": {
			Type: ContentTypeDocument, Content: "...", Summary: "First summary",
			Timestamp: "2026-08-30 09:00:00",
		},
		"decoder:b.pdf": {
			Type: ContentTypeDocument, Content: "...", Summary: "Second summary",
			Timestamp: "2026-08-30 10:00:00",
		},
		"compare:a_vs_b": {
			Type: ContentTypeComparison, Content: "...", Summary: "Comparison summary",
			Timestamp: "2026-08-30 11:00:00",
		},
	}

	got := ContentSummary(content)

	assert.Contains(t, got, "Document Section")
	assert.Contains(t, got, "Comparison Section")
	// Two document items, newest first.
	assert.Equal(t, 2, strings.Count(got[strings.Index(got, "Document Section"):strings.Index(got, "General Recommendations")], "Item "),
		"expected exactly two rendered items outside the comparison group")
	assert.Less(t, strings.Index(got, "Second summary"), strings.Index(got, "First summary"),
		"newest entry should render first")
	// Recommendations gated on present types.
	assert.Contains(t, got, "bill comparisons")
	assert.Contains(t, got, "documents you've analyzed")
	assert.NotContains(t, got, "analyses you've reviewed")
}

func TestContentSummaryNormalizesForSpeech(t *testing.T) {
	content := map[string]ContentEntry{
		"decoder:aca.pdf": {
			Type: ContentTypeDocument, Content: "...",
			Summary:   "The Affordable Care Act (ACA) vs. prior law",
			Timestamp: "2026-08-30 09:00:00",
		},
	}

	got := ContentSummary(content)
	assert.Contains(t, got, "(acronym ACA)")
	assert.Contains(t, got, "versus")
}
