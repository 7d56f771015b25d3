package tracker

import "time"

// TimeLayout is the timestamp format used in records and in the JSON mirrors.
// Second precision, matching the on-disk contract.
const TimeLayout = "2006-01-02 15:04:05"

// clockLayout is the human-readable clock format used by the summary renderers.
const clockLayout = "03:04 PM"

// ActivityRecord is a single tracked user action. Records are append-only:
// created once, never mutated, removed only by a bulk clear.
type ActivityRecord struct {
	Timestamp string         `json:"timestamp"`
	Action    string         `json:"action"`
	Page      string         `json:"page"`
	Details   map[string]any `json:"details"`
}

// NewActivityRecord stamps a record with the current time.
func NewActivityRecord(action, page string, details map[string]any) ActivityRecord {
	if details == nil {
		details = map[string]any{}
	}
	return ActivityRecord{
		Timestamp: time.Now().Format(TimeLayout),
		Action:    action,
		Page:      page,
		Details:   details,
	}
}

// ContentEntry holds the text produced by one feature interaction, keyed in
// the content store by a feature-prefixed doc id (e.g. "decoder:billA.pdf").
// Writing an existing doc id overwrites the entry: last write wins.
type ContentEntry struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Summary   string `json:"summary"`
	Analysis  string `json:"analysis"`
	Timestamp string `json:"timestamp"`
}

// NewContentEntry stamps an entry with the current time.
func NewContentEntry(contentType, content, summary, analysis string) ContentEntry {
	return ContentEntry{
		Type:      contentType,
		Content:   content,
		Summary:   summary,
		Analysis:  analysis,
		Timestamp: time.Now().Format(TimeLayout),
	}
}

// Known content types. The store accepts any string; these are the ones the
// renderers key recommendations on.
const (
	ContentTypeDocument   = "document"
	ContentTypeComparison = "comparison"
	ContentTypeImpact     = "impact"
	ContentTypeEnsemble   = "ensemble"
	ContentTypeAnalysis   = "analysis"
)
