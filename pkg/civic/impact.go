package civic

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// Profile describes the citizen running the simulation.
type Profile struct {
	ZipCode       string `json:"zip_code"`
	HouseholdSize int    `json:"household_size"`
	Income        int    `json:"income"`
	Occupation    string `json:"occupation"`
	Insurance     string `json:"insurance"`
	Housing       string `json:"housing"`
}

// Impact is the simulated effect of a policy document on a profile.
type Impact struct {
	Scores          map[string]int    `json:"scores"`
	Details         map[string]string `json:"details"`
	Summary         string            `json:"summary"`
	Recommendations []string          `json:"recommendations"`
}

var categoryKeywords = map[string][]string{
	"Healthcare": {"health", "insurance", "medicare", "medicaid", "premium", "coverage", "hospital", "prescription"},
	"Education":  {"education", "school", "student", "tuition", "teacher", "loan", "scholarship", "college"},
	"Employment": {"employment", "job", "wage", "worker", "labor", "salary", "unemployment", "overtime"},
	"Housing":    {"housing", "rent", "mortgage", "tenant", "landlord", "eviction", "zoning", "homeless"},
}

// Categories in a fixed presentation order.
var Categories = []string{"Healthcare", "Education", "Employment", "Housing"}

// SimulateImpact scores the document against each category for the given
// profile. The calculation is keyword counting plus profile modifiers and
// a small profile-derived offset, so the same inputs always give the same
// scores.
func SimulateImpact(profile Profile, documentText string) *Impact {
	lower := strings.ToLower(documentText)

	scores := make(map[string]int, len(Categories))
	details := make(map[string]string, len(Categories))

	for _, category := range Categories {
		hits := 0
		for _, kw := range categoryKeywords[category] {
			hits += strings.Count(lower, kw)
		}

		score := hits * 7
		if score > 70 {
			score = 70
		}
		score += profileModifier(category, profile)
		score += int(profileOffset(profile, category) % 5)
		if score > 100 {
			score = 100
		}
		if score < 0 {
			score = 0
		}

		scores[category] = score
		details[category] = categoryDetail(category, score, hits, profile)
	}

	return &Impact{
		Scores:          scores,
		Details:         details,
		Summary:         buildSummary(scores, profile),
		Recommendations: buildRecommendations(scores, profile),
	}
}

func profileModifier(category string, p Profile) int {
	mod := 0
	switch category {
	case "Healthcare":
		if strings.EqualFold(p.Insurance, "none") || strings.EqualFold(p.Insurance, "uninsured") {
			mod += 15
		}
		if p.HouseholdSize >= 4 {
			mod += 5
		}
	case "Education":
		if strings.Contains(strings.ToLower(p.Occupation), "student") || strings.Contains(strings.ToLower(p.Occupation), "teacher") {
			mod += 15
		}
	case "Employment":
		if p.Income > 0 && p.Income < 40000 {
			mod += 10
		}
	case "Housing":
		if strings.EqualFold(p.Housing, "rent") || strings.EqualFold(p.Housing, "renting") {
			mod += 10
		}
	}
	return mod
}

// profileOffset derives a stable small offset from the profile so two
// different households see slightly different numbers for the same bill.
func profileOffset(p Profile, category string) uint32 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%d|%d|%s", p.ZipCode, p.HouseholdSize, p.Income, category)
	return h.Sum32()
}

func categoryDetail(category string, score, hits int, p Profile) string {
	level := "minimal"
	switch {
	case score >= 60:
		level = "significant"
	case score >= 30:
		level = "moderate"
	}
	return fmt.Sprintf("This policy has %s relevance to %s for your household (%d related provisions found).",
		level, strings.ToLower(category), hits)
}

func buildSummary(scores map[string]int, p Profile) string {
	top := Categories[0]
	for _, c := range Categories[1:] {
		if scores[c] > scores[top] {
			top = c
		}
	}

	location := ""
	if p.ZipCode != "" {
		location = fmt.Sprintf(" in ZIP code %s", p.ZipCode)
	}
	return fmt.Sprintf("For a household of %d%s, this policy's largest effect is on %s (score %d of 100).",
		maxInt(p.HouseholdSize, 1), location, top, scores[top])
}

func buildRecommendations(scores map[string]int, p Profile) []string {
	type scored struct {
		category string
		score    int
	}
	ranked := make([]scored, 0, len(Categories))
	for _, c := range Categories {
		ranked = append(ranked, scored{c, scores[c]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	var recs []string
	for _, r := range ranked {
		if r.score < 30 {
			continue
		}
		switch r.category {
		case "Healthcare":
			recs = append(recs, "Review how the coverage provisions interact with your current insurance before enrollment periods close.")
		case "Education":
			recs = append(recs, "Check eligibility windows for any education funding or loan provisions.")
		case "Employment":
			recs = append(recs, "Compare the wage and labor provisions against your current employment terms.")
		case "Housing":
			recs = append(recs, "Look up whether the housing provisions apply to your county or municipality.")
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "This policy has limited direct effect on your household; no action needed.")
	}
	return recs
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
