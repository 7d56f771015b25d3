package civic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateImpactDeterministic(t *testing.T) {
	profile := Profile{ZipCode: "60601", HouseholdSize: 3, Income: 55000, Occupation: "nurse", Insurance: "employer", Housing: "rent"}
	doc := "This act expands health insurance coverage and lowers premium costs for hospital care."

	first := SimulateImpact(profile, doc)
	second := SimulateImpact(profile, doc)

	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestSimulateImpactHealthcareKeywordsScoreHighest(t *testing.T) {
	profile := Profile{ZipCode: "60601", HouseholdSize: 2, Insurance: "none"}
	doc := "Health insurance premium coverage medicare medicaid prescription hospital health coverage."

	impact := SimulateImpact(profile, doc)

	require.Contains(t, impact.Scores, "Healthcare")
	for _, other := range []string{"Education", "Employment", "Housing"} {
		assert.Greater(t, impact.Scores["Healthcare"], impact.Scores[other])
	}
	assert.Contains(t, impact.Summary, "Healthcare")
}

func TestSimulateImpactScoresBounded(t *testing.T) {
	impact := SimulateImpact(Profile{HouseholdSize: 6, Insurance: "none"}, "irrelevant text about weather")
	for _, category := range Categories {
		score := impact.Scores[category]
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestSimulateImpactLowScoresGetDefaultRecommendation(t *testing.T) {
	impact := SimulateImpact(Profile{HouseholdSize: 1, Income: 90000}, "a bill about naming a post office")
	require.Len(t, impact.Recommendations, 1)
	assert.Contains(t, impact.Recommendations[0], "limited direct effect")
}
