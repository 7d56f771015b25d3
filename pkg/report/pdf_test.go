package report

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFlatReport(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	require.NoError(t, err)

	path, err := gen.Generate("Session Report", "Some analysis text.")
	require.NoError(t, err)
	require.NotEmpty(t, path)
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerateSectionsWithMetadata(t *testing.T) {
	gen, err := NewGenerator(t.TempDir())
	require.NoError(t, err)

	path, err := gen.GenerateSections("Impact Report", []Section{
		{Title: "Healthcare", Body: "Coverage expands."},
		{Title: "Housing", Body: "No direct effect."},
	}, map[string]string{"session": "abc", "generated": "2026-08-30"})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "session_report", slugify("Session Report!"))
	assert.Equal(t, "report", slugify("???"))
}
