package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInputIsSingleChunk(t *testing.T) {
	chunks := SplitText("short text", 1500, 200)
	assert.Equal(t, []string{"short text"}, chunks)
}

func TestSplitTextChunkBoundsAndOverlap(t *testing.T) {
	text := strings.Repeat("a", 3000)
	chunks := SplitText(text, 1500, 200)

	assert.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 1500)
	}
	// Step is chunkSize-overlap, so the second chunk starts at 1300 and
	// repeats the last 200 runes of the first.
	assert.Equal(t, chunks[0][1300:], chunks[1][:200])
}

func TestSplitTextOverlapLargerThanChunkFallsBack(t *testing.T) {
	text := strings.Repeat("b", 50)
	chunks := SplitText(text, 10, 10)

	assert.Len(t, chunks, 5)
	assert.Equal(t, text, strings.Join(chunks, ""))
}
