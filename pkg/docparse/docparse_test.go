package docparse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPDFEmptyInput(t *testing.T) {
	chunks := ExtractPDF(bytes.NewReader(nil), 0)
	assert.Empty(t, chunks)
}

func TestExtractPDFGarbageYieldsErrorChunk(t *testing.T) {
	data := []byte("this is not a pdf at all")
	chunks := ExtractPDF(bytes.NewReader(data), int64(len(data)))

	assert.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "Unable to extract text")
}

func TestFromText(t *testing.T) {
	assert.Empty(t, FromText("   \n  "))
	assert.Equal(t, []string{"Section 1. Coverage."}, FromText("  Section 1. Coverage.  "))
}
