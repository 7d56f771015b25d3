package utils

// SplitText splits a long string into chunks of roughly chunkSize runes,
// keeping an overlap between neighbors so context survives the boundary.
// Character-based on purpose: strict slicing never loses data, a
// tokenizer-aware splitter could be swapped in later.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	runes := []rune(text)
	total := len(runes)

	var chunks []string
	for i := 0; i < total; i += step {
		end := i + chunkSize
		if end > total {
			end = total
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == total {
			break
		}
	}

	return chunks
}
