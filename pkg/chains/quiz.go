package chains

import (
	"context"
	"encoding/json"
	"strings"

	"policy-compass-be/pkg/llm"
)

// QuizQuestion is one multiple-choice question generated from a document.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

const quizPromptTemplate = `Generate exactly 3 multiple-choice questions testing understanding of the
policy excerpt below. Respond with ONLY a JSON array, no prose, in this shape:
[{"question": "...", "options": ["A) ...", "B) ...", "C) ...", "D) ..."], "answer": "A", "explanation": "..."}]

Excerpt:
`

// QuizChain turns a document excerpt into a short comprehension quiz.
type QuizChain struct {
	Provider llm.LLMProvider
}

func NewQuizChain(provider llm.LLMProvider) *QuizChain {
	return &QuizChain{Provider: provider}
}

// Generate asks the model for quiz JSON and parses it. Unparseable output
// returns nil questions with no error so the caller can show a retry
// message instead of a stack trace.
func (c *QuizChain) Generate(ctx context.Context, excerpt string, opts ...llm.Option) ([]QuizQuestion, error) {
	prompt := quizPromptTemplate + truncate(excerpt, 4000)

	raw, err := c.Provider.Generate(ctx, prompt, opts...)
	if err != nil {
		return nil, err
	}

	questions := parseQuizJSON(raw)
	return questions, nil
}

// parseQuizJSON tolerates markdown fences and leading prose around the
// array. Anything that still fails to parse yields nil.
func parseQuizJSON(raw string) []QuizQuestion {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil
	}

	var questions []QuizQuestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &questions); err != nil {
		return nil
	}
	if len(questions) == 0 {
		return nil
	}
	return questions
}
