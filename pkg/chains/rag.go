package chains

import (
	"context"
	"fmt"
	"strings"

	"policy-compass-be/pkg/llm"
)

// Retriever yields the chunks most relevant to a query. Implemented by the
// pgvector chunk repository; a leading-chunk retriever stands in when a
// document has no embeddings yet.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]string, error)
}

// StaticRetriever serves fixed chunks regardless of the query. Used as the
// leading-chunk fallback for documents without embeddings.
type StaticRetriever struct {
	Chunks []string
}

func (s *StaticRetriever) Retrieve(_ context.Context, _ string, topK int) ([]string, error) {
	if topK > len(s.Chunks) {
		topK = len(s.Chunks)
	}
	return s.Chunks[:topK], nil
}

const qaPromptTemplate = `You are a policy analyst helping a citizen understand a policy document.
Answer the question using only the context below. If the context does not
contain the answer, say you don't have enough information.

Context:
%s

Question: %s

Answer:`

const focusedPromptTemplate = `You are a policy analyst. The context below comes from a policy document.
Extract every detail relevant to the question, even partial ones, and
summarize what the document does say about it.

Context:
%s

Question: %s

Answer:`

const eli5Suffix = "\n\nExplain your answer like I'm five years old, using simple words and short sentences."

// QAChain answers questions over a single document with retrieval.
type QAChain struct {
	Provider llm.LLMProvider
	TopK     int
}

func NewQAChain(provider llm.LLMProvider) *QAChain {
	return &QAChain{Provider: provider, TopK: 4}
}

// Answer retrieves context for the question and asks the model. An
// uninformative first answer triggers one focused retry. If the model is
// unreachable the best available excerpt is returned instead of an error
// so the page always has something to show.
func (c *QAChain) Answer(ctx context.Context, retriever Retriever, question string, eli5 bool, opts ...llm.Option) (string, error) {
	chunks, err := retriever.Retrieve(ctx, question, c.TopK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}
	if len(chunks) == 0 {
		return "I don't have enough information to answer that from this document.", nil
	}

	contextText := strings.Join(chunks, "\n\n---\n\n")

	prompt := fmt.Sprintf(qaPromptTemplate, contextText, question)
	if eli5 {
		prompt += eli5Suffix
	}

	answer, err := c.Provider.Generate(ctx, prompt, opts...)
	if err != nil {
		return excerptFallback(contextText), nil
	}

	if LooksUninformative(answer) {
		focused := fmt.Sprintf(focusedPromptTemplate, contextText, question)
		if eli5 {
			focused += eli5Suffix
		}
		retry, retryErr := c.Provider.Generate(ctx, focused, opts...)
		if retryErr == nil && !LooksUninformative(retry) {
			return retry, nil
		}
	}

	return answer, nil
}

func excerptFallback(contextText string) string {
	excerpt := contextText
	if len(excerpt) > 1200 {
		excerpt = excerpt[:1200] + "..."
	}
	return "The analysis service is currently unavailable. Here is the most relevant excerpt from the document:\n\n" + excerpt
}
