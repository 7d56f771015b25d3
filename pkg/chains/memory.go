package chains

import (
	"context"
	"fmt"
	"strings"

	"policy-compass-be/pkg/llm"
)

// ReadingLevel adjusts how the chat chain phrases its answers.
type ReadingLevel string

const (
	ReadingLevelSimple   ReadingLevel = "simple"
	ReadingLevelStandard ReadingLevel = "standard"
	ReadingLevelExpert   ReadingLevel = "expert"
)

func (r ReadingLevel) instruction() string {
	switch r {
	case ReadingLevelSimple:
		return "Answer in plain language a middle schooler could follow."
	case ReadingLevelExpert:
		return "Answer with full technical and legislative detail."
	default:
		return "Answer clearly for a general adult audience."
	}
}

const chatSystemTemplate = `You are a policy assistant chatting with a citizen about policy documents
they have analyzed this session. Use the document context when relevant and
stay consistent with the earlier conversation. %s

Document context:
%s`

// ChatChain is a conversational chain with a history buffer and retrieval.
type ChatChain struct {
	Provider   llm.LLMProvider
	TopK       int
	MaxHistory int
}

func NewChatChain(provider llm.LLMProvider) *ChatChain {
	return &ChatChain{Provider: provider, TopK: 3, MaxHistory: 10}
}

// Reply answers the user's message given the running history. History is
// trimmed to the most recent MaxHistory turns before the call.
func (c *ChatChain) Reply(ctx context.Context, retriever Retriever, history []llm.Message, message string, level ReadingLevel, opts ...llm.Option) (string, error) {
	var contextText string
	if retriever != nil {
		chunks, err := retriever.Retrieve(ctx, message, c.TopK)
		if err == nil && len(chunks) > 0 {
			contextText = strings.Join(chunks, "\n\n---\n\n")
		}
	}
	if contextText == "" {
		contextText = "(no documents analyzed yet)"
	}

	if len(history) > c.MaxHistory {
		history = history[len(history)-c.MaxHistory:]
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: fmt.Sprintf(chatSystemTemplate, level.instruction(), contextText),
	})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: message})

	answer, err := c.Provider.Chat(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("chat reply: %w", err)
	}
	return answer, nil
}
