package factory

import (
	"fmt"

	"policy-compass-be/pkg/llm"
	"policy-compass-be/pkg/llm/anthropic"
	"policy-compass-be/pkg/llm/ollama"
	"policy-compass-be/pkg/llm/openai"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		return openai.NewOpenAIProvider(apiKey, modelName), nil
	case "anthropic":
		return anthropic.NewAnthropicProvider(apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
