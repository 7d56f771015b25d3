package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"policy-compass-be/pkg/llm"
)

type AnthropicProvider struct {
	APIKey    string
	ModelName string
	BaseURL   string
	Client    *http.Client
}

// Ensure AnthropicProvider implements LLMProvider
var _ llm.LLMProvider = &AnthropicProvider{}

func NewAnthropicProvider(apiKey, modelName string) *AnthropicProvider {
	if modelName == "" {
		modelName = "claude-3-5-sonnet-20241022"
	}
	return &AnthropicProvider{
		APIKey:    apiKey,
		ModelName: modelName,
		BaseURL:   "https://api.anthropic.com/v1",
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type messagesRequest struct {
	Model       string           `json:"model"`
	MaxTokens   int              `json:"max_tokens"`
	System      string           `json:"system,omitempty"`
	Messages    []promptMessage  `json:"messages"`
	Temperature *float64         `json:"temperature,omitempty"`
}

type promptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *AnthropicProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(llm.Options{Temperature: 0.3, MaxTokens: 1024}, opts)

	apiKey := p.APIKey
	if options.APIKey != "" {
		apiKey = options.APIKey
	}
	if apiKey == "" {
		return "", fmt.Errorf("anthropic: missing API key")
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	// The messages API takes system prompts as a top-level field,
	// not as a message role.
	var system string
	messages := make([]promptMessage, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		if role == "system" {
			system = msg.Content
			continue
		}
		if role == "model" {
			role = "assistant"
		}
		messages = append(messages, promptMessage{Role: role, Content: msg.Content})
	}

	reqPayload := messagesRequest{
		Model:       model,
		MaxTokens:   options.MaxTokens,
		System:      system,
		Messages:    messages,
		Temperature: &options.Temperature,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.BaseURL+"/messages", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(bodyBytes, &msgResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if msgResp.Error != nil {
		return "", fmt.Errorf("anthropic error: %s", msgResp.Error.Message)
	}

	var out strings.Builder
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("anthropic returned no text content")
	}

	return out.String(), nil
}

func (p *AnthropicProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
