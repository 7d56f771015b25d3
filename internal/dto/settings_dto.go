package dto

// UpdateSettingsRequest carries per-session API key overrides. Empty
// fields leave the existing override untouched.
type UpdateSettingsRequest struct {
	OpenAIKey     string `json:"openai_key"`
	AnthropicKey  string `json:"anthropic_key"`
	ProPublicaKey string `json:"propublica_key"`
	TTSKey        string `json:"tts_key"`
}

type SettingsResponse struct {
	Overrides map[string]bool `json:"overrides"` // key name -> override present
}
