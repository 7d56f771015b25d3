package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sentinel errors so the voice page can show a specific inline message.
var (
	ErrBadCredentials = errors.New("elevenlabs: invalid API key")
	ErrRateLimited    = errors.New("elevenlabs: rate limited, try again shortly")
)

const defaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

// Client calls the ElevenLabs text-to-speech API.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: "https://api.elevenlabs.io/v1",
		HTTP: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type SynthesizeOptions struct {
	VoiceID string
	SSML    bool
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize turns text into MP3 audio bytes. 401 and 429 map to the
// sentinel errors above; everything else is a generic failure.
func (c *Client) Synthesize(ctx context.Context, text string, opts SynthesizeOptions) ([]byte, error) {
	if c.APIKey == "" {
		return nil, ErrBadCredentials
	}

	voiceID := opts.VoiceID
	if voiceID == "" {
		voiceID = defaultVoiceID
	}

	if opts.SSML {
		text = "<speak>" + text + "</speak>"
	}

	payload, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: "eleven_monolingual_v1",
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.BaseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.APIKey)
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrBadCredentials
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("elevenlabs error: status %d, body: %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return audio, nil
}
