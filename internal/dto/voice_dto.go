package dto

type VoiceRequest struct {
	Text              string `json:"text"`
	UseContentSummary bool   `json:"use_content_summary"`
	VoiceId           string `json:"voice_id"`
	SSML              bool   `json:"ssml"`
}
