package service

import (
	"context"
	"errors"
	"fmt"

	"policy-compass-be/internal/dto"
	"policy-compass-be/pkg/speech"
	"policy-compass-be/pkg/tracker"
)

// Inline user-facing messages for the voice page. Credential and rate
// limit failures must be distinguishable.
var (
	ErrVoiceCredentials = errors.New("text-to-speech credentials are missing or invalid, check your settings")
	ErrVoiceRateLimit   = errors.New("text-to-speech service is rate limited, wait a moment and retry")
)

type IVoiceService interface {
	Synthesize(ctx context.Context, sessionID string, req *dto.VoiceRequest) ([]byte, error)
}

type voiceService struct {
	trackerService ITrackerService
	defaultKey     string
}

func NewVoiceService(trackerService ITrackerService, defaultKey string) IVoiceService {
	return &voiceService{
		trackerService: trackerService,
		defaultKey:     defaultKey,
	}
}

func (s *voiceService) Synthesize(ctx context.Context, sessionID string, req *dto.VoiceRequest) ([]byte, error) {
	text := req.Text
	if req.UseContentSummary || text == "" {
		text = s.trackerService.ContentSummary(sessionID)
	}

	// Abbreviation expansion happens in ContentSummary; pasted text still
	// needs the full speech normalization pass.
	text = tracker.CleanForSpeech(tracker.ExpandAbbreviations(text))
	if text == "" {
		return nil, fmt.Errorf("nothing to read aloud")
	}

	apiKey := s.trackerService.APIKey(sessionID, "tts", s.defaultKey)
	client := speech.NewClient(apiKey)

	audio, err := client.Synthesize(ctx, text, speech.SynthesizeOptions{
		VoiceID: req.VoiceId,
		SSML:    req.SSML,
	})
	if err != nil {
		switch {
		case errors.Is(err, speech.ErrBadCredentials):
			return nil, ErrVoiceCredentials
		case errors.Is(err, speech.ErrRateLimited):
			return nil, ErrVoiceRateLimit
		default:
			return nil, fmt.Errorf("speech synthesis failed, please try again")
		}
	}

	s.trackerService.Track(ctx, sessionID, "generated audio for", "Voice Summary", map[string]interface{}{
		"result": truncateDetail(text, 100),
	})

	return audio, nil
}
