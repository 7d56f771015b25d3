package service

import (
	"context"

	"policy-compass-be/internal/dto"
)

type ISettingsService interface {
	Update(ctx context.Context, sessionID string, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	Show(ctx context.Context, sessionID string) (*dto.SettingsResponse, error)
}

type settingsService struct {
	trackerService ITrackerService
}

func NewSettingsService(trackerService ITrackerService) ISettingsService {
	return &settingsService{trackerService: trackerService}
}

func (s *settingsService) Update(_ context.Context, sessionID string, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	session := s.trackerService.Session(sessionID)

	session.Lock()
	if req.OpenAIKey != "" {
		session.APIKeys["openai"] = req.OpenAIKey
	}
	if req.AnthropicKey != "" {
		session.APIKeys["anthropic"] = req.AnthropicKey
	}
	if req.ProPublicaKey != "" {
		session.APIKeys["propublica"] = req.ProPublicaKey
	}
	if req.TTSKey != "" {
		session.APIKeys["tts"] = req.TTSKey
	}
	session.Unlock()

	return s.overrides(sessionID), nil
}

func (s *settingsService) Show(_ context.Context, sessionID string) (*dto.SettingsResponse, error) {
	return s.overrides(sessionID), nil
}

// The raw keys never leave the server; clients only learn which
// overrides exist.
func (s *settingsService) overrides(sessionID string) *dto.SettingsResponse {
	session := s.trackerService.Session(sessionID)

	session.Lock()
	defer session.Unlock()

	overrides := make(map[string]bool, 4)
	for _, name := range []string{"openai", "anthropic", "propublica", "tts"} {
		overrides[name] = session.APIKeys[name] != ""
	}
	return &dto.SettingsResponse{Overrides: overrides}
}
