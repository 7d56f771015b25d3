package service

import (
	"context"

	"policy-compass-be/internal/dto"
	"policy-compass-be/pkg/legislator"
)

type ILegislatorService interface {
	Lookup(ctx context.Context, sessionID string, req *dto.LookupRequest) (*dto.LookupResponse, error)
}

type legislatorService struct {
	trackerService ITrackerService
	defaultKey     string
}

func NewLegislatorService(trackerService ITrackerService, defaultKey string) ILegislatorService {
	return &legislatorService{
		trackerService: trackerService,
		defaultKey:     defaultKey,
	}
}

func (s *legislatorService) Lookup(ctx context.Context, sessionID string, req *dto.LookupRequest) (*dto.LookupResponse, error) {
	apiKey := s.trackerService.APIKey(sessionID, "propublica", s.defaultKey)

	// The client builds a fresh instance per request because the key can
	// change per session.
	client := legislator.NewClient(apiKey)
	profile := client.LookupByName(ctx, req.Name)

	s.trackerService.Track(ctx, sessionID, "looked up", "Legislator Lookup", map[string]interface{}{
		"legislator_name": req.Name,
	})

	return &dto.LookupResponse{
		Found:   profile != nil,
		Profile: profile,
	}, nil
}
