package service

import (
	"context"
	"fmt"
	"strings"

	"policy-compass-be/internal/dto"
	"policy-compass-be/pkg/civic"
	"policy-compass-be/pkg/tracker"
)

type ISimulatorService interface {
	Simulate(ctx context.Context, sessionID string, req *dto.SimulateRequest) (*dto.SimulateResponse, error)
}

type simulatorService struct {
	documentService IDocumentService
	trackerService  ITrackerService
}

func NewSimulatorService(documentService IDocumentService, trackerService ITrackerService) ISimulatorService {
	return &simulatorService{
		documentService: documentService,
		trackerService:  trackerService,
	}
}

func (s *simulatorService) Simulate(ctx context.Context, sessionID string, req *dto.SimulateRequest) (*dto.SimulateResponse, error) {
	doc, err := s.documentService.FindByName(ctx, sessionID, req.DocumentName)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %q not found in this session", req.DocumentName)
	}

	profile := civic.Profile{
		ZipCode:       req.ZipCode,
		HouseholdSize: req.HouseholdSize,
		Income:        req.Income,
		Occupation:    req.Occupation,
		Insurance:     req.Insurance,
		Housing:       req.Housing,
	}

	impact := civic.SimulateImpact(profile, doc.Content)

	s.trackerService.Track(ctx, sessionID, "simulated impact", "Impact Simulator", map[string]interface{}{
		"document_name": req.DocumentName,
		"zip_code":      req.ZipCode,
	})

	key := fmt.Sprintf("impact:%s_zip_%s", req.DocumentName, req.ZipCode)
	s.trackerService.StoreContent(ctx, sessionID, key, tracker.NewContentEntry(
		tracker.ContentTypeImpact,
		impact.Summary,
		impact.Summary,
		strings.Join(impact.Recommendations, " "),
	))

	return &dto.SimulateResponse{Impact: impact}, nil
}
