package service

import (
	"context"
	"fmt"

	"policy-compass-be/internal/dto"
	"policy-compass-be/pkg/chains"
	"policy-compass-be/pkg/llm"
	"policy-compass-be/pkg/tracker"
)

type ICompareService interface {
	Compare(ctx context.Context, sessionID string, req *dto.CompareRequest) (*dto.CompareResponse, error)
}

type compareService struct {
	documentService IDocumentService
	compareChain    *chains.CompareChain
	trackerService  ITrackerService
	defaultKey      string
}

func NewCompareService(
	documentService IDocumentService,
	llmProvider llm.LLMProvider,
	trackerService ITrackerService,
	defaultKey string,
) ICompareService {
	return &compareService{
		documentService: documentService,
		compareChain:    chains.NewCompareChain(llmProvider),
		trackerService:  trackerService,
		defaultKey:      defaultKey,
	}
}

func (s *compareService) Compare(ctx context.Context, sessionID string, req *dto.CompareRequest) (*dto.CompareResponse, error) {
	docA, err := s.documentService.FindByName(ctx, sessionID, req.DocumentA)
	if err != nil {
		return nil, err
	}
	docB, err := s.documentService.FindByName(ctx, sessionID, req.DocumentB)
	if err != nil {
		return nil, err
	}
	if docA == nil || docB == nil {
		return nil, fmt.Errorf("both documents must be uploaded before comparison")
	}

	apiKey := s.trackerService.APIKey(sessionID, "openai", s.defaultKey)

	comparison, err := s.compareChain.Compare(ctx, docA.Name, docA.Content, docB.Name, docB.Content, llm.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	s.trackerService.Track(ctx, sessionID, "compared", "Compare Bills", map[string]interface{}{
		"document_name": fmt.Sprintf("%s vs %s", req.DocumentA, req.DocumentB),
	})

	key := fmt.Sprintf("compare:%s_vs_%s", req.DocumentA, req.DocumentB)
	s.trackerService.StoreContent(ctx, sessionID, key, tracker.NewContentEntry(
		tracker.ContentTypeComparison,
		truncateDetail(comparison, 2000),
		truncateDetail(comparison, 500),
		"",
	))

	return &dto.CompareResponse{Comparison: comparison}, nil
}
