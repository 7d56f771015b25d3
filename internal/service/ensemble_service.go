package service

import (
	"context"
	"fmt"

	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/repository"
	"policy-compass-be/pkg/chains"
	"policy-compass-be/pkg/embedding"
	"policy-compass-be/pkg/llm"
	"policy-compass-be/pkg/tracker"
)

type IEnsembleService interface {
	Decode(ctx context.Context, sessionID string, req *dto.EnsembleRequest) (*chains.EnsembleResult, error)
}

type ensembleService struct {
	documentService   IDocumentService
	chunkRepo         repository.ChunkRepository
	embeddingProvider embedding.EmbeddingProvider
	ensembleChain     *chains.EnsembleChain
	trackerService    ITrackerService
	primaryName       string
	secondaryName     string
	primaryKey        string
	secondaryKey      string
}

func NewEnsembleService(
	documentService IDocumentService,
	chunkRepo repository.ChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	primary llm.LLMProvider,
	primaryName string,
	secondary llm.LLMProvider,
	secondaryName string,
	trackerService ITrackerService,
	primaryKey, secondaryKey string,
) IEnsembleService {
	return &ensembleService{
		documentService:   documentService,
		chunkRepo:         chunkRepo,
		embeddingProvider: embeddingProvider,
		ensembleChain:     chains.NewEnsembleChain(primary, primaryName, secondary, secondaryName),
		trackerService:    trackerService,
		primaryName:       primaryName,
		secondaryName:     secondaryName,
		primaryKey:        primaryKey,
		secondaryKey:      secondaryKey,
	}
}

func (s *ensembleService) Decode(ctx context.Context, sessionID string, req *dto.EnsembleRequest) (*chains.EnsembleResult, error) {
	doc, err := s.documentService.FindByName(ctx, sessionID, req.DocumentName)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %q not found in this session", req.DocumentName)
	}

	retriever := retrieverFor(ctx, s.chunkRepo, s.embeddingProvider, doc)

	// Each provider resolves its own session override; the names are the
	// provider types ("openai", "anthropic"), matching the settings keys.
	primaryKey := s.trackerService.APIKey(sessionID, s.primaryName, s.primaryKey)
	secondaryKey := s.trackerService.APIKey(sessionID, s.secondaryName, s.secondaryKey)

	result, err := s.ensembleChain.Answer(ctx, retriever, req.Query,
		[]llm.Option{llm.WithAPIKey(primaryKey)},
		[]llm.Option{llm.WithAPIKey(secondaryKey)},
	)
	if err != nil {
		return nil, err
	}

	s.trackerService.Track(ctx, sessionID, "analyzed", "Ensemble Decoder", map[string]interface{}{
		"document_name": req.DocumentName,
		"query":         req.Query,
	})

	s.trackerService.StoreContent(ctx, sessionID, "ensemble:"+req.DocumentName, tracker.NewContentEntry(
		tracker.ContentTypeEnsemble,
		truncateDetail(result.Answer, 2000),
		truncateDetail(result.Answer, 500),
		"",
	))

	return result, nil
}
