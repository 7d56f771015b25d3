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

type IDecoderService interface {
	Decode(ctx context.Context, sessionID string, req *dto.DecodeRequest) (*dto.DecodeResponse, error)
}

type decoderService struct {
	documentService   IDocumentService
	chunkRepo         repository.ChunkRepository
	embeddingProvider embedding.EmbeddingProvider
	qaChain           *chains.QAChain
	trackerService    ITrackerService
	defaultKey        string
}

func NewDecoderService(
	documentService IDocumentService,
	chunkRepo repository.ChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	trackerService ITrackerService,
	defaultKey string,
) IDecoderService {
	return &decoderService{
		documentService:   documentService,
		chunkRepo:         chunkRepo,
		embeddingProvider: embeddingProvider,
		qaChain:           chains.NewQAChain(llmProvider),
		trackerService:    trackerService,
		defaultKey:        defaultKey,
	}
}

func (s *decoderService) Decode(ctx context.Context, sessionID string, req *dto.DecodeRequest) (*dto.DecodeResponse, error) {
	doc, err := s.documentService.FindByName(ctx, sessionID, req.DocumentName)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %q not found in this session", req.DocumentName)
	}

	retriever := retrieverFor(ctx, s.chunkRepo, s.embeddingProvider, doc)
	apiKey := s.trackerService.APIKey(sessionID, "openai", s.defaultKey)

	answer, err := s.qaChain.Answer(ctx, retriever, req.Query, req.ELI5, llm.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	s.trackerService.Track(ctx, sessionID, "analyzed", "Policy Decoder", map[string]interface{}{
		"document_name": req.DocumentName,
		"query":         req.Query,
		"result":        truncateDetail(answer, 100),
	})

	s.trackerService.StoreContent(ctx, sessionID, "decoder:"+req.DocumentName, tracker.NewContentEntry(
		tracker.ContentTypeDocument,
		truncateDetail(doc.Content, 2000),
		truncateDetail(answer, 500),
		"",
	))

	return &dto.DecodeResponse{Answer: answer}, nil
}

func truncateDetail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
