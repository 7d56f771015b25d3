package service

import (
	"context"
	"fmt"

	"policy-compass-be/internal/dto"
	"policy-compass-be/pkg/chains"
	"policy-compass-be/pkg/llm"
)

type IQuizService interface {
	Generate(ctx context.Context, sessionID string, req *dto.QuizRequest) (*dto.QuizResponse, error)
}

type quizService struct {
	documentService IDocumentService
	quizChain       *chains.QuizChain
	trackerService  ITrackerService
	defaultKey      string
}

func NewQuizService(
	documentService IDocumentService,
	llmProvider llm.LLMProvider,
	trackerService ITrackerService,
	defaultKey string,
) IQuizService {
	return &quizService{
		documentService: documentService,
		quizChain:       chains.NewQuizChain(llmProvider),
		trackerService:  trackerService,
		defaultKey:      defaultKey,
	}
}

func (s *quizService) Generate(ctx context.Context, sessionID string, req *dto.QuizRequest) (*dto.QuizResponse, error) {
	doc, err := s.documentService.FindByName(ctx, sessionID, req.DocumentName)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %q not found in this session", req.DocumentName)
	}

	apiKey := s.trackerService.APIKey(sessionID, "openai", s.defaultKey)

	questions, err := s.quizChain.Generate(ctx, doc.Content, llm.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if questions == nil {
		return nil, fmt.Errorf("the model did not return a valid quiz, please try again")
	}

	s.trackerService.Track(ctx, sessionID, "generated quiz", "Civic Quiz", map[string]interface{}{
		"document_name": req.DocumentName,
	})

	return &dto.QuizResponse{Questions: questions}, nil
}
