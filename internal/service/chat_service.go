package service

import (
	"context"

	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/repository"
	"policy-compass-be/pkg/chains"
	"policy-compass-be/pkg/embedding"
	"policy-compass-be/pkg/llm"
)

type IChatService interface {
	Chat(ctx context.Context, sessionID string, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	chunkRepo         repository.ChunkRepository
	embeddingProvider embedding.EmbeddingProvider
	chatChain         *chains.ChatChain
	trackerService    ITrackerService
	defaultKey        string
}

func NewChatService(
	chunkRepo repository.ChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	trackerService ITrackerService,
	defaultKey string,
) IChatService {
	return &chatService{
		chunkRepo:         chunkRepo,
		embeddingProvider: embeddingProvider,
		chatChain:         chains.NewChatChain(llmProvider),
		trackerService:    trackerService,
		defaultKey:        defaultKey,
	}
}

func (s *chatService) Chat(ctx context.Context, sessionID string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	session := s.trackerService.Session(sessionID)

	session.Lock()
	history := make([]llm.Message, len(session.ChatHistory))
	copy(history, session.ChatHistory)
	session.Unlock()

	var retriever chains.Retriever
	if s.embeddingProvider != nil {
		retriever = &sessionRetriever{
			chunkRepo: s.chunkRepo,
			embedder:  s.embeddingProvider,
			sessionID: sessionID,
		}
	}

	apiKey := s.trackerService.APIKey(sessionID, "openai", s.defaultKey)

	reply, err := s.chatChain.Reply(ctx, retriever, history, req.Message, chains.ReadingLevel(req.ReadingLevel), llm.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	session.Lock()
	session.ChatHistory = append(session.ChatHistory,
		llm.Message{Role: "user", Content: req.Message},
		llm.Message{Role: "assistant", Content: reply},
	)
	session.Unlock()

	s.trackerService.Track(ctx, sessionID, "chatted about", "Chat Memory", map[string]interface{}{
		"query": req.Message,
	})

	return &dto.ChatResponse{Reply: reply}, nil
}
