package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/model"
	"policy-compass-be/internal/pkg/logger"
	"policy-compass-be/internal/repository"
	"policy-compass-be/pkg/docparse"
	"policy-compass-be/pkg/events"
	pktNats "policy-compass-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IDocumentService interface {
	UploadPDF(ctx context.Context, sessionID, filename string, data []byte) (*dto.UploadDocumentResponse, error)
	UploadText(ctx context.Context, sessionID string, req *dto.UploadTextRequest) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context, sessionID string) ([]*dto.DocumentListItem, error)
	FindByName(ctx context.Context, sessionID, name string) (*model.Document, error)
}

type documentService struct {
	documentRepo     repository.DocumentRepository
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	trackerService   ITrackerService
	logger           logger.ILogger
}

func NewDocumentService(
	documentRepo repository.DocumentRepository,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	trackerService ITrackerService,
	sysLogger logger.ILogger,
) IDocumentService {
	return &documentService{
		documentRepo:     documentRepo,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		trackerService:   trackerService,
		logger:           sysLogger,
	}
}

func (s *documentService) UploadPDF(ctx context.Context, sessionID, filename string, data []byte) (*dto.UploadDocumentResponse, error) {
	pages := docparse.ExtractPDF(bytes.NewReader(data), int64(len(data)))
	if len(pages) == 0 {
		return nil, fmt.Errorf("no text could be extracted from %s", filename)
	}

	return s.store(ctx, sessionID, filename, strings.Join(pages, "\n\n"), "pdf", len(pages))
}

func (s *documentService) UploadText(ctx context.Context, sessionID string, req *dto.UploadTextRequest) (*dto.UploadDocumentResponse, error) {
	chunks := docparse.FromText(req.Content)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("pasted text is empty")
	}

	return s.store(ctx, sessionID, req.Name, chunks[0], "text", len(chunks))
}

func (s *documentService) store(ctx context.Context, sessionID, name, content, source string, pageCount int) (*dto.UploadDocumentResponse, error) {
	metadata, _ := json.Marshal(map[string]interface{}{
		"source": source,
		"pages":  pageCount,
	})

	doc := &model.Document{
		Id:        uuid.New(),
		SessionId: sessionID,
		Name:      name,
		Content:   content,
		Metadata:  datatypes.JSON(metadata),
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	msgPayload, err := json.Marshal(dto.PublishEmbedDocumentMessage{DocumentId: doc.Id})
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgPayload); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewBaseEvent(events.DocumentUploaded, map[string]interface{}{
			"session_id":  sessionID,
			"document_id": doc.Id,
			"name":        name,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Document", "Failed to publish upload event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.trackerService.Track(ctx, sessionID, "uploaded", "Documents", map[string]interface{}{
		"document_name": name,
	})

	return &dto.UploadDocumentResponse{
		Id:     doc.Id,
		Name:   doc.Name,
		Chunks: pageCount,
	}, nil
}

func (s *documentService) List(ctx context.Context, sessionID string) ([]*dto.DocumentListItem, error) {
	docs, err := s.documentRepo.FindAllBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.DocumentListItem, len(docs))
	for i, doc := range docs {
		items[i] = &dto.DocumentListItem{Id: doc.Id, Name: doc.Name}
	}
	return items, nil
}

func (s *documentService) FindByName(ctx context.Context, sessionID, name string) (*model.Document, error) {
	return s.documentRepo.FindByName(ctx, sessionID, name)
}
