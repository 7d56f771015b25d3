package service

import (
	"context"
	"encoding/json"
	"log"

	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/model"
	"policy-compass-be/internal/repository"
	"policy-compass-be/pkg/embedding"
	"policy-compass-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	documentRepo      repository.DocumentRepository
	chunkRepo         repository.ChunkRepository
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	documentRepo repository.DocumentRepository,
	chunkRepo repository.ChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		documentRepo:      documentRepo,
		chunkRepo:         chunkRepo,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embeddings for document %s", payload.DocumentId)

	doc, err := cs.documentRepo.FindById(ctx, payload.DocumentId)
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}
	if doc == nil {
		log.Printf("[ERROR] Document not found: %s", payload.DocumentId)
		msg.Ack() // Deleted before processing? Ack.
		return
	}

	// ChunkSize: 1500 chars (approx 375 tokens), Overlap: 200 chars
	chunks := utils.SplitText(doc.Content, 1500, 200)
	log.Printf("[INFO] Document %s split into %d chunks", doc.Id, len(chunks))

	newChunks := make([]*model.DocumentChunk, 0, len(chunks))
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of document %s: %v", i, doc.Id, err)
			msg.Nack()
			return
		}

		newChunks = append(newChunks, &model.DocumentChunk{
			Id:             uuid.New(),
			DocumentId:     doc.Id,
			SessionId:      doc.SessionId,
			Content:        chunk,
			EmbeddingValue: pgvector.NewVector(res.Embedding.Values),
			ChunkIndex:     i,
		})
	}

	if err := cs.chunkRepo.DeleteByDocument(ctx, doc.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old chunks for document %s: %v", doc.Id, err)
		msg.Nack()
		return
	}

	if err := cs.chunkRepo.CreateBulk(ctx, newChunks); err != nil {
		log.Printf("[ERROR] Failed to store chunks for document %s: %v", doc.Id, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Document processed: %d chunks for %s", len(newChunks), doc.Id)
	msg.Ack()
}
