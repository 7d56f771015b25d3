package repository

import (
	"context"

	"policy-compass-be/internal/model"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*model.DocumentChunk) error
	CountByDocument(ctx context.Context, documentID uuid.UUID) (int64, error)
	LeadingChunks(ctx context.Context, documentID uuid.UUID, limit int) ([]*model.DocumentChunk, error)
	SearchSimilar(ctx context.Context, embedding []float32, limit int, documentID uuid.UUID) ([]*model.DocumentChunk, error)
	SearchSimilarBySession(ctx context.Context, embedding []float32, limit int, sessionID string) ([]*model.DocumentChunk, error)
	DeleteByDocument(ctx context.Context, documentID uuid.UUID) error
	DeleteBySession(ctx context.Context, sessionID string) error
}

type chunkRepository struct {
	db *gorm.DB
}

func NewChunkRepository(db *gorm.DB) ChunkRepository {
	return &chunkRepository{db: db}
}

func (r *chunkRepository) CreateBulk(ctx context.Context, chunks []*model.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(chunks).Error
}

func (r *chunkRepository) CountByDocument(ctx context.Context, documentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Where("document_id = ?", documentID).
		Count(&count).Error
	return count, err
}

// LeadingChunks returns the first chunks of a document in order. Used as
// the retrieval fallback before embeddings exist.
func (r *chunkRepository) LeadingChunks(ctx context.Context, documentID uuid.UUID, limit int) ([]*model.DocumentChunk, error) {
	if limit <= 0 {
		limit = 4
	}
	var chunks []*model.DocumentChunk
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("chunk_index ASC").
		Limit(limit).
		Find(&chunks).Error
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// SearchSimilar orders chunks of one document by pgvector cosine distance
// to the query embedding.
func (r *chunkRepository) SearchSimilar(ctx context.Context, embedding []float32, limit int, documentID uuid.UUID) ([]*model.DocumentChunk, error) {
	if limit <= 0 {
		limit = 4
	}
	var chunks []*model.DocumentChunk
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Where("embedding_value IS NOT NULL").
		Order(gorm.Expr("embedding_value <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&chunks).Error
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// SearchSimilarBySession searches across every document of a session.
// Used by the conversational chain where no single document is active.
func (r *chunkRepository) SearchSimilarBySession(ctx context.Context, embedding []float32, limit int, sessionID string) ([]*model.DocumentChunk, error) {
	if limit <= 0 {
		limit = 4
	}
	var chunks []*model.DocumentChunk
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Where("embedding_value IS NOT NULL").
		Order(gorm.Expr("embedding_value <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&chunks).Error
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

func (r *chunkRepository) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentID).Delete(&model.DocumentChunk{}).Error
}

func (r *chunkRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&model.DocumentChunk{}).Error
}
