package repository

import (
	"context"
	"errors"

	"policy-compass-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	FindById(ctx context.Context, id uuid.UUID) (*model.Document, error)
	FindByName(ctx context.Context, sessionID, name string) (*model.Document, error)
	FindAllBySession(ctx context.Context, sessionID string) ([]*model.Document, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) FindById(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	var doc model.Document
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindByName(ctx context.Context, sessionID, name string) (*model.Document, error) {
	var doc model.Document
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND name = ?", sessionID, name).
		Order("created_at DESC").
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindAllBySession(ctx context.Context, sessionID string) ([]*model.Document, error) {
	var docs []*model.Document
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Order("created_at ASC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&model.Document{}).Error
}
