package dto

import "github.com/google/uuid"

type UploadTextRequest struct {
	Name    string `json:"name" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type UploadDocumentResponse struct {
	Id     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Chunks int       `json:"chunks"`
}

type DocumentListItem struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// PublishEmbedDocumentMessage travels over the in-process bus to the
// embedding consumer.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
