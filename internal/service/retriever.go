package service

import (
	"context"

	"policy-compass-be/internal/model"
	"policy-compass-be/internal/repository"
	"policy-compass-be/pkg/chains"
	"policy-compass-be/pkg/embedding"
	"policy-compass-be/pkg/utils"

	"github.com/google/uuid"
)

// vectorRetriever implements chains.Retriever over the pgvector chunk
// repository, scoped to one document.
type vectorRetriever struct {
	chunkRepo  repository.ChunkRepository
	embedder   embedding.EmbeddingProvider
	documentID uuid.UUID
}

func (r *vectorRetriever) Retrieve(ctx context.Context, query string, topK int) ([]string, error) {
	res, err := r.embedder.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		// Embedding the query failed; the leading chunks are still a
		// usable excerpt.
		chunks, leadErr := r.chunkRepo.LeadingChunks(ctx, r.documentID, topK)
		if leadErr != nil {
			return nil, err
		}
		return chunkContents(chunks), nil
	}
	chunks, err := r.chunkRepo.SearchSimilar(ctx, res.Embedding.Values, topK, r.documentID)
	if err != nil {
		return nil, err
	}
	return chunkContents(chunks), nil
}

// sessionRetriever searches across all documents of a session.
type sessionRetriever struct {
	chunkRepo repository.ChunkRepository
	embedder  embedding.EmbeddingProvider
	sessionID string
}

func (r *sessionRetriever) Retrieve(ctx context.Context, query string, topK int) ([]string, error) {
	res, err := r.embedder.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	chunks, err := r.chunkRepo.SearchSimilarBySession(ctx, res.Embedding.Values, topK, r.sessionID)
	if err != nil {
		return nil, err
	}
	return chunkContents(chunks), nil
}

func chunkContents(chunks []*model.DocumentChunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Content
	}
	return out
}

// retrieverFor picks vector retrieval when the document's embeddings are
// ready, and falls back to the leading chunks of the raw content while
// the embed consumer is still working.
func retrieverFor(ctx context.Context, chunkRepo repository.ChunkRepository, embedder embedding.EmbeddingProvider, doc *model.Document) chains.Retriever {
	if embedder != nil {
		count, err := chunkRepo.CountByDocument(ctx, doc.Id)
		if err == nil && count > 0 {
			return &vectorRetriever{
				chunkRepo:  chunkRepo,
				embedder:   embedder,
				documentID: doc.Id,
			}
		}
	}
	return &chains.StaticRetriever{Chunks: utils.SplitText(doc.Content, 1500, 200)}
}
