package contract

import (
	"context"

	"docucortex-be/internal/entity"
	"docucortex-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentEmbedding wraps a DocumentEmbedding with its similarity score.
type ScoredDocumentEmbedding struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DocumentEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	DeleteByDocumentID(ctx context.Context, documentID uuid.UUID) error
	// SearchSimilarWithScore returns embeddings with cosine similarity above threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredDocumentEmbedding, error)
}
