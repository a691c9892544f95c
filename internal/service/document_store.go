package service

import (
	"context"

	"docucortex-be/internal/repository/contract"
	"docucortex-be/pkg/embedding"
	"docucortex-be/pkg/enrich"

	"github.com/google/uuid"
)

// vectorDocumentStore backs the enricher with pgvector similarity search.
type vectorDocumentStore struct {
	embedder      embedding.Provider
	embeddingRepo contract.DocumentEmbeddingRepository
	documentRepo  contract.DocumentRepository
	threshold     float64
}

func NewVectorDocumentStore(
	embedder embedding.Provider,
	embeddingRepo contract.DocumentEmbeddingRepository,
	documentRepo contract.DocumentRepository,
	threshold float64,
) enrich.DocumentStore {
	return &vectorDocumentStore{
		embedder:      embedder,
		embeddingRepo: embeddingRepo,
		documentRepo:  documentRepo,
		threshold:     threshold,
	}
}

func (s *vectorDocumentStore) Search(ctx context.Context, query string, limit int) ([]enrich.Hit, error) {
	vector, err := s.embedder.Generate(ctx, query)
	if err != nil {
		return nil, err
	}

	scored, err := s.embeddingRepo.SearchSimilarWithScore(ctx, vector, limit, s.threshold)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(scored))
	seen := make(map[uuid.UUID]bool)
	for _, sc := range scored {
		if !seen[sc.Embedding.DocumentId] {
			seen[sc.Embedding.DocumentId] = true
			ids = append(ids, sc.Embedding.DocumentId)
		}
	}

	documents, err := s.documentRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]int, len(documents))
	for i, doc := range documents {
		byID[doc.Id] = i
	}

	hits := make([]enrich.Hit, 0, len(scored))
	for _, sc := range scored {
		hit := enrich.Hit{
			DocumentID: sc.Embedding.DocumentId.String(),
			Score:      sc.Similarity,
			Excerpt:    sc.Embedding.Chunk,
		}
		if i, ok := byID[sc.Embedding.DocumentId]; ok {
			hit.Filename = documents[i].Filename
			hit.Filepath = documents[i].Filepath
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
