package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docucortex-be/internal/entity"
	"docucortex-be/internal/repository/contract"
	"docucortex-be/internal/repository/specification"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	return f.vector, f.err
}

type fakeEmbeddingRepo struct {
	scored       []*contract.ScoredDocumentEmbedding
	err          error
	gotVector    []float32
	gotLimit     int
	gotThreshold float64
}

func (f *fakeEmbeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	return nil
}

func (f *fakeEmbeddingRepo) DeleteByDocumentID(ctx context.Context, documentID uuid.UUID) error {
	return nil
}

func (f *fakeEmbeddingRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredDocumentEmbedding, error) {
	f.gotVector = embedding
	f.gotLimit = limit
	f.gotThreshold = threshold
	return f.scored, f.err
}

type fakeDocumentRepo struct {
	documents []*entity.Document
}

func (f *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error { return nil }

func (f *fakeDocumentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	return nil, nil
}

func (f *fakeDocumentRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Document, error) {
	return f.documents, nil
}

func (f *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	return f.documents, nil
}

func (f *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.documents)), nil
}

func (f *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func TestVectorDocumentStoreSearch(t *testing.T) {
	docID := uuid.New()
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2, 0.3}}
	embeddingRepo := &fakeEmbeddingRepo{scored: []*contract.ScoredDocumentEmbedding{
		{
			Embedding:  &entity.DocumentEmbedding{DocumentId: docID, Chunk: "extrait pertinent", ChunkIndex: 0},
			Similarity: 0.87,
		},
	}}
	documentRepo := &fakeDocumentRepo{documents: []*entity.Document{
		{Id: docID, Filename: "rapport.pdf", Filepath: "/ged/rapport.pdf"},
	}}

	store := NewVectorDocumentStore(embedder, embeddingRepo, documentRepo, 0.3)
	hits, err := store.Search(context.Background(), "finances de mars", 3)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, docID.String(), hits[0].DocumentID)
	assert.Equal(t, 0.87, hits[0].Score)
	assert.Equal(t, "extrait pertinent", hits[0].Excerpt)
	assert.Equal(t, "rapport.pdf", hits[0].Filename)
	assert.Equal(t, "/ged/rapport.pdf", hits[0].Filepath)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, embeddingRepo.gotVector)
	assert.Equal(t, 3, embeddingRepo.gotLimit)
	assert.Equal(t, 0.3, embeddingRepo.gotThreshold)
}

func TestVectorDocumentStoreNoMatches(t *testing.T) {
	store := NewVectorDocumentStore(&fakeEmbedder{vector: []float32{0.1}}, &fakeEmbeddingRepo{}, &fakeDocumentRepo{}, 0.3)

	hits, err := store.Search(context.Background(), "question", 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestVectorDocumentStoreEmbedderFailure(t *testing.T) {
	store := NewVectorDocumentStore(&fakeEmbedder{err: errors.New("model not loaded")}, &fakeEmbeddingRepo{}, &fakeDocumentRepo{}, 0.3)

	hits, err := store.Search(context.Background(), "question", 3)
	assert.Error(t, err)
	assert.Nil(t, hits)
}
