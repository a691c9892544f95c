package implementation

import (
	"context"
	"errors"

	"docucortex-be/internal/entity"
	"docucortex-be/internal/mapper"
	"docucortex-be/internal/model"
	"docucortex-be/internal/repository/contract"
	"docucortex-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, document *entity.Document) error {
	m := r.mapper.ToModel(document)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*document = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Document, error) {
	var m model.Document
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRepositoryImpl) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Document, error) {
	var models []*model.Document
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Document, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *DocumentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var models []*model.Document
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Document, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *DocumentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Document{}).Count(&count).Error
	return count, err
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Document{}, id).Error
}

type DocumentEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentEmbeddingMapper
}

func NewDocumentEmbeddingRepository(db *gorm.DB) contract.DocumentEmbeddingRepository {
	return &DocumentEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentEmbeddingMapper(),
	}
}

func (r *DocumentEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	return r.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

func (r *DocumentEmbeddingRepositoryImpl) DeleteByDocumentID(ctx context.Context, documentID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentID).Delete(&model.DocumentEmbedding{}).Error
}

// SearchSimilarWithScore returns embeddings with similarity scores, filtered by threshold.
// Cosine distance in pgvector is 1 - cosine_similarity, so similarity is
// computed as 1 - (embedding_value <=> query_vector).
func (r *DocumentEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredDocumentEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.DocumentEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("document_embeddings").
		Select("document_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN documents ON documents.id = document_embeddings.document_id").
		Where("document_embeddings.deleted_at IS NULL").
		Where("documents.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredDocumentEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredDocumentEmbedding{
			Embedding:  r.mapper.ToEntity(&res.DocumentEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
