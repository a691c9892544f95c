package mapper

import (
	"time"

	"docucortex-be/internal/entity"
	"docucortex-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:        d.Id,
		Filename:  d.Filename,
		Filepath:  d.Filepath,
		MimeType:  d.MimeType,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: d.DeletedAt.Valid,
	}
}

func (m *DocumentMapper) ToModel(e *entity.Document) *model.Document {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Document{
		Id:        e.Id,
		Filename:  e.Filename,
		Filepath:  e.Filepath,
		MimeType:  e.MimeType,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

type DocumentEmbeddingMapper struct{}

func NewDocumentEmbeddingMapper() *DocumentEmbeddingMapper {
	return &DocumentEmbeddingMapper{}
}

func (m *DocumentEmbeddingMapper) ToEntity(e *model.DocumentEmbedding) *entity.DocumentEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.DocumentEmbedding{
		Id:             e.Id,
		Chunk:          e.Chunk,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		DocumentId:     e.DocumentId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *DocumentEmbeddingMapper) ToModel(e *entity.DocumentEmbedding) *model.DocumentEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	return &model.DocumentEmbedding{
		Id:             e.Id,
		Chunk:          e.Chunk,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		DocumentId:     e.DocumentId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToModels(embeddings []*entity.DocumentEmbedding) []*model.DocumentEmbedding {
	models := make([]*model.DocumentEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
