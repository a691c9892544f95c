package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Chunk          string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text uses 768 dimensions
	DocumentId     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex     int             `gorm:"default:0"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

func (DocumentEmbedding) TableName() string {
	return "document_embeddings"
}
