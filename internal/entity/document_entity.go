package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is an indexed file from the document base.
type Document struct {
	Id        uuid.UUID
	Filename  string
	Filepath  string
	MimeType  string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// DocumentEmbedding is one embedded chunk of an indexed document.
type DocumentEmbedding struct {
	Id             uuid.UUID
	Chunk          string
	EmbeddingValue []float32
	DocumentId     uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
