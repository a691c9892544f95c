package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename  string         `gorm:"type:varchar(255);not null;index"`
	Filepath  string         `gorm:"type:text;not null"`
	MimeType  string         `gorm:"type:varchar(128)"`
	Content   string         `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
