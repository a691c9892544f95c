package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConversationRecord struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID   string     `gorm:"type:varchar(128);not null;index"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	UserMessage string     `gorm:"type:text;not null"`
	Response    string     `gorm:"type:text;not null"`
	Confidence  float64
	Provider    string         `gorm:"type:varchar(64);index"`
	Intent      string         `gorm:"type:varchar(64)"`
	Sources     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
}

func (ConversationRecord) TableName() string {
	return "conversation_records"
}
