package model

import (
	"time"

	"github.com/google/uuid"
)

type Equipment struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Type      string    `gorm:"type:varchar(64);index"`
	Status    string    `gorm:"type:varchar(32);index"`
	Location  string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Equipment) TableName() string {
	return "equipments"
}
