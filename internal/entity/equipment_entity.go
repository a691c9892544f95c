package entity

import (
	"time"

	"github.com/google/uuid"
)

// Equipment is an inventory asset queryable through application commands.
type Equipment struct {
	Id        uuid.UUID
	Name      string
	Type      string
	Status    string
	Location  string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
