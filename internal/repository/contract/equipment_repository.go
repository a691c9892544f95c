package contract

import (
	"context"

	"docucortex-be/internal/entity"
)

type EquipmentRepository interface {
	Search(ctx context.Context, equipmentType, status string, limit int) ([]*entity.Equipment, error)
}
