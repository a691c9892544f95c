package bootstrap

import (
	"context"

	"docucortex-be/internal/repository/contract"
	"docucortex-be/pkg/appcmd"
)

// equipmentInventory adapts the gorm repository to the commander's
// inventory contract.
type equipmentInventory struct {
	repo contract.EquipmentRepository
}

func (a equipmentInventory) Search(ctx context.Context, equipmentType, status string, limit int) ([]appcmd.Equipment, error) {
	rows, err := a.repo.Search(ctx, equipmentType, status, limit)
	if err != nil {
		return nil, err
	}

	out := make([]appcmd.Equipment, len(rows))
	for i, row := range rows {
		out[i] = appcmd.Equipment{
			ID:     row.Id.String(),
			Name:   row.Name,
			Type:   row.Type,
			Status: row.Status,
		}
	}
	return out, nil
}
