package mapper

import (
	"time"

	"docucortex-be/internal/entity"
	"docucortex-be/internal/model"
)

type EquipmentMapper struct{}

func NewEquipmentMapper() *EquipmentMapper {
	return &EquipmentMapper{}
}

func (m *EquipmentMapper) ToEntity(e *model.Equipment) *entity.Equipment {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.Equipment{
		Id:        e.Id,
		Name:      e.Name,
		Type:      e.Type,
		Status:    e.Status,
		Location:  e.Location,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *EquipmentMapper) ToEntities(models []*model.Equipment) []*entity.Equipment {
	entities := make([]*entity.Equipment, len(models))
	for i, e := range models {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
