package implementation

import (
	"context"

	"docucortex-be/internal/entity"
	"docucortex-be/internal/mapper"
	"docucortex-be/internal/model"
	"docucortex-be/internal/repository/contract"

	"gorm.io/gorm"
)

type EquipmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EquipmentMapper
}

func NewEquipmentRepository(db *gorm.DB) contract.EquipmentRepository {
	return &EquipmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewEquipmentMapper(),
	}
}

func (r *EquipmentRepositoryImpl) Search(ctx context.Context, equipmentType, status string, limit int) ([]*entity.Equipment, error) {
	if limit <= 0 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Model(&model.Equipment{})
	if equipmentType != "" {
		query = query.Where("type = ?", equipmentType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var models []*model.Equipment
	if err := query.Order("name ASC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
