package implementation

import (
	"context"

	"docucortex-be/internal/entity"
	"docucortex-be/internal/mapper"
	"docucortex-be/internal/model"
	"docucortex-be/internal/repository/contract"
	"docucortex-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, record *entity.ConversationRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) FindBySessionID(ctx context.Context, sessionID string, limit int) ([]*entity.ConversationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var models []*model.ConversationRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationRecord, error) {
	var models []*model.ConversationRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ConversationRecord{}).Count(&count).Error
	return count, err
}

func (r *ConversationRepositoryImpl) CountByProvider(ctx context.Context) ([]contract.ProviderCount, error) {
	var rows []contract.ProviderCount
	err := r.db.WithContext(ctx).
		Model(&model.ConversationRecord{}).
		Select("provider, count(*) as count").
		Group("provider").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ConversationRepositoryImpl) DeleteBySessionID(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&model.ConversationRecord{}).Error
}
