package contract

import (
	"context"

	"docucortex-be/internal/entity"
	"docucortex-be/internal/repository/specification"
)

// ProviderCount is one row of the per-provider usage breakdown.
type ProviderCount struct {
	Provider string
	Count    int64
}

type ConversationRepository interface {
	Create(ctx context.Context, record *entity.ConversationRecord) error
	FindBySessionID(ctx context.Context, sessionID string, limit int) ([]*entity.ConversationRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountByProvider(ctx context.Context) ([]ProviderCount, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}
