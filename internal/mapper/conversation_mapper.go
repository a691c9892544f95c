package mapper

import (
	"encoding/json"

	"docucortex-be/internal/entity"
	"docucortex-be/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(r *model.ConversationRecord) *entity.ConversationRecord {
	if r == nil {
		return nil
	}

	var sources []entity.ConversationSource
	if len(r.Sources) > 0 {
		// Malformed rows degrade to no sources rather than failing the read.
		_ = json.Unmarshal(r.Sources, &sources)
	}

	return &entity.ConversationRecord{
		Id:          r.Id,
		SessionID:   r.SessionID,
		UserID:      r.UserID,
		UserMessage: r.UserMessage,
		Response:    r.Response,
		Confidence:  r.Confidence,
		Provider:    r.Provider,
		Intent:      r.Intent,
		Sources:     sources,
		CreatedAt:   r.CreatedAt,
	}
}

func (m *ConversationMapper) ToModel(e *entity.ConversationRecord) *model.ConversationRecord {
	if e == nil {
		return nil
	}

	var sources datatypes.JSON
	if len(e.Sources) > 0 {
		if data, err := json.Marshal(e.Sources); err == nil {
			sources = datatypes.JSON(data)
		}
	}

	return &model.ConversationRecord{
		Id:          e.Id,
		SessionID:   e.SessionID,
		UserID:      e.UserID,
		UserMessage: e.UserMessage,
		Response:    e.Response,
		Confidence:  e.Confidence,
		Provider:    e.Provider,
		Intent:      e.Intent,
		Sources:     sources,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *ConversationMapper) ToEntities(records []*model.ConversationRecord) []*entity.ConversationRecord {
	entities := make([]*entity.ConversationRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
