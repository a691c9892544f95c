package mapper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docucortex-be/internal/entity"
	"docucortex-be/internal/model"

	"gorm.io/datatypes"
)

func TestConversationMapperRoundTrip(t *testing.T) {
	m := NewConversationMapper()
	userID := uuid.New()

	e := &entity.ConversationRecord{
		Id:          uuid.New(),
		SessionID:   "s1",
		UserID:      &userID,
		UserMessage: "trouve le rapport",
		Response:    "le voici",
		Confidence:  0.9,
		Provider:    "ollama",
		Intent:      "document_search",
		Sources: []entity.ConversationSource{
			{Filename: "rapport.pdf", Filepath: "/ged/rapport.pdf", Score: 0.88, Snippet: "extrait"},
		},
	}

	back := m.ToEntity(m.ToModel(e))
	require.NotNil(t, back)
	assert.Equal(t, e.SessionID, back.SessionID)
	assert.Equal(t, e.UserID, back.UserID)
	assert.Equal(t, e.Intent, back.Intent)
	require.Len(t, back.Sources, 1)
	assert.Equal(t, "rapport.pdf", back.Sources[0].Filename)
	assert.Equal(t, 0.88, back.Sources[0].Score)
}

func TestConversationMapperMalformedSourcesDegrade(t *testing.T) {
	m := NewConversationMapper()

	e := m.ToEntity(&model.ConversationRecord{
		Id:        uuid.New(),
		SessionID: "s1",
		Response:  "réponse",
		Sources:   datatypes.JSON(`{broken`),
	})

	require.NotNil(t, e)
	assert.Equal(t, "réponse", e.Response, "a corrupt sources column must not lose the row")
	assert.Empty(t, e.Sources)
}

func TestConversationMapperNil(t *testing.T) {
	m := NewConversationMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
