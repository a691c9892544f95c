package gateway

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultResponder(t *testing.T) {
	r := NewDefaultResponder(DefaultConfidence())

	tests := []struct {
		name           string
		message        string
		wantConfidence float64
		wantContains   string
	}{
		{
			name:           "greeting",
			message:        "Bonjour !",
			wantConfidence: 1.0,
			wantContains:   "assistant documentaire",
		},
		{
			name:           "help request",
			message:        "que peux-tu faire pour moi ?",
			wantConfidence: 1.0,
			wantContains:   "Recherche de documents",
		},
		{
			name:           "generic fallback",
			message:        "analyse les ventes du trimestre",
			wantConfidence: 0.4,
			wantContains:   "analyse les ventes du trimestre",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Respond(chatRequest(tt.message))
			require.NotNil(t, result)
			assert.Equal(t, "default", result.Provider)
			assert.Equal(t, tt.wantConfidence, result.Confidence)
			assert.Contains(t, result.Response, tt.wantContains)
		})
	}
}

func TestDefaultResponderUsesLastUserMessage(t *testing.T) {
	r := NewDefaultResponder(DefaultConfidence())

	result := r.Respond(&Request{Messages: []Message{
		{Role: "user", Content: "première question"},
		{Role: "assistant", Content: "une réponse"},
		{Role: "user", Content: "bonjour"},
	}})

	assert.Equal(t, 1.0, result.Confidence, "routing must key on the latest user turn")
}

func TestDefaultResponderConfidenceOverride(t *testing.T) {
	r := NewDefaultResponder(ConfidenceDefaults{Greeting: 0.9, Help: 0.8, Generic: 0.2})

	assert.Equal(t, 0.9, r.Respond(chatRequest("salut")).Confidence)
	assert.Equal(t, 0.2, r.Respond(chatRequest("message quelconque sans intention")).Confidence)
}

func TestDefaultResponderTruncatesLongMessages(t *testing.T) {
	r := NewDefaultResponder(DefaultConfidence())
	long := strings.Repeat("mot ", 100)

	result := r.Respond(chatRequest(long))
	assert.Less(t, len(result.Response), len(long), "echoed message must be truncated")
	assert.Contains(t, result.Response, "...")
}
