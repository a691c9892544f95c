package nlp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(entities []Entity, label string) []string {
	var out []string
	for _, e := range entities {
		if e.Label == label {
			out = append(out, e.Text)
		}
	}
	return out
}

func TestExtract(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name            string
		text            string
		wantDocTypes    []string
		wantDates       []string
		wantProperNouns []string
	}{
		{
			name:         "document types",
			text:         "trouve le rapport au format pdf",
			wantDocTypes: []string{"rapport", "pdf"},
		},
		{
			name:      "month and numeric date",
			text:      "les factures de mars et du 12/03/2026",
			wantDates: []string{"mars", "12/03/2026"},
			// "facture" matches with its plural
			wantDocTypes: []string{"factures"},
		},
		{
			name:            "proper noun past the first word",
			text:            "Cherche le contrat signé avec Dupont",
			wantDocTypes:    []string{"contrat"},
			wantProperNouns: []string{"Dupont"},
		},
		{
			name: "sentence-initial capital carries no signal",
			text: "Bonjour tout le monde",
		},
		{
			name: "nothing to extract",
			text: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities, err := e.Extract(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDocTypes, labels(entities, "doc_type"))
			assert.Equal(t, tt.wantDates, labels(entities, "date"))
			assert.Equal(t, tt.wantProperNouns, labels(entities, "proper_noun"))
		})
	}
}

func TestExtractDeduplicates(t *testing.T) {
	e := NewExtractor()

	entities, err := e.Extract(context.Background(), "un pdf puis un autre PDF")
	require.NoError(t, err)
	assert.Len(t, labels(entities, "doc_type"), 1)
}

func TestExtractCancelledContext(t *testing.T) {
	e := NewExtractor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entities, err := e.Extract(ctx, "trouve le rapport")
	assert.Error(t, err)
	assert.Nil(t, entities)
}
