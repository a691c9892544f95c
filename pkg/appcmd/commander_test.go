package appcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInventory struct {
	results []Equipment
	err     error

	gotType   string
	gotStatus string
	gotLimit  int
}

func (s *stubInventory) Search(ctx context.Context, equipmentType, status string, limit int) ([]Equipment, error) {
	s.gotType = equipmentType
	s.gotStatus = status
	s.gotLimit = limit
	return s.results, s.err
}

func TestNaturalLanguageSearchKeywordExtraction(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantType   string
		wantStatus string
	}{
		{
			name:       "type and status",
			message:    "ouvre les ordinateurs disponibles",
			wantType:   "computer",
			wantStatus: "available",
		},
		{
			name:     "type only",
			message:  "liste les imprimantes",
			wantType: "printer",
		},
		{
			name:       "status only",
			message:    "affiche le matériel en panne",
			wantStatus: "broken",
		},
		{
			name:       "synonyms map to the same codes",
			message:    "montre les postes libres",
			wantType:   "computer",
			wantStatus: "available",
		},
		{
			name:    "no keyword at all",
			message: "montre tout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &stubInventory{}
			c := NewCommander(inv)

			_, err := c.NaturalLanguageSearch(context.Background(), tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, inv.gotType)
			assert.Equal(t, tt.wantStatus, inv.gotStatus)
			assert.Equal(t, defaultLimit, inv.gotLimit)
		})
	}
}

func TestNaturalLanguageSearchFormatsResults(t *testing.T) {
	inv := &stubInventory{results: []Equipment{
		{ID: "1", Name: "PC-SALLE-01", Type: "computer", Status: "available"},
		{ID: "2", Name: "PC-SALLE-02", Type: "computer", Status: "available"},
	}}
	c := NewCommander(inv)

	result, err := c.NaturalLanguageSearch(context.Background(), "ouvre les ordinateurs disponibles")
	require.NoError(t, err)

	assert.Len(t, result.Results, 2)
	assert.Contains(t, result.Response, "2 équipement(s)")
	assert.Contains(t, result.Response, "de type computer")
	assert.Contains(t, result.Response, "avec le statut available")
	assert.Contains(t, result.Response, "PC-SALLE-01")
}

func TestNaturalLanguageSearchEmptyResults(t *testing.T) {
	c := NewCommander(&stubInventory{})

	result, err := c.NaturalLanguageSearch(context.Background(), "liste les serveurs")
	require.NoError(t, err)
	assert.Contains(t, result.Response, "aucun équipement")
	assert.Empty(t, result.Results)
}

func TestNaturalLanguageSearchInventoryError(t *testing.T) {
	c := NewCommander(&stubInventory{err: errors.New("db down")})

	result, err := c.NaturalLanguageSearch(context.Background(), "liste les serveurs")
	assert.Error(t, err)
	assert.Nil(t, result)
}
