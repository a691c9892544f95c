package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docucortex-be/internal/pkg/logger"
)

type stubStore struct {
	hits []Hit
	err  error

	gotQuery string
	gotLimit int
}

func (s *stubStore) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	s.gotQuery = query
	s.gotLimit = limit
	return s.hits, s.err
}

func TestEnrichNoHitsReturnsQueryVerbatim(t *testing.T) {
	store := &stubStore{}
	e := NewEnricher(store, 0, logger.NewNopLogger())

	result, err := e.Enrich(context.Background(), "quelle est la politique de congés ?")

	require.NoError(t, err)
	assert.Equal(t, "quelle est la politique de congés ?", result.Text)
	assert.Empty(t, result.Sources)
	assert.Equal(t, "quelle est la politique de congés ?", store.gotQuery)
	assert.Equal(t, 3, store.gotLimit)
}

func TestEnrichUsesConfiguredLimit(t *testing.T) {
	store := &stubStore{}
	e := NewEnricher(store, 5, logger.NewNopLogger())

	_, err := e.Enrich(context.Background(), "bilan annuel")

	require.NoError(t, err)
	assert.Equal(t, 5, store.gotLimit)
}

func TestEnrichStoreFailureDegradesToPlainQuery(t *testing.T) {
	store := &stubStore{err: errors.New("index unavailable")}
	e := NewEnricher(store, 0, logger.NewNopLogger())

	result, err := e.Enrich(context.Background(), "trouve le contrat")

	require.NoError(t, err, "a broken store must not fail the turn")
	assert.Equal(t, "trouve le contrat", result.Text)
	assert.Empty(t, result.Sources)
}

func TestEnrichBuildsGroundedPrompt(t *testing.T) {
	store := &stubStore{hits: []Hit{
		{DocumentID: "d1", Score: 0.92, Filename: "rapport_mars.pdf", Filepath: "/ged/finance/rapport_mars.pdf", Excerpt: "Chiffre d'affaires en hausse de 12%."},
		{DocumentID: "d2", Score: 0.81, Filename: "budget.xlsx", Filepath: "/ged/finance/budget.xlsx", Excerpt: "Budget prévisionnel 2026."},
	}}
	e := NewEnricher(store, 0, logger.NewNopLogger())

	result, err := e.Enrich(context.Background(), "résume les finances de mars")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.Text, "résume les finances de mars"), "original query opens the prompt")
	assert.Contains(t, result.Text, "**DOCUMENTS PERTINENTS:**")
	assert.Contains(t, result.Text, "[Document 1: rapport_mars.pdf]")
	assert.Contains(t, result.Text, "[Document 2: budget.xlsx]")
	assert.Contains(t, result.Text, "Chemin: /ged/finance/rapport_mars.pdf")
	assert.Contains(t, result.Text, "**INSTRUCTIONS:**")
	assert.Contains(t, result.Text, "Cite les sources")

	require.Len(t, result.Sources, 2)
	assert.Equal(t, "rapport_mars.pdf", result.Sources[0].Filename)
	assert.Equal(t, 0.92, result.Sources[0].Score)
	assert.Equal(t, "Chiffre d'affaires en hausse de 12%.", result.Sources[0].Snippet)
}

func TestEnrichTruncatesLongExcerpts(t *testing.T) {
	long := strings.Repeat("é", 400)
	store := &stubStore{hits: []Hit{
		{DocumentID: "d1", Score: 0.9, Filename: "long.pdf", Filepath: "/ged/long.pdf", Excerpt: long},
	}}
	e := NewEnricher(store, 0, logger.NewNopLogger())

	result, err := e.Enrich(context.Background(), "question")
	require.NoError(t, err)

	require.Len(t, result.Sources, 1)
	snippet := result.Sources[0].Snippet
	assert.True(t, strings.HasSuffix(snippet, "..."))
	assert.Equal(t, 303, len([]rune(snippet)), "300 runes of excerpt plus ellipsis")
}
