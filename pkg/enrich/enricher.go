package enrich

import (
	"context"
	"fmt"
	"strings"

	"docucortex-be/internal/pkg/logger"
)

// Hit is a single ranked result from the document store.
type Hit struct {
	DocumentID string
	Score      float64
	Excerpt    string
	Filename   string
	Filepath   string
}

// Source is the provenance entry surfaced to the caller alongside the
// generated answer, and persisted with the conversation record.
type Source struct {
	Filename string  `json:"filename"`
	Filepath string  `json:"filepath"`
	Score    float64 `json:"score"`
	Snippet  string  `json:"snippet"`
}

// EnrichedPrompt carries the augmented text to send to the model.
// Sources is empty exactly when no augmentation happened, in which
// case Text is the original query untouched.
type EnrichedPrompt struct {
	Text    string
	Sources []Source
}

// DocumentStore is the retrieval collaborator.
type DocumentStore interface {
	Search(ctx context.Context, query string, limit int) ([]Hit, error)
}

const (
	defaultLimit     = 3
	maxExcerptLength = 300
)

type Enricher struct {
	store  DocumentStore
	limit  int
	logger logger.ILogger
}

// NewEnricher builds an enricher retrieving up to limit excerpts per query.
// A non-positive limit falls back to the default of 3.
func NewEnricher(store DocumentStore, limit int, log logger.ILogger) *Enricher {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Enricher{store: store, limit: limit, logger: log}
}

// Enrich retrieves relevant document excerpts for the query and folds them
// into a single grounded prompt. A store failure degrades to the plain
// query rather than failing the turn.
func (e *Enricher) Enrich(ctx context.Context, query string) (*EnrichedPrompt, error) {
	hits, err := e.store.Search(ctx, query, e.limit)
	if err != nil {
		e.logger.Warn("Enrich", "Document search failed, continuing without context", map[string]interface{}{
			"error": err.Error(),
		})
		return &EnrichedPrompt{Text: query}, nil
	}
	if len(hits) == 0 {
		return &EnrichedPrompt{Text: query}, nil
	}

	sources := make([]Source, 0, len(hits))
	var b strings.Builder
	b.WriteString(query)
	b.WriteString("\n\n**DOCUMENTS PERTINENTS:**\n\n")
	for i, hit := range hits {
		excerpt := truncateExcerpt(hit.Excerpt, maxExcerptLength)
		fmt.Fprintf(&b, "[Document %d: %s]\n", i+1, hit.Filename)
		fmt.Fprintf(&b, "Chemin: %s\n", hit.Filepath)
		b.WriteString(excerpt)
		b.WriteString("\n---\n\n")

		sources = append(sources, Source{
			Filename: hit.Filename,
			Filepath: hit.Filepath,
			Score:    hit.Score,
			Snippet:  excerpt,
		})
	}
	b.WriteString("**INSTRUCTIONS:**\n")
	b.WriteString("- Appuie ta réponse sur les documents fournis ci-dessus\n")
	b.WriteString("- Cite les sources utilisées (nom du fichier)\n")

	e.logger.Debug("Enrich", "Prompt enriched with document context", map[string]interface{}{
		"hits": len(hits),
	})

	return &EnrichedPrompt{Text: b.String(), Sources: sources}, nil
}

func truncateExcerpt(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}
