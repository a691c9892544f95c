package nlp

import (
	"context"
	"regexp"
	"strings"
)

// Entity is a fragment of the message carrying domain meaning (a file type,
// a date, a proper noun).
type Entity struct {
	Text  string
	Label string // "doc_type", "date", "proper_noun"
}

// EntityExtractor is the NLP collaborator contract. Implementations may fail;
// callers treat extraction as best-effort signal.
type EntityExtractor interface {
	Extract(ctx context.Context, text string) ([]Entity, error)
}

// Extractor is a lightweight rule-based extractor. It covers the entity kinds
// the intent classifier actually consumes: document-type vocabulary, dates and
// capitalized tokens.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

var _ EntityExtractor = &Extractor{}

var (
	docTypeRe = regexp.MustCompile(`(?i)\b(pdf|xlsx?|docx?|pptx?|csv|rapport|facture|contrat|devis|procédure|procedure|guide|manuel|compte-rendu|procès-verbal)s?\b`)
	dateRe    = regexp.MustCompile(`(?i)\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|janvier|février|mars|avril|mai|juin|juillet|août|septembre|octobre|novembre|décembre|\d{4})\b`)
	properRe  = regexp.MustCompile(`\b\p{Lu}[\p{Ll}]{2,}\b`)
)

func (e *Extractor) Extract(ctx context.Context, text string) ([]Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entities []Entity
	seen := make(map[string]bool)

	add := func(matches []string, label string) {
		for _, m := range matches {
			key := label + ":" + strings.ToLower(m)
			if seen[key] {
				continue
			}
			seen[key] = true
			entities = append(entities, Entity{Text: m, Label: label})
		}
	}

	add(docTypeRe.FindAllString(text, -1), "doc_type")
	add(dateRe.FindAllString(text, -1), "date")

	// Skip the sentence-initial word: capitalization there carries no signal.
	rest := text
	if idx := strings.IndexAny(text, " \t"); idx > 0 {
		rest = text[idx+1:]
	}
	add(properRe.FindAllString(rest, -1), "proper_noun")

	return entities, nil
}
