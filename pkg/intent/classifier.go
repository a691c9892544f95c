package intent

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"docucortex-be/internal/constant"
	"docucortex-be/internal/pkg/logger"
	"docucortex-be/pkg/nlp"
)

// Alternate is a runner-up intent with its score.
type Alternate struct {
	Intent string  `json:"intent"`
	Score  float64 `json:"score"`
}

// ClassificationResult is the full outcome of one classification. Reasoning is
// part of the contract (consumed by the envelope and by tests), not a log line.
type ClassificationResult struct {
	Intent      string      `json:"intent"`
	Confidence  float64     `json:"confidence"`
	Alternates  []Alternate `json:"alternates"`
	Reasoning   []string    `json:"reasoning"`
	Description string      `json:"description"`
}

// Classifier scores the fixed taxonomy against a message. Scoring is
// deterministic for a given (query, SessionMemory snapshot); the only side
// effect is the memory update after the winner is picked.
type Classifier struct {
	extractor nlp.EntityExtractor
	memory    *Memory
	logger    logger.ILogger
}

func NewClassifier(extractor nlp.EntityExtractor, memory *Memory, log logger.ILogger) *Classifier {
	return &Classifier{
		extractor: extractor,
		memory:    memory,
		logger:    log,
	}
}

// Memory exposes the classifier's session memory for lifecycle management.
func (c *Classifier) Memory() *Memory {
	return c.memory
}

// Classify scores the message, records the winner in session memory and
// returns the result with top-2 alternates.
func (c *Classifier) Classify(ctx context.Context, sessionID, query string) *ClassificationResult {
	snap, _ := c.memory.Snapshot(sessionID)

	// NLP is best-effort: a dead collaborator contributes zero signal.
	var entities []nlp.Entity
	if c.extractor != nil {
		var err error
		entities, err = c.extractor.Extract(ctx, query)
		if err != nil {
			c.logger.Warn("Intent", "Entity extraction unavailable", map[string]interface{}{"error": err.Error()})
			entities = nil
		}
	}

	result := Score(query, snap, entities)

	c.memory.Update(SessionMemory{
		SessionID:        sessionID,
		LastQuery:        query,
		LastIntent:       result.Intent,
		HasSearchContext: snap.HasSearchContext,
	})

	c.logger.Info("Intent", "Classified", map[string]interface{}{
		"session_id": sessionID,
		"intent":     result.Intent,
		"confidence": result.Confidence,
		"reasoning":  result.Reasoning,
	})

	return result
}

type scored struct {
	rank      int // position in the static table, lower wins ties
	intent    string
	desc      string
	score     float64
	reasoning []string
}

// Score is the pure scoring core: identical inputs produce identical output.
func Score(query string, snap SessionMemory, entities []nlp.Entity) *ClassificationResult {
	lower := strings.ToLower(strings.TrimSpace(query))

	results := make([]scored, 0, len(Descriptors))
	for rank, d := range Descriptors {
		score, reasoning := scoreDescriptor(lower, query, d, snap, entities)
		results = append(results, scored{rank: rank, intent: d.Name, desc: d.Description, score: score, reasoning: reasoning})
	}

	// Highest score first; ties resolved by static table order.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].rank < results[j].rank
	})

	best := results[0]
	alternates := make([]Alternate, 0, 2)
	for _, r := range results[1:] {
		if len(alternates) == 2 {
			break
		}
		alternates = append(alternates, Alternate{Intent: r.intent, Score: r.score})
	}

	return &ClassificationResult{
		Intent:      best.intent,
		Confidence:  best.score,
		Alternates:  alternates,
		Reasoning:   best.reasoning,
		Description: best.desc,
	}
}

func scoreDescriptor(lower, original string, d Descriptor, snap SessionMemory, entities []nlp.Entity) (float64, []string) {
	var score float64
	var reasoning []string

	// 1. Keyword overlap (max +0.20)
	var keywordMatches []string
	for _, kw := range d.Keywords {
		if strings.Contains(lower, kw) {
			keywordMatches = append(keywordMatches, kw)
		}
	}
	if len(keywordMatches) > 0 {
		delta := float64(len(keywordMatches)) / float64(len(d.Keywords)) * 0.20
		score += delta
		reasoning = append(reasoning, fmt.Sprintf("Keywords: %s (+%.0f%%)", strings.Join(keywordMatches, ", "), delta*100))
	}

	// 2. Pattern matching (max +0.30)
	patternMatches := 0
	for _, p := range d.Patterns {
		if p.MatchString(original) {
			patternMatches++
		}
	}
	if patternMatches > 0 {
		ratio := float64(patternMatches) / float64(len(d.Patterns))
		if ratio > 1.0 {
			ratio = 1.0
		}
		delta := ratio * 0.30
		score += delta
		reasoning = append(reasoning, fmt.Sprintf("Patterns: %d match(es) (+%.0f%%)", patternMatches, delta*100))
	}

	// 3. Anti-pattern collapses the keyword/pattern signal
	for _, p := range d.AntiPatterns {
		if p.MatchString(original) {
			score *= 0.3
			reasoning = append(reasoning, "Anti-pattern détecté (-70%)")
			break
		}
	}

	// 4. Entity bonus (+0.20) when the NLP collaborator saw a known doc type
	if len(entities) > 0 && len(d.DocumentTypes) > 0 {
		if entityMatchesDocType(entities, d.DocumentTypes) {
			score += 0.20
			reasoning = append(reasoning, "NLP: Type document détecté (+20%)")
		}
	}

	// 5. Context continuity
	if d.RequiresContext {
		if snap.LastIntent != "" && snap.HasSearchContext {
			if snap.LastIntent == constant.IntentDocumentSearch && d.Name == constant.IntentDocumentAnalysis {
				score += 0.20
				reasoning = append(reasoning, "Contexte: Continuation de recherche (+20%)")
			} else if d.Name == constant.IntentConversation {
				score += 0.15
				reasoning = append(reasoning, "Contexte: Conversation en cours (+15%)")
			}
		} else if !snap.HasSearchContext {
			score *= 0.5
			reasoning = append(reasoning, "Contexte: Manquant (-50%)")
		}
	}

	// 6. Referential pronoun bonus
	if d.Name == constant.IntentConversation || d.Name == constant.IntentDocumentAnalysis {
		if referentialPronounRe.MatchString(original) && snap.HasSearchContext {
			score += 0.10
			reasoning = append(reasoning, "Référence contextuelle (+10%)")
		}
	}

	// 7. Short messages lean conversational. Counted in runes, accented
	// French must not inflate the length.
	if d.Name == constant.IntentConversation && utf8.RuneCountInString(original) < 20 {
		score += 0.05
		reasoning = append(reasoning, "Requête courte: conversation probable (+5%)")
	}

	// 8. Static intent weight
	score *= d.Weight
	if d.Weight != 1.0 {
		reasoning = append(reasoning, fmt.Sprintf("Poids intent: x%.1f", d.Weight))
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}

	return score, reasoning
}

func entityMatchesDocType(entities []nlp.Entity, docTypes []string) bool {
	for _, t := range docTypes {
		for _, e := range entities {
			if strings.Contains(strings.ToLower(e.Text), t) {
				return true
			}
		}
	}
	return false
}
