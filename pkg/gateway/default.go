package gateway

import (
	"fmt"
	"regexp"
	"strings"
)

// ConfidenceDefaults are legacy display constants, not calibrated
// probabilities. They are configuration: callers may override them.
type ConfidenceDefaults struct {
	Greeting float64
	Help     float64
	Generic  float64
}

func DefaultConfidence() ConfidenceDefaults {
	return ConfidenceDefaults{Greeting: 1.0, Help: 1.0, Generic: 0.4}
}

// DefaultResponder produces a local canned answer when every provider failed.
// It is provider-independent, purely in-memory and never fails.
type DefaultResponder struct {
	confidence ConfidenceDefaults
}

func NewDefaultResponder(confidence ConfidenceDefaults) *DefaultResponder {
	return &DefaultResponder{confidence: confidence}
}

var (
	greetingRe = regexp.MustCompile(`(?i)^(bonjour|salut|coucou|bonsoir|hello|hi)\b`)
	helpRe     = regexp.MustCompile(`(?i)\b(aide|help|comment.*(utiliser|marche)|que peux-tu faire)\b`)
)

const helpText = `Je suis un assistant IA qui peut vous aider avec:

1. Recherche de documents - Trouvez rapidement l'information dont vous avez besoin
2. Questions & Réponses - Posez-moi des questions sur le contenu indexé
3. Analyse de documents - Je peux extraire et synthétiser l'information

Pour commencer, posez-moi une question sur vos documents ou recherchez un sujet spécifique.`

// Respond builds a canned reply from the last user message. Always succeeds.
func (r *DefaultResponder) Respond(req *Request) *GenerationResult {
	return r.RespondWith(req, r.confidence)
}

// RespondWith is Respond with per-call confidences, used when the caller
// carries them in a runtime snapshot.
func (r *DefaultResponder) RespondWith(req *Request, confidence ConfidenceDefaults) *GenerationResult {
	message := lastUserMessage(req)

	switch {
	case greetingRe.MatchString(message):
		return &GenerationResult{
			Response:   "Bonjour ! Je suis votre assistant documentaire. Comment puis-je vous aider aujourd'hui ?",
			Confidence: confidence.Greeting,
			Provider:   "default",
		}
	case helpRe.MatchString(message):
		return &GenerationResult{
			Response:   helpText,
			Confidence: confidence.Help,
			Provider:   "default",
		}
	default:
		return &GenerationResult{
			Response: fmt.Sprintf("Je n'ai pas pu joindre les services de génération pour répondre à %q. "+
				"Voici ce que je peux faire localement : rechercher dans vos documents indexés, "+
				"afficher l'historique de conversation, ou réessayer dans un instant.", truncate(message, 120)),
			Confidence: confidence.Generic,
			Provider:   "default",
		}
	}
}

func lastUserMessage(req *Request) string {
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			return req.Messages[i].Content
		}
	}
	return ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}
