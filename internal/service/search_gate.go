package service

import (
	"regexp"
	"strings"
)

// smallTalkRe matches greetings and acknowledgements that never warrant
// a document lookup.
var smallTalkRe = regexp.MustCompile(`(?i)^\s*(bonjour|salut|coucou|bonsoir|hello|hi|hey|merci|ok|d'accord|super|parfait|génial|top|cool|oui|non|ça va|au revoir|bye|à bientôt|bonne journée)\s*[!.?]*\s*$`)

// documentKeywords flags messages that talk about the document base.
var documentKeywords = []string{
	"document", "fichier", "rapport", "facture", "contrat", "dossier",
	"pdf", "docx", "excel", "présentation", "note", "compte rendu",
	"procédure", "manuel",
}

// questionWords are French interrogatives.
var questionWords = []string{
	"qui", "que", "quoi", "quand", "où", "comment", "pourquoi",
	"combien", "quel", "quelle", "quels", "quelles", "est-ce",
}

// needsDocumentSearch decides whether a message justifies a retrieval
// round-trip before generation. The rules run in order and the first
// match wins.
func needsDocumentSearch(message string) bool {
	lower := strings.ToLower(strings.TrimSpace(message))

	if smallTalkRe.MatchString(lower) {
		return false
	}

	for _, keyword := range documentKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	words := strings.Fields(lower)
	if len(words) > 5 {
		for _, qw := range questionWords {
			for _, w := range words {
				if strings.Trim(w, "?!.,;:'\"") == qw || strings.HasPrefix(w, qw+"-") {
					return true
				}
			}
		}
	}

	if len(words) < 3 {
		return false
	}

	return true
}
