package service

import "docucortex-be/internal/constant"

// buildSuggestions proposes follow-ups when the model's confidence is
// low, so the user can steer the next turn.
func buildSuggestions(intent string, hasSources bool) []string {
	switch intent {
	case constant.IntentDocumentSearch:
		if hasSources {
			return []string{
				"Résume le premier document",
				"Affiche plus de résultats",
				"Recherche avec d'autres mots-clés",
			}
		}
		return []string{
			"Reformulez avec le nom du fichier",
			"Précisez le type de document (PDF, Excel...)",
			"Indexez de nouveaux documents",
		}
	case constant.IntentDocumentAnalysis:
		return []string{
			"Recherchez d'abord un document",
			"Précisez quel document analyser",
		}
	case constant.IntentFactualQuestion:
		return []string{
			"Reformulez votre question",
			"Ajoutez des détails ou un contexte",
		}
	default:
		return []string{
			"Posez une question sur vos documents",
			"Tapez 'aide' pour voir mes capacités",
		}
	}
}
