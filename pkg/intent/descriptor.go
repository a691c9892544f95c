package intent

import (
	"regexp"

	"docucortex-be/internal/constant"
)

// Descriptor declares the static signals of one intent. The table below is
// compiled once at package load; classification never mutates it.
type Descriptor struct {
	Name            string
	Description     string
	Keywords        []string
	Patterns        []*regexp.Regexp
	AntiPatterns    []*regexp.Regexp
	DocumentTypes   []string
	Weight          float64
	RequiresContext bool
}

// Descriptors is the fixed intent taxonomy, in static priority order: when two
// intents tie on score, the one listed first wins. Never rely on map iteration.
var Descriptors = []Descriptor{
	{
		Name:        constant.IntentDocumentSearch,
		Description: "Recherche de documents dans le système GED",
		Keywords:    []string{"trouve", "cherche", "recherche", "affiche", "montre", "liste", "voir", "procédure", "document", "fichier"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(trouve|cherche|recherche|affiche|montre).*\b(document|fichier|rapport|pdf|excel|word|dossier)\b`),
			regexp.MustCompile(`(?i)\b(dans|sur)\s+(le|la|les)?\s*(serveur|réseau|dossier|répertoire|drive)`),
			regexp.MustCompile(`(?i)(rapport|facture|contrat|devis|compte-rendu|procès-verbal).*\b(de|du|des)\b`),
			regexp.MustCompile(`(?i)\b(pdf|xlsx?|docx?|pptx?).*\b(de|du|des|contenant)\b`),
			regexp.MustCompile(`(?i)(procédure|procedure|comment faire|tutoriel|guide|mode d'emploi|marche à suivre)`),
			regexp.MustCompile(`(?i)(où trouver|où est|existe.+document|documentation)`),
			regexp.MustCompile(`(?i)(formation|manuel|instructions?|étapes?)`),
		},
		DocumentTypes: []string{"pdf", "xlsx", "docx", "rapport", "facture", "contrat", "devis", "procedure", "guide"},
		Weight:        1.3,
	},
	{
		Name:        constant.IntentDocumentAnalysis,
		Description: "Analyse ou résumé d'un document spécifique",
		Keywords:    []string{"résume", "analyse", "explique", "compare", "synthèse", "extrait"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(résume|analyse|explique|compare|synthétise).*\b(ce|cette|le|la|les)\b`),
			regexp.MustCompile(`(?i)\b(résumé|synthèse|analyse|comparaison|extrait)\s+(de|du)\b`),
			regexp.MustCompile(`(?i)que (dit|contient|indique|mentionne)`),
		},
		Weight:          1.1,
		RequiresContext: true,
	},
	{
		Name:        constant.IntentAppCommand,
		Description: "Commande applicative (ouvrir, lister, créer dans l'app)",
		Keywords:    []string{"ouvre", "lance", "affiche", "liste", "crée", "supprime", "modifie"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(ouvre|lance|affiche|liste|montre)\s+(les?\s+)?(prêt|ordinateur|serveur|session|utilisateur|technicien)`),
			regexp.MustCompile(`(?i)(créer|ajouter|supprimer|modifier)\s+(un|une)\s+(prêt|ordinateur|utilisateur)`),
		},
		Weight: 1.0,
	},
	{
		Name:        constant.IntentWebSearch,
		Description: "Recherche web pour informations temps réel",
		Keywords:    []string{"météo", "actualité", "news", "résultat", "match", "score", "aujourd'hui", "hier"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(météo|weather|température)\b`),
			regexp.MustCompile(`(?i)\b(actualité|news|nouvelles)\b`),
			regexp.MustCompile(`(?i)\b(match|résultat|score|ligue|champions|coupe)\b.*\b(hier|aujourd'hui|ce soir)\b`),
			regexp.MustCompile(`(?i)\b(cours|bourse|action|bitcoin|crypto)`),
		},
		Weight: 1.0,
	},
	{
		Name:        constant.IntentFactualQuestion,
		Description: "Question factuelle nécessitant une réponse générale (pas de documents)",
		Keywords:    []string{"quelle", "quel", "qui", "combien", "quand", "pourquoi", "comment", "définition", "expliquer"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(quelle?|qui est|combien|quand|où|pourquoi|comment)`),
			regexp.MustCompile(`(?i)(météo|température|heure actuelle|date du jour|capitale|définition)`),
			regexp.MustCompile(`(?i)(qu'est-ce que|c'est quoi|expliquer)`),
		},
		AntiPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(document|fichier|rapport|pdf|excel|dossier|serveur)`),
		},
		Weight: 1.0,
	},
	{
		Name:        constant.IntentConversation,
		Description: "Conversation générale ou continuation de contexte",
		Keywords:    []string{"merci", "ok", "oui", "non", "peut-être", "continue", "et puis", "explique-moi plus"},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^(merci|ok|d'accord|oui|non|peut-être|bien|super|génial)`),
			regexp.MustCompile(`(?i)\b(explique-moi|dis-moi|raconte|détaille|continue|et puis|et alors|pourquoi)\b`),
			regexp.MustCompile(`(?i)^(le|la|les|ce|cette|ces|ça)\b`),
		},
		Weight:          0.8,
		RequiresContext: true,
	},
}

// referentialPronounRe detects messages that open with a back-reference to an
// earlier result ("le premier", "celui-ci", ...).
var referentialPronounRe = regexp.MustCompile(`(?i)^(le|la|les|ce|cette|ces|ça|celui|celle)\b`)
