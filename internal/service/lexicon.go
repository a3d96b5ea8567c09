package service

import (
	"strings"
)

// Lexicon groups the fixed French keyword lists the pipeline relies on.
// It is injectable configuration data, not control logic: tests and tuning
// swap lists without touching the classifier.
type Lexicon struct {
	// Strong is unambiguous rental-investment vocabulary; a hit is authoritative
	Strong []string

	// MarketSignals is analysis-flavored vocabulary, too generic on its own
	MarketSignals []string

	// NonImmo is anti-signal vocabulary for adjacent domains (dev, vehicles,
	// small talk) that share surface words with real estate
	NonImmo []string

	// DataSignals triggers web grounding on the analysis turn
	DataSignals []string

	// Gazetteer is the fixed list of major cities matched before the generic
	// preposition pattern; entries are stored lowercase
	Gazetteer []string

	// ArrondissementCities are the cities where an arrondissement is required
	// before a postal code, stored folded
	ArrondissementCities []string
}

// DefaultLexicon returns the built-in French vocabulary.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Strong: []string{
			"invest", "investissement", "locatif", "rendement", "rentabilité",
			"cashflow", "cash-flow", "loyer", "loyers", "prix au m2", "prix/m2",
			"prix m2", "prix immobilier", "acheter", "achat", "appartement", "maison",
			"studio", "t1", "t2", "t3", "immeuble", "colocation", "lmnp", "pinel",
			"dpe", "taxe foncière", "charges", "meilleursagents", "prix-immobilier",
			"cap rate", "vacance", "vacance locative",
		},
		MarketSignals: []string{
			"analyse", "marché", "moyenne", "médian", "evolution", "tendance",
			"compar", "quartier", "où investir", "meilleur quartier", "prix", "loyer",
		},
		NonImmo: []string{
			"code", "bug", "javascript", "golang", "api", "react", "typescript",
			"voiture", "auto", "moteur", "pneu", "contrôle technique", "inspection",
			"salut", "bonjour", "merci", "lol",
		},
		DataSignals: []string{
			"source", "données", "chiffres", "meilleursagents", "prix", "loyer", "rendement",
		},
		Gazetteer: []string{
			"marseille", "paris", "lyon", "bordeaux", "toulouse",
			"nantes", "lille", "nice", "strasbourg", "montpellier",
			"rennes", "grenoble", "dijon", "angers", "reims",
		},
		ArrondissementCities: []string{"paris", "marseille", "lyon"},
	}
}

// IntentClassifier decides whether free text is about rental investment.
// Deliberately a keyword heuristic, not an NLU component.
type IntentClassifier struct {
	lex Lexicon
}

// NewIntentClassifier creates a classifier over the given lexicon
func NewIntentClassifier(lex Lexicon) *IntentClassifier {
	return &IntentClassifier{lex: lex}
}

// IsRealEstateIntent applies the two-tier rule: an anti-signal with no
// real-estate signal at all wins; otherwise a strong signal is authoritative,
// and a market signal only counts when backed by price/rent/yield vocabulary.
func (c *IntentClassifier) IsRealEstateIntent(text string) bool {
	if text == "" {
		return false
	}
	t := strings.ToLower(text)

	hasStrong := containsAny(t, c.lex.Strong)
	hasMarket := containsAny(t, c.lex.MarketSignals)
	hasNonImmo := containsAny(t, c.lex.NonImmo)

	if hasNonImmo && !(hasStrong || hasMarket) {
		return false
	}

	return hasStrong || (hasMarket &&
		(strings.Contains(t, "prix") || strings.Contains(t, "loyer") || strings.Contains(t, "rendement")))
}

// WantsMarketData reports whether the raw message asks for sourced figures,
// which flips web grounding on for the analysis turn.
func (c *IntentClassifier) WantsMarketData(message string) bool {
	return containsAny(strings.ToLower(message), c.lex.DataSignals)
}

func containsAny(lowered string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}
