package service

import (
	"fmt"

	"core/internal/model"
	"core/internal/textutil"
)

// MarketReferenceBase is the fixed locator template the city/postal slug is
// embedded into. The link is a hint handed to the generative backend, never
// fetched by this service, and never validated for existence.
const MarketReferenceBase = "https://www.meilleursagents.com/prix-immobilier/"

// BuildMarketReference deterministically builds the canonical market-data
// locator for a resolved locality. Arrondissement only changes the pattern
// for the fixed arrondissement-bearing cities.
func BuildMarketReference(city, postalCode string, arrondissement *int, lex Lexicon) model.MarketReference {
	slug := textutil.Slugify(city)

	var url string
	if arrondissement != nil && IsArrondissementCity(city, lex) {
		url = fmt.Sprintf("%s%s-%deme-arrondissement-%s/", MarketReferenceBase, slug, *arrondissement, postalCode)
	} else {
		url = fmt.Sprintf("%s%s-%s/", MarketReferenceBase, slug, postalCode)
	}

	return model.MarketReference{
		City:           city,
		PostalCode:     postalCode,
		Arrondissement: arrondissement,
		SourceURL:      url,
	}
}
