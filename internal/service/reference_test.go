package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMarketReference(t *testing.T) {
	lex := DefaultLexicon()

	tests := []struct {
		name           string
		city           string
		postalCode     string
		arrondissement *int
		wantURL        string
	}{
		{
			name:           "Paris arrondissement pattern",
			city:           "Paris",
			postalCode:     "75011",
			arrondissement: intPtr(11),
			wantURL:        "https://www.meilleursagents.com/prix-immobilier/paris-11eme-arrondissement-75011/",
		},
		{
			name:       "Plain city pattern",
			city:       "Bordeaux",
			postalCode: "33000",
			wantURL:    "https://www.meilleursagents.com/prix-immobilier/bordeaux-33000/",
		},
		{
			name:           "Arrondissement ignored for plain cities",
			city:           "Bordeaux",
			postalCode:     "33000",
			arrondissement: intPtr(3),
			wantURL:        "https://www.meilleursagents.com/prix-immobilier/bordeaux-33000/",
		},
		{
			name:           "Accented city is slugged",
			city:           "Saint-Étienne",
			postalCode:     "42000",
			arrondissement: nil,
			wantURL:        "https://www.meilleursagents.com/prix-immobilier/saint-etienne-42000/",
		},
		{
			name:           "Marseille arrondissement pattern",
			city:           "Marseille",
			postalCode:     "13008",
			arrondissement: intPtr(8),
			wantURL:        "https://www.meilleursagents.com/prix-immobilier/marseille-8eme-arrondissement-13008/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := BuildMarketReference(tt.city, tt.postalCode, tt.arrondissement, lex)
			assert.Equal(t, tt.wantURL, ref.SourceURL)
			assert.Equal(t, tt.city, ref.City)
			assert.Equal(t, tt.postalCode, ref.PostalCode)
			assert.Equal(t, tt.arrondissement, ref.Arrondissement)
		})
	}
}
