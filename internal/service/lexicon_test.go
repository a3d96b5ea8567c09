package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRealEstateIntent(t *testing.T) {
	classifier := NewIntentClassifier(DefaultLexicon())

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "Strong investment vocabulary",
			text: "Quel rendement locatif viser à Bordeaux ?",
			want: true,
		},
		{
			name: "Vehicle question is rejected",
			text: "Comment réparer un pneu de voiture ?",
			want: false,
		},
		{
			name: "Pure small talk is rejected",
			text: "bonjour",
			want: false,
		},
		{
			name: "Anti-signal loses when a strong signal is present",
			text: "bonjour, je veux investir",
			want: true,
		},
		{
			name: "Market signal alone is not enough",
			text: "une analyse du marché",
			want: false,
		},
		{
			name: "Market signal backed by price vocabulary",
			text: "une analyse du prix dans ce quartier",
			want: true,
		},
		{
			name: "Dev question with market-sounding words",
			text: "comment comparer deux apis en golang",
			want: false,
		},
		{
			name: "Empty text",
			text: "",
			want: false,
		},
		{
			name: "Uppercase strong signal",
			text: "JE VEUX UN APPARTEMENT",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.IsRealEstateIntent(tt.text))
		})
	}
}

func TestWantsMarketData(t *testing.T) {
	classifier := NewIntentClassifier(DefaultLexicon())

	assert.True(t, classifier.WantsMarketData("donne-moi les chiffres du marché"))
	assert.True(t, classifier.WantsMarketData("quel est le prix moyen ?"))
	assert.False(t, classifier.WantsMarketData("merci beaucoup"))
}

func TestIsRealEstateIntentCustomLexicon(t *testing.T) {
	lex := Lexicon{
		Strong:  []string{"château"},
		NonImmo: []string{"jeu"},
	}
	classifier := NewIntentClassifier(lex)

	assert.True(t, classifier.IsRealEstateIntent("je cherche un château"))
	assert.False(t, classifier.IsRealEstateIntent("un jeu vidéo"))
}
