package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	postalCodeRe = regexp.MustCompile(`\b(\d{5})\b`)

	// 1-20, optionally followed by an ordinal marker and/or "arrondissement"
	arrondissementRe = regexp.MustCompile(`\b(1?\d|20)\s*(?:e|eme|ème)?\s*(?:arrondissement)?\b`)

	// "à <ville>", "dans <ville>"... the capture is trimmed at the first
	// sentence-ending punctuation by the caller
	cityPrepositionRe = regexp.MustCompile(`(?i)(?:^|[\s,;:])(?:à|a|dans|sur|vers)\s+([a-zA-ZÀ-ÖØ-öø-ÿ'\- ]{2,40})`)

	citySentenceEnd = regexp.MustCompile(`[,.!?]`)
)

// ExtractPostalCode returns the first run of five consecutive digits bounded
// by word boundaries, or "" when none is present. Any 5-digit token matches;
// a price like "75000 €" false-positives. Known heuristic limitation.
func ExtractPostalCode(text string) string {
	match := postalCodeRe.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

// ExtractArrondissement returns an arrondissement number in [1,20] found in
// the text ("11", "11e", "3 ème arrondissement"), or 0 when absent.
func ExtractArrondissement(text string) int {
	match := arrondissementRe.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n < 1 || n > 20 {
		return 0
	}
	return n
}

// ExtractCityGuess pulls a city name out of free text. The gazetteer match
// runs first so that a known city wins over whatever noun happens to follow
// a preposition; names are compared folded (case- and accent-insensitive).
// Returns "" when no guess survives.
func ExtractCityGuess(text string, gazetteer []string) string {
	folded := Fold(text)

	for _, city := range gazetteer {
		if strings.Contains(folded, Fold(city)) {
			return Capitalize(city)
		}
	}

	match := cityPrepositionRe.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	city := strings.TrimSpace(citySentenceEnd.Split(match[1], 2)[0])
	if len([]rune(city)) < 2 {
		return ""
	}
	return city
}
