package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	nonSlugRunes    = regexp.MustCompile(`[^a-z0-9]+`)
)

// Fold lowercases a string and strips diacritics, so "Àngers" and "angers"
// compare equal. Every city-name comparison in the pipeline goes through it.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Slugify turns a city name into a URL slug: fold, collapse every run of
// non [a-z0-9] into a single hyphen, trim leading/trailing hyphens.
func Slugify(s string) string {
	slug := nonSlugRunes.ReplaceAllString(Fold(s), "-")
	return strings.Trim(slug, "-")
}

// Capitalize uppercases the first rune, matching the canonical form used
// for gazetteer cities.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
