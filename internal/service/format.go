package service

import (
	"fmt"
	"math"
	"strings"
)

// NormalizeReply turns whatever the generative backend returned into the
// reply text. A non-empty "analysis" string is trusted as the complete,
// already-formatted reply; otherwise a fallback reply is assembled from the
// numeric and list fields. Non-finite or non-numeric values are omitted,
// never rendered as NaN or null.
func NormalizeReply(result *GenerateResult) string {
	if result == nil {
		return ""
	}
	if result.Structured == nil {
		return result.Text
	}

	if analysis, ok := result.Structured["analysis"].(string); ok && analysis != "" {
		return analysis
	}

	var b strings.Builder
	b.WriteString("## 📊 Analyse du marché\n\n")

	price, hasPrice := safeNumber(result.Structured["price_m2_avg"])
	rent, hasRent := safeNumber(result.Structured["rent_m2_avg"])
	yield, hasYield := safeNumber(result.Structured["gross_yield"])

	if hasPrice || hasRent || hasYield {
		b.WriteString("| Indicateur | Valeur |\n|------------|--------|\n")
		if hasPrice {
			fmt.Fprintf(&b, "| Prix moyen au m² | %d € |\n", int(math.Round(price)))
		}
		if hasRent {
			fmt.Fprintf(&b, "| Loyer moyen au m² | %.2f €/mois |\n", rent)
		}
		if hasYield {
			fmt.Fprintf(&b, "| Rendement brut | %.2f%% |\n", yield)
		}
		b.WriteString("\n")
	}

	if neighborhoods := stringList(result.Structured["best_neighborhoods"]); len(neighborhoods) > 0 {
		b.WriteString("## 🏘️ Meilleurs quartiers\n\n")
		for _, n := range neighborhoods {
			fmt.Fprintf(&b, "- %s\n", n)
		}
		b.WriteString("\n")
	}

	if recommendations := stringList(result.Structured["recommendations"]); len(recommendations) > 0 {
		b.WriteString("## 💡 Recommandations\n\n")
		for i, r := range recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, r)
		}
	}

	return b.String()
}

// safeNumber accepts only finite numeric values
func safeNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// stringList keeps the string elements of a decoded JSON array
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
