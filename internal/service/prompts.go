package service

import (
	"fmt"
)

// French prompt templates driving the generative backend. The wording is
// part of the product behavior: every state-specific instruction restates
// the system framing so a single-prompt backend stays on rails.

const systemPrompt = `Tu es un assistant IA expert en investissement immobilier locatif en France.

**Ton rôle :**
- Conseiller sur l'investissement locatif (rentabilité, choix de ville, fiscalité, financement)
- Analyser des marchés immobiliers locaux avec des données chiffrées
- Aider à choisir une ville d'investissement

**Important :**
- Toujours structurer tes réponses avec des titres (##), des listes, des tableaux markdown si pertinent
- Aérer avec des sauts de ligne entre sections
- Être concret et pédagogique
- Si l'utilisateur ne sait pas où investir, guide-le vers une ville qu'il connaît bien

**Ce que tu NE fais PAS :**
- Aide aux devoirs, rédaction générale, traduction, etc.
- Sujets hors investissement immobilier

Reste dans ton domaine d'expertise : l'investissement locatif.`

// PromptOffTopic gently steers an off-domain conversation back
func PromptOffTopic(message string) string {
	return fmt.Sprintf(`%s

L'utilisateur te parle mais ne semble pas poser une question sur l'investissement locatif.
Réponds brièvement et naturellement, puis rappelle ton domaine d'expertise.

Message utilisateur : "%s"`, systemPrompt, message)
}

// PromptAskCity answers generally and asks for an investment city
func PromptAskCity(message string) string {
	return fmt.Sprintf(`%s

L'utilisateur s'intéresse à l'investissement locatif mais n'a pas encore précisé de ville.

**Ta mission :**
1. Réponds d'abord à sa question de manière générale et utile
2. Propose-lui de l'aider à choisir une ville d'investissement
3. Conseil important : suggère d'investir dans une ville qu'il connaît bien (proximité, réseau local)
4. Donne 2-3 exemples de villes attractives pour investir (grandes et moyennes villes)

Structure ta réponse avec des titres markdown (##) et aère bien.

Question utilisateur : "%s"`, systemPrompt, message)
}

// PromptAskArrondissement asks which arrondissement of the city is targeted
func PromptAskArrondissement(city, message string) string {
	return fmt.Sprintf(`%s

L'utilisateur vise **%s** pour investir mais n'a pas précisé l'arrondissement.

Réponds de manière structurée :
- Explique brièvement pourquoi l'arrondissement est important
- Demande quel arrondissement l'intéresse
- Donne 2-3 exemples d'arrondissements attractifs pour investir

Message utilisateur : "%s"`, systemPrompt, city, message)
}

// PromptAskPostalCode asks for the postal code after automatic resolution failed
func PromptAskPostalCode(city string, arrondissement *int, message string) string {
	locality := city
	if arrondissement != nil {
		locality = fmt.Sprintf("%s %de arrondissement", city, *arrondissement)
	}
	return fmt.Sprintf(`%s

L'utilisateur vise **%s** mais je n'ai pas trouvé automatiquement le code postal.

Demande-lui le code postal de manière naturelle et concise.

Message utilisateur : "%s"`, systemPrompt, locality, message)
}

// PromptCityAnalysis is the mission prompt for the full market analysis
func PromptCityAnalysis(city string, arrondissement *int, postalCode, sourceURL, message string) string {
	locality := city
	if arrondissement != nil {
		locality = fmt.Sprintf("%s %de arrondissement", city, *arrondissement)
	}
	return fmt.Sprintf(`%s

**Mission :** Analyse approfondie du marché immobilier de **%s** (%s)

**Source de données :** %s

**Analyse attendue :**

## 📊 Données du marché
- Prix moyen au m² (appartement et maison si dispo)
- Loyer moyen au m²
- Rendement brut estimé : (loyer_m2 * 12 / prix_m2) * 100

## 🏘️ Meilleurs quartiers
- Identifie les quartiers les plus intéressants pour investir
- Explique pourquoi (prix, demande locative, évolution)

## 💡 Recommandations
- 3 conseils concrets et actionnables
- Type de bien à privilégier
- Points de vigilance

**Format de réponse :**
- Structure avec titres markdown (##)
- Tableaux si pertinent pour comparer des données
- Listes à puces
- Aération entre sections
- Emojis pour clarté

Question utilisateur : "%s"`, systemPrompt, locality, postalCode, sourceURL, message)
}

// AnalysisSchema is the fixed structured-output schema for the READY turn
func AnalysisSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"analysis": map[string]any{
				"type":        "string",
				"description": "Analyse détaillée pour investissement locatif",
			},
			"price_m2_avg": map[string]any{
				"type":        "number",
				"description": "Prix moyen au m² si disponible",
			},
			"rent_m2_avg": map[string]any{
				"type":        "number",
				"description": "Loyer moyen au m² si disponible",
			},
			"gross_yield": map[string]any{
				"type":        "number",
				"description": "Rendement brut estimé en pourcentage",
			},
			"best_neighborhoods": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Meilleurs quartiers identifiés",
			},
			"recommendations": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Recommandations concrètes",
			},
		},
		"additionalProperties": true,
	}
}
