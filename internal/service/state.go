package service

import (
	"core/internal/model"
	"core/internal/textutil"
)

// EvaluateState maps extracted slots to the conversation state. It is a pure
// function recomputed on every turn, which is what lets a user correct an
// earlier slot later in the conversation without any transition bookkeeping.
func EvaluateState(slots model.ExtractedSlots, lex Lexicon) model.ConversationState {
	switch {
	case slots.City == "":
		return model.StateNeedCity
	case IsArrondissementCity(slots.City, lex) && slots.Arrondissement == nil:
		return model.StateNeedArrondissement
	case slots.PostalCode == "":
		return model.StateNeedPostalCode
	default:
		return model.StateReady
	}
}

// IsArrondissementCity reports whether the city requires an arrondissement
// before a postal code can pin down a market page.
func IsArrondissementCity(city string, lex Lexicon) bool {
	folded := textutil.Fold(city)
	for _, c := range lex.ArrondissementCities {
		if folded == c {
			return true
		}
	}
	return false
}
