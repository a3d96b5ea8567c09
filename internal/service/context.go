package service

import (
	"strings"

	"core/internal/model"
)

// Context builders turn (history, current message) into the text window fed
// to the extractors and the classifier. History is read-only input; both
// builders work on a bounded slice of the most recent turns.

// RecentContext renders the last maxTurns turns as labelled lines plus the
// current message. Used for intent checks where the assistant's own wording
// is acceptable signal.
func RecentContext(history []model.Message, message string, maxTurns int) string {
	var b strings.Builder
	for _, msg := range lastTurns(history, maxTurns) {
		if msg.Role == model.RoleUser {
			b.WriteString("Utilisateur: ")
		} else {
			b.WriteString("Assistant: ")
		}
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	b.WriteString("Utilisateur: ")
	b.WriteString(message)
	return b.String()
}

// UserOnlyContext concatenates only user-authored turns plus the current
// message. Slot extraction runs on this window so the extractors cannot
// latch onto a city the assistant itself suggested earlier.
func UserOnlyContext(history []model.Message, message string, maxTurns int) string {
	parts := make([]string, 0, maxTurns+1)
	for _, msg := range lastTurns(history, maxTurns) {
		if msg.Role == model.RoleUser {
			parts = append(parts, msg.Content)
		}
	}
	parts = append(parts, message)
	return strings.Join(parts, " ")
}

func lastTurns(history []model.Message, maxTurns int) []model.Message {
	if maxTurns <= 0 || len(history) <= maxTurns {
		return history
	}
	return history[len(history)-maxTurns:]
}
