package service

import (
	"testing"

	"core/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRecentContext(t *testing.T) {
	history := []model.Message{
		{Role: model.RoleUser, Content: "bonjour"},
		{Role: model.RoleAssistant, Content: "Bonjour, quelle ville ?"},
	}

	got := RecentContext(history, "Paris", 8)
	want := "Utilisateur: bonjour\nAssistant: Bonjour, quelle ville ?\nUtilisateur: Paris"
	assert.Equal(t, want, got)
}

func TestRecentContextWindow(t *testing.T) {
	history := []model.Message{
		{Role: model.RoleUser, Content: "premier"},
		{Role: model.RoleUser, Content: "deuxième"},
		{Role: model.RoleUser, Content: "troisième"},
	}

	got := RecentContext(history, "quatrième", 2)
	assert.NotContains(t, got, "premier")
	assert.Contains(t, got, "deuxième")
	assert.Contains(t, got, "troisième")
	assert.Contains(t, got, "quatrième")
}

func TestUserOnlyContextExcludesAssistant(t *testing.T) {
	history := []model.Message{
		{Role: model.RoleUser, Content: "je veux investir"},
		{Role: model.RoleAssistant, Content: "Pourquoi pas à Bordeaux ?"},
		{Role: model.RoleUser, Content: "plutôt dans le sud"},
	}

	got := UserOnlyContext(history, "avec un petit budget", 8)
	assert.Equal(t, "je veux investir plutôt dans le sud avec un petit budget", got)
	assert.NotContains(t, got, "Bordeaux")
}

func TestUserOnlyContextEmptyHistory(t *testing.T) {
	assert.Equal(t, "Paris 11e", UserOnlyContext(nil, "Paris 11e", 8))
}
