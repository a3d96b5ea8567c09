package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"core/internal/config"
	"core/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGenerator records every request and plays back a canned result
type fakeGenerator struct {
	requests []GenerateRequest
	result   *GenerateResult
	err      error
}

func (f *fakeGenerator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &GenerateResult{Text: "réponse"}, nil
}

// fakeResolver returns a fixed postal code and records the queried city
type fakeResolver struct {
	code   string
	cities []string
}

func (f *fakeResolver) ResolvePostalCode(ctx context.Context, city string) string {
	f.cities = append(f.cities, city)
	return f.code
}

func newTestChatService(gen *fakeGenerator, geo *fakeResolver) *ChatService {
	cfg := &config.ChatConfig{MaxTurns: 8, GroundingTurns: 6}
	return NewChatService(gen, geo, DefaultLexicon(), cfg, zap.NewNop())
}

func TestRespondAsksForCity(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestChatService(gen, &fakeResolver{})

	resp, err := svc.Respond(context.Background(), &model.ChatRequest{Message: "Je veux investir"})
	require.NoError(t, err)

	assert.Equal(t, model.ActionAskCity, resp.Action)
	assert.Nil(t, resp.Data)

	require.Len(t, gen.requests, 1)
	assert.True(t, gen.requests[0].WebContext)
	assert.Nil(t, gen.requests[0].Schema)
}

func TestRespondAnalyzesCompleteCity(t *testing.T) {
	gen := &fakeGenerator{result: &GenerateResult{
		Text:       `{"analysis": "Bordeaux est porteur."}`,
		Structured: map[string]any{"analysis": "Bordeaux est porteur.", "gross_yield": 4.8},
	}}
	svc := newTestChatService(gen, &fakeResolver{})

	resp, err := svc.Respond(context.Background(), &model.ChatRequest{Message: "Je veux investir à Bordeaux 33000"})
	require.NoError(t, err)

	assert.Equal(t, model.ActionCitySnapshot, resp.Action)
	assert.Equal(t, "Bordeaux est porteur.", resp.Reply)
	assert.Equal(t, "Bordeaux", resp.Data["city"])
	assert.Equal(t, "33000", resp.Data["postal_code"])
	assert.Equal(t, "https://www.meilleursagents.com/prix-immobilier/bordeaux-33000/", resp.Data["source_url"])
	assert.Equal(t, 4.8, resp.Data["gross_yield"])
	_, hasArrondissement := resp.Data["arrondissement"]
	assert.False(t, hasArrondissement)

	require.Len(t, gen.requests, 1)
	assert.NotNil(t, gen.requests[0].Schema)
	assert.Contains(t, gen.requests[0].Prompt, "bordeaux-33000")
}

func TestRespondAsksForArrondissement(t *testing.T) {
	gen := &fakeGenerator{}
	geo := &fakeResolver{code: "75000"}
	svc := newTestChatService(gen, geo)

	resp, err := svc.Respond(context.Background(), &model.ChatRequest{Message: "Je veux investir à Paris"})
	require.NoError(t, err)

	assert.Equal(t, model.ActionAskArrondissement, resp.Action)
	// The resolver must not run before the arrondissement is known
	assert.Empty(t, geo.cities)
	require.Len(t, gen.requests, 1)
	assert.False(t, gen.requests[0].WebContext)
	assert.Contains(t, gen.requests[0].Prompt, "Paris")
}

func TestRespondResolvesPostalCodeAutomatically(t *testing.T) {
	gen := &fakeGenerator{result: &GenerateResult{
		Text:       `{"analysis": "Le 11e est cher."}`,
		Structured: map[string]any{"analysis": "Le 11e est cher."},
	}}
	geo := &fakeResolver{code: "75011"}
	svc := newTestChatService(gen, geo)

	resp, err := svc.Respond(context.Background(), &model.ChatRequest{Message: "Je veux investir à Paris dans le 11e"})
	require.NoError(t, err)

	assert.Equal(t, model.ActionCitySnapshot, resp.Action)
	assert.Equal(t, []string{"Paris"}, geo.cities)
	assert.Equal(t, "75011", resp.Data["postal_code"])
	assert.Equal(t, 11, resp.Data["arrondissement"])
	assert.Equal(t, "https://www.meilleursagents.com/prix-immobilier/paris-11eme-arrondissement-75011/", resp.Data["source_url"])
}

func TestRespondAsksForPostalCodeOnResolverMiss(t *testing.T) {
	gen := &fakeGenerator{}
	geo := &fakeResolver{code: ""}
	svc := newTestChatService(gen, geo)

	resp, err := svc.Respond(context.Background(), &model.ChatRequest{Message: "Je veux investir à Nantes"})
	require.NoError(t, err)

	assert.Equal(t, model.ActionAskPostalCode, resp.Action)
	assert.Equal(t, []string{"Nantes"}, geo.cities)
}

func TestRespondOffTopic(t *testing.T) {
	gen := &fakeGenerator{result: &GenerateResult{Text: "Je ne parle que d'immobilier locatif."}}
	svc := newTestChatService(gen, &fakeResolver{})

	resp, err := svc.Respond(context.Background(), &model.ChatRequest{Message: "Comment réparer un pneu de voiture ?"})
	require.NoError(t, err)

	assert.Equal(t, model.ActionSimpleChat, resp.Action)
	assert.Equal(t, "Je ne parle que d'immobilier locatif.", resp.Reply)
	require.Len(t, gen.requests, 1)
	assert.Contains(t, gen.requests[0].Prompt, "Comment réparer un pneu de voiture ?")
	assert.Nil(t, gen.requests[0].Schema)
}

func TestRespondInstructionsOptOut(t *testing.T) {
	gen := &fakeGenerator{result: &GenerateResult{Text: "texte brut"}}
	svc := newTestChatService(gen, &fakeResolver{})

	off := false
	resp, err := svc.Respond(context.Background(), &model.ChatRequest{
		Message:         "Je veux investir à Bordeaux 33000",
		UseInstructions: &off,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ActionSimpleChat, resp.Action)
	assert.Equal(t, "texte brut", resp.Reply)

	// Raw passthrough: no framing, no schema, no grounding
	require.Len(t, gen.requests, 1)
	assert.Equal(t, "Je veux investir à Bordeaux 33000", gen.requests[0].Prompt)
	assert.Nil(t, gen.requests[0].Schema)
	assert.False(t, gen.requests[0].WebContext)
}

func TestRespondIgnoresAssistantSuggestedCity(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newTestChatService(gen, &fakeResolver{})

	history := []model.Message{
		{Role: model.RoleUser, Content: "je veux investir"},
		{Role: model.RoleAssistant, Content: "Avez-vous pensé à Bordeaux ?"},
	}
	resp, err := svc.Respond(context.Background(), &model.ChatRequest{
		Message: "oui, quel rendement viser ?",
		History: history,
	})
	require.NoError(t, err)

	// The assistant's own suggestion must not fill the city slot
	assert.Equal(t, model.ActionAskCity, resp.Action)
}

func TestRespondPropagatesTimeout(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("%w: deadline exceeded", ErrUpstreamTimeout)}
	svc := newTestChatService(gen, &fakeResolver{})

	_, err := svc.Respond(context.Background(), &model.ChatRequest{Message: "Je veux investir à Bordeaux 33000"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamTimeout))
}

func TestRespondUsesCityFromEarlierTurn(t *testing.T) {
	gen := &fakeGenerator{result: &GenerateResult{
		Text:       `{"analysis": "ok"}`,
		Structured: map[string]any{"analysis": "ok"},
	}}
	svc := newTestChatService(gen, &fakeResolver{})

	history := []model.Message{
		{Role: model.RoleUser, Content: "je veux investir à Bordeaux"},
		{Role: model.RoleAssistant, Content: "Quel est le code postal ?"},
	}
	resp, err := svc.Respond(context.Background(), &model.ChatRequest{
		Message: "33000",
		History: history,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ActionCitySnapshot, resp.Action)
	assert.Equal(t, "Bordeaux", resp.Data["city"])
	assert.Equal(t, "33000", resp.Data["postal_code"])
}

func TestExtractSlots(t *testing.T) {
	svc := newTestChatService(&fakeGenerator{}, &fakeResolver{})

	slots := svc.ExtractSlots("je veux investir à Paris dans le 11e")
	assert.Equal(t, "Paris", slots.City)
	require.NotNil(t, slots.Arrondissement)
	assert.Equal(t, 11, *slots.Arrondissement)
	assert.Equal(t, "", slots.PostalCode)

	slots = svc.ExtractSlots("Bordeaux 33000")
	assert.Equal(t, "Bordeaux", slots.City)
	assert.Equal(t, "33000", slots.PostalCode)
	assert.Nil(t, slots.Arrondissement)
}
