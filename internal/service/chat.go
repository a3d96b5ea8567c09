package service

import (
	"context"

	"core/internal/config"
	"core/internal/model"
	"core/internal/textutil"

	"go.uber.org/zap"
)

// ChatService drives the conversational pipeline: intent gate, slot
// extraction, state evaluation, then the state-specific generative call.
// It is stateless per request; the only inputs are the message and the
// externally-owned history.
type ChatService struct {
	llm            Generator
	geo            PostalResolver
	classifier     *IntentClassifier
	lex            Lexicon
	maxTurns       int
	groundingTurns int
	log            *zap.Logger
}

// NewChatService creates the chat pipeline service
func NewChatService(llm Generator, geo PostalResolver, lex Lexicon, cfg *config.ChatConfig, log *zap.Logger) *ChatService {
	return &ChatService{
		llm:            llm,
		geo:            geo,
		classifier:     NewIntentClassifier(lex),
		lex:            lex,
		maxTurns:       cfg.MaxTurns,
		groundingTurns: cfg.GroundingTurns,
		log:            log,
	}
}

// ExtractSlots pulls city, postal code and arrondissement out of the
// user-only context window. Produced once per request, immutable afterward.
func (s *ChatService) ExtractSlots(userContext string) model.ExtractedSlots {
	slots := model.ExtractedSlots{
		City:       textutil.ExtractCityGuess(userContext, s.lex.Gazetteer),
		PostalCode: textutil.ExtractPostalCode(userContext),
	}
	if n := textutil.ExtractArrondissement(userContext); n != 0 {
		slots.Arrondissement = &n
	}
	return slots
}

// Respond handles one chat turn. Errors are returned only for generative
// backend failures; every other condition resolves to a normal outcome.
func (s *ChatService) Respond(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	// Instructions opted out: plain passthrough, no framing, no schema
	if !req.InstructionsEnabled() {
		result, err := s.llm.Generate(ctx, GenerateRequest{Prompt: req.Message})
		if err != nil {
			return nil, err
		}
		return &model.ChatResponse{Reply: result.Text, Action: model.ActionSimpleChat}, nil
	}

	// Intent gate runs on user turns only, so a city the assistant itself
	// suggested earlier cannot pull the conversation into analysis mode.
	userContext := UserOnlyContext(req.History, req.Message, s.maxTurns)
	if !s.classifier.IsRealEstateIntent(userContext) {
		result, err := s.llm.Generate(ctx, GenerateRequest{Prompt: PromptOffTopic(req.Message)})
		if err != nil {
			return nil, err
		}
		return &model.ChatResponse{Reply: result.Text, Action: model.ActionSimpleChat}, nil
	}

	slots := s.ExtractSlots(userContext)
	state := EvaluateState(slots, s.lex)

	// Automatic postal-code resolution; a miss degrades to asking the user
	if state == model.StateNeedPostalCode {
		if code := s.geo.ResolvePostalCode(ctx, slots.City); code != "" {
			slots.PostalCode = code
			state = model.StateReady
		}
	}

	switch state {
	case model.StateNeedCity:
		// Grounding stays on here so the guidance is generally useful even
		// while the assistant is still asking for a city.
		return s.clarify(ctx, PromptAskCity(req.Message), state, true)

	case model.StateNeedArrondissement:
		return s.clarify(ctx, PromptAskArrondissement(slots.City, req.Message), state, false)

	case model.StateNeedPostalCode:
		return s.clarify(ctx, PromptAskPostalCode(slots.City, slots.Arrondissement, req.Message), state, false)
	}

	return s.analyze(ctx, req, slots)
}

// clarify runs a non-READY turn: state-specific instruction, no schema
func (s *ChatService) clarify(ctx context.Context, prompt string, state model.ConversationState, ground bool) (*model.ChatResponse, error) {
	result, err := s.llm.Generate(ctx, GenerateRequest{Prompt: prompt, WebContext: ground})
	if err != nil {
		return nil, err
	}
	return &model.ChatResponse{Reply: result.Text, Action: state.ActionTag()}, nil
}

// analyze runs the READY turn: build the market reference, request the
// structured analysis, normalize whatever comes back.
func (s *ChatService) analyze(ctx context.Context, req *model.ChatRequest, slots model.ExtractedSlots) (*model.ChatResponse, error) {
	ref := BuildMarketReference(slots.City, slots.PostalCode, slots.Arrondissement, s.lex)

	prompt := PromptCityAnalysis(ref.City, ref.Arrondissement, ref.PostalCode, ref.SourceURL, req.Message)
	result, err := s.llm.Generate(ctx, GenerateRequest{
		Prompt:     prompt,
		WebContext: s.shouldGround(req.Message, req.History),
		Schema:     AnalysisSchema(),
	})
	if err != nil {
		return nil, err
	}

	data := map[string]any{
		"city":        ref.City,
		"postal_code": ref.PostalCode,
		"source_url":  ref.SourceURL,
	}
	if ref.Arrondissement != nil {
		data["arrondissement"] = *ref.Arrondissement
	}
	for k, v := range result.Structured {
		data[k] = v
	}

	return &model.ChatResponse{
		Reply:  NormalizeReply(result),
		Action: model.ActionCitySnapshot,
		Data:   data,
	}, nil
}

// shouldGround decides whether the analysis turn is worth live web context.
// Intentionally looser than the main intent gate: the conversation is
// already in-domain, the only question is whether fresh data pays for the
// extra cost and latency.
func (s *ChatService) shouldGround(message string, history []model.Message) bool {
	if s.classifier.WantsMarketData(message) {
		return true
	}
	return s.classifier.IsRealEstateIntent(RecentContext(history, message, s.groundingTurns))
}
