package model

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Action tags returned to the caller; they mirror the conversation state
const (
	ActionSimpleChat         = "simple_chat"
	ActionAskCity            = "ask_city"
	ActionAskArrondissement  = "ask_arrondissement"
	ActionAskPostalCode      = "ask_postal_code"
	ActionCitySnapshot       = "city_snapshot"
	ActionError              = "error"
)

// Message is a single conversation turn. History is ordered oldest first.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a chat request
type ChatRequest struct {
	Message         string    `json:"message" binding:"required"`
	History         []Message `json:"history"`
	UseInstructions *bool     `json:"useInstructions"`
}

// InstructionsEnabled reports whether domain instructions apply (default true).
func (r *ChatRequest) InstructionsEnabled() bool {
	return r.UseInstructions == nil || *r.UseInstructions
}

// ChatResponse represents the assistant outcome returned to the caller
type ChatResponse struct {
	Reply  string         `json:"reply"`
	Action string         `json:"action"`
	Data   map[string]any `json:"data,omitempty"`
}

// ExtractedSlots holds the facts pulled out of the conversation context.
// Empty string / nil means the slot is still missing.
type ExtractedSlots struct {
	City           string
	PostalCode     string
	Arrondissement *int
}

// ConversationState is recomputed from ExtractedSlots on every request;
// nothing is persisted between turns.
type ConversationState string

const (
	StateNeedCity           ConversationState = "need_city"
	StateNeedArrondissement ConversationState = "need_arrondissement"
	StateNeedPostalCode     ConversationState = "need_postal_code"
	StateReady              ConversationState = "ready"
)

// ActionTag maps a state to the action tag emitted for that turn.
func (s ConversationState) ActionTag() string {
	switch s {
	case StateNeedCity:
		return ActionAskCity
	case StateNeedArrondissement:
		return ActionAskArrondissement
	case StateNeedPostalCode:
		return ActionAskPostalCode
	case StateReady:
		return ActionCitySnapshot
	}
	return ActionError
}

// MarketReference is the canonical market-data locator, built only when
// the state is READY.
type MarketReference struct {
	City           string `json:"city"`
	PostalCode     string `json:"postal_code"`
	Arrondissement *int   `json:"arrondissement,omitempty"`
	SourceURL      string `json:"source_url"`
}
