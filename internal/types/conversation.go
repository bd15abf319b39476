package types

import "time"

// Message roles used in conversation history
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role/content pair sent to the composer
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turn is one user message with the assistant's answer
type Turn struct {
	Timestamp   time.Time      `json:"timestamp"`
	UserMessage string         `json:"user_message"`
	BotResponse string         `json:"bot_response"`
	Intent      Intent         `json:"intent,omitempty"`
	ProductIDs  []string       `json:"product_ids,omitempty"`
	ClientIDs   []string       `json:"client_ids,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// SendMessageRequest is the body of a chat message request
type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// Validate validates the SendMessageRequest using the validator.
func (r *SendMessageRequest) Validate() error {
	return validate.Struct(r)
}
