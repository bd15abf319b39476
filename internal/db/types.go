package db

import (
	"time"

	"github.com/google/uuid"
)

// TurnRecord is one persisted conversation turn
type TurnRecord struct {
	ID              uuid.UUID      `json:"id"`
	SessionID       string         `json:"session_id"`
	UserMessage     string         `json:"user_message"`
	BotResponse     string         `json:"bot_response"`
	Intent          string         `json:"intent"`
	ClientID        *string        `json:"client_id,omitempty"`
	ProductID       *string        `json:"product_id,omitempty"`
	RecommendedSize *string        `json:"recommended_size,omitempty"`
	Confidence      *float64       `json:"confidence,omitempty"`
	FallbackUsed    bool           `json:"fallback_used"`
	IsError         bool           `json:"is_error"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// DefaultTurnLimit caps ListTurns when no limit is given
const DefaultTurnLimit = 50
