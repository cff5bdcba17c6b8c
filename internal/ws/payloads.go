package ws

import (
	"encoding/json"

	"community_cards/internal/domain"
)

// Message is the envelope for both directions.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// client → server: the manual form as the visitor currently has it
type FormPayload struct {
	Username     string `json:"username"`
	Platform     string `json:"platform"`
	Followers    int    `json:"followers"`
	Contribution string `json:"contribution"`
}

// server → client
type PreviewPayload struct {
	Draft     *domain.CardDraft `json:"draft,omitempty"`
	Eligible  bool              `json:"eligible"`
	Shortfall int               `json:"shortfall"`
	Threshold int               `json:"threshold"`
	Message   string            `json:"message,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

type ClaimedPayload struct {
	Card    *domain.CardData `json:"card"`
	Message string           `json:"message"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
