package types

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Intent is the coarse classification of a user message
type Intent string

// Intent constants
const (
	IntentSizeRecommendation Intent = "size_recommendation"
	IntentProductSearch      Intent = "product_search"
	IntentHelp               Intent = "help"
	IntentGeneral            Intent = "general"
)

// ParsedQuery is the structured reading of one user message
type ParsedQuery struct {
	Intent          Intent   `json:"intent"`
	ProductIDs      []string `json:"product_ids"`
	ClientIDs       []string `json:"client_ids"`
	Keywords        []string `json:"keywords"`
	HasVisualIntent bool     `json:"has_visual_intent"`
	IsContinuation  bool     `json:"is_continuation"`
	OriginalQuery   string   `json:"original_query"`
}

// RetrievedContext is the catalog evidence gathered for a parsed query
type RetrievedContext struct {
	Clients    []*Client  `json:"clients"`
	Products   []*Product `json:"products"`
	Intent     Intent     `json:"intent"`
	Confidence float64    `json:"confidence"`
	Keywords   []string   `json:"keywords"`
}

// ParseRequest is the body of a parse request
type ParseRequest struct {
	Text string `json:"text" validate:"required"`
}

// Validate validates the ParseRequest using the validator.
func (r *ParseRequest) Validate() error {
	return validate.Struct(r)
}
