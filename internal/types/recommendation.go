package types

// SizeRecommendation is the engine output for one client/product pair
type SizeRecommendation struct {
	RecommendedSize  Size    `json:"recommended_size"`
	Confidence       float64 `json:"confidence"`
	Reasoning        string  `json:"reasoning"`
	AlternativeSizes []Size  `json:"alternative_sizes"`
	FitNotes         string  `json:"fit_notes"`
	// Scores holds the final per-size scores used for ranking
	Scores map[Size]float64 `json:"scores,omitempty"`
}

// RecommendationRequest asks for a size recommendation by ids
type RecommendationRequest struct {
	ClientID  string `json:"client_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
}

// Validate validates the RecommendationRequest using the validator.
func (r *RecommendationRequest) Validate() error {
	return validate.Struct(r)
}
