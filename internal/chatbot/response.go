package chatbot

import (
	"github.com/jonathan/sizing-assistant/internal/avatar"
	"github.com/jonathan/sizing-assistant/internal/types"
)

// Response is the reply to one user message. ErrorDetails is kept for logs and is never
// serialized.
type Response struct {
	SessionID      string                    `json:"session_id"`
	Text           string                    `json:"response"`
	Intent         types.Intent              `json:"intent,omitempty"`
	Recommendation *types.SizeRecommendation `json:"recommendation,omitempty"`
	Client         *ClientSummary            `json:"client,omitempty"`
	Product        *ProductSummary           `json:"product,omitempty"`
	Products       []ProductSummary          `json:"products,omitempty"`
	ProductsFound  int                       `json:"products_found,omitempty"`
	Avatar         *avatar.Image             `json:"avatar,omitempty"`
	NeedsClient    bool                      `json:"needs_client,omitempty"`
	NeedsProduct   bool                      `json:"needs_product,omitempty"`
	FallbackUsed   bool                      `json:"fallback_used,omitempty"`
	Error          bool                      `json:"error,omitempty"`
	ErrorDetails   string                    `json:"-"`
	Metadata       map[string]any            `json:"metadata,omitempty"`
}

// ClientSummary is the public view of a client.
type ClientSummary struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	PreferredFit types.FitPreference `json:"preferred_fit,omitempty"`
	HeightCM     int                 `json:"height_cm,omitempty"`
}

// ProductSummary is the public view of a product.
type ProductSummary struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Fit            types.FitType `json:"fit"`
	Fabric         string        `json:"fabric"`
	AvailableSizes []types.Size  `json:"available_sizes,omitempty"`
}

// SummarizeClient builds the public view of c.
func SummarizeClient(c *types.Client) ClientSummary {
	return ClientSummary{ID: c.ClientID, Name: c.Name, PreferredFit: c.PreferredFit, HeightCM: c.HeightCM}
}

// SummarizeProduct builds the public view of p.
func SummarizeProduct(p *types.Product) ProductSummary {
	return ProductSummary{ID: p.ProductID, Name: p.Name, Fit: p.Fit, Fabric: p.Fabric, AvailableSizes: p.AvailableSizes}
}
