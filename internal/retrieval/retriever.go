// Package retrieval resolves a parsed query against the catalog: the clients and products
// it names, plus keyword, fit and fabric fallbacks when a search names no product.
package retrieval

import (
	"strings"

	"github.com/jonathan/sizing-assistant/internal/catalog"
	"github.com/jonathan/sizing-assistant/internal/types"
)

// Confidence increments for each kind of evidence
const (
	idHitConfidence      = 0.3
	keywordHitConfidence = 0.2
	attributeConfidence  = 0.3
)

const searchLimit = 10

// fitSearchTerms are tried in order against the raw query; the first present term is used.
var fitSearchTerms = []string{"slim", "regular", "oversized", "loose", "tailored"}

// fabricSearchTerms are tried in order after the fit terms.
var fabricSearchTerms = []string{"cotton", "wool", "linen", "polyester", "blend", "algodón", "lana"}

// Catalog is the read-only view of the catalog the retriever needs.
type Catalog interface {
	GetClient(id string) *types.Client
	GetProduct(id string) *types.Product
	AllClients() []*types.Client
	SearchProducts(query string, limit int) []*types.Product
	ProductsByFit(term string, limit int) []*types.Product
	ProductsByFabric(term string, limit int) []*types.Product
}

// Retriever gathers catalog evidence for parsed queries.
type Retriever struct {
	catalog Catalog
}

// New creates a Retriever over catalog.
func New(catalog Catalog) *Retriever {
	return &Retriever{catalog: catalog}
}

// Retrieve resolves the ids in pq and, for searches that named no product, falls back to
// keyword, then fit, then fabric matching. Confidence is clamped to [0, 1].
func (r *Retriever) Retrieve(pq types.ParsedQuery) types.RetrievedContext {
	ctx := types.RetrievedContext{
		Clients:  make([]*types.Client, 0),
		Products: make([]*types.Product, 0),
		Intent:   pq.Intent,
		Keywords: pq.Keywords,
	}
	confidence := 0.0

	for _, id := range pq.ClientIDs {
		if client := r.catalog.GetClient(id); client != nil {
			ctx.Clients = append(ctx.Clients, client)
			confidence += idHitConfidence
		}
	}

	for _, id := range pq.ProductIDs {
		if product := r.catalog.GetProduct(id); product != nil {
			ctx.Products = append(ctx.Products, product)
			confidence += idHitConfidence
		}
	}

	searching := pq.Intent == types.IntentProductSearch

	if searching && len(ctx.Products) == 0 && len(pq.Keywords) > 0 {
		found := r.catalog.SearchProducts(strings.Join(pq.Keywords, " "), searchLimit)
		if len(found) > 0 {
			ctx.Products = append(ctx.Products, found...)
			confidence += keywordHitConfidence
		}
	}

	query := strings.ToLower(pq.OriginalQuery)

	if searching && len(ctx.Products) == 0 {
		if term, ok := firstPresent(query, fitSearchTerms); ok {
			found := r.catalog.ProductsByFit(term, searchLimit)
			if len(found) > 0 {
				ctx.Products = append(ctx.Products, found...)
				confidence += attributeConfidence
			}
		}
	}

	if searching && len(ctx.Products) == 0 {
		if term, ok := firstPresent(query, fabricSearchTerms); ok {
			found := r.catalog.ProductsByFabric(catalog.TranslateTerm(term), searchLimit)
			if len(found) > 0 {
				ctx.Products = append(ctx.Products, found...)
				confidence += attributeConfidence
			}
		}
	}

	ctx.Confidence = clamp(confidence)
	return ctx
}

func firstPresent(query string, terms []string) (string, bool) {
	for _, term := range terms {
		if strings.Contains(query, term) {
			return term, true
		}
	}
	return "", false
}

func clamp(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0.0 {
		return 0.0
	}
	return v
}
