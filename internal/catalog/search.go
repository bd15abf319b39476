package catalog

import (
	"sort"
	"strings"

	"github.com/jonathan/sizing-assistant/internal/types"
)

// Product search weights
const (
	exactIDScore     = 100
	nameMatchScore   = 50
	fitMatchScore    = 30
	fabricMatchScore = 30
	nameWordScore    = 10
	fitWordScore     = 15
	fabricWordScore  = 15
	minWordLength    = 3
)

// searchTermMapping rewrites Spanish query terms to the English catalog vocabulary.
// Order matters: each match produces one additional search term.
var searchTermMapping = []struct {
	spanish string
	english string
}{
	{"ajuste", "fit"},
	{"material", "fabric"},
	{"algodón", "cotton"},
	{"lana", "wool"},
	{"lino", "linen"},
	{"poliéster", "polyester"},
	{"mezcla", "blend"},
}

// TranslateTerm maps a Spanish material or attribute word to its catalog form.
// Unknown terms are returned unchanged.
func TranslateTerm(term string) string {
	for _, m := range searchTermMapping {
		if m.spanish == term {
			return m.english
		}
	}
	return term
}

type scoredProduct struct {
	product *types.Product
	score   int
}

// SearchProducts ranks products by how well their id, name, fit and fabric match query.
// Products with equal scores keep catalog order.
func (s *Store) SearchProducts(query string, limit int) []*types.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return []*types.Product{}
	}

	terms := []string{query}
	for _, m := range searchTermMapping {
		if strings.Contains(query, m.spanish) {
			terms = append(terms, strings.ReplaceAll(query, m.spanish, m.english))
		}
	}

	var results []scoredProduct
	for _, p := range s.products {
		if score := scoreProduct(p, terms); score > 0 {
			results = append(results, scoredProduct{product: p, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	out := make([]*types.Product, 0, len(results))
	for _, r := range results {
		out = append(out, r.product)
	}
	return out
}

func scoreProduct(p *types.Product, terms []string) int {
	id := strings.ToLower(p.ProductID)
	name := strings.ToLower(p.Name)
	fit := strings.ToLower(string(p.Fit))
	fabric := strings.ToLower(p.Fabric)

	score := 0
	for _, term := range terms {
		if term == id {
			score += exactIDScore
			break
		}
		if strings.Contains(name, term) {
			score += nameMatchScore
		}
		if strings.Contains(fit, term) {
			score += fitMatchScore
		}
		if strings.Contains(fabric, term) {
			score += fabricMatchScore
		}
		for _, word := range strings.Fields(term) {
			if len([]rune(word)) < minWordLength {
				continue
			}
			if strings.Contains(name, word) {
				score += nameWordScore
			}
			if strings.Contains(fit, word) {
				score += fitWordScore
			}
			if strings.Contains(fabric, word) {
				score += fabricWordScore
			}
		}
	}
	return score
}

// SearchClients returns up to limit clients whose name or id contains query.
func (s *Store) SearchClients(query string, limit int) []*types.Client {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]*types.Client, 0)
	if limit <= 0 {
		return out
	}
	for _, c := range s.clients {
		if strings.Contains(strings.ToLower(c.Name), query) || strings.Contains(strings.ToLower(c.ClientID), query) {
			out = append(out, c)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

// ProductsByFit returns up to limit products whose fit contains term, case-insensitively.
func (s *Store) ProductsByFit(term string, limit int) []*types.Product {
	return s.filterProducts(limit, func(p *types.Product) bool {
		return strings.Contains(strings.ToLower(string(p.Fit)), strings.ToLower(term))
	})
}

// ProductsByFabric returns up to limit products whose fabric contains term, case-insensitively.
func (s *Store) ProductsByFabric(term string, limit int) []*types.Product {
	return s.filterProducts(limit, func(p *types.Product) bool {
		return strings.Contains(strings.ToLower(p.Fabric), strings.ToLower(term))
	})
}

func (s *Store) filterProducts(limit int, keep func(p *types.Product) bool) []*types.Product {
	out := make([]*types.Product, 0)
	for _, p := range s.products {
		if len(out) >= limit {
			break
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
