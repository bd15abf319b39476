package ranking

import (
	"sort"

	"github.com/jonathan/sizing-assistant/internal/types"
)

const maxAlternatives = 2

// RecommendSize picks the best size of product for client.
//
// The result only ever names sizes the product offers, unless it offers none, in which case
// the canonical first size is returned with zero confidence. Inputs are not modified.
func RecommendSize(client *types.Client, product *types.Product) types.SizeRecommendation {
	measurement := computeMeasurementScores(client.BodyMeasurements, product)
	history := computeHistoryDeltas(client.PurchaseHistory)
	fit := computeFitDeltas(client.PreferredFit, product.Fit)

	final := make(map[types.Size]float64, len(types.SizeOrder))
	for _, size := range types.SizeOrder {
		score := measurementWeight*measurement[size] +
			historyWeight*history[size] +
			fitWeight*fit[size]
		if score < 0 || !product.Offers(size) {
			score = 0
		}
		final[size] = score
	}

	ranked := rankSizes(final, candidateSizes(product))
	best := ranked[0]

	alternatives := make([]types.Size, 0, maxAlternatives)
	for _, size := range ranked[1:] {
		if len(alternatives) == maxAlternatives {
			break
		}
		alternatives = append(alternatives, size)
	}

	return types.SizeRecommendation{
		RecommendedSize:  best,
		Confidence:       clampConfidence(final[best]),
		Reasoning:        buildReasoning(client, product, best),
		AlternativeSizes: alternatives,
		FitNotes:         buildFitNotes(client, product),
		Scores:           final,
	}
}

// candidateSizes returns the offered sizes in canonical order, or every size when none are offered.
func candidateSizes(product *types.Product) []types.Size {
	candidates := make([]types.Size, 0, len(types.SizeOrder))
	for _, size := range types.SizeOrder {
		if product.Offers(size) {
			candidates = append(candidates, size)
		}
	}
	if len(candidates) == 0 {
		return append(candidates, types.SizeOrder...)
	}
	return candidates
}

// rankSizes orders candidates by descending score. Equal scores keep canonical order.
func rankSizes(scores map[types.Size]float64, candidates []types.Size) []types.Size {
	ranked := make([]types.Size, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}

func clampConfidence(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	if score < 0.0 {
		return 0.0
	}
	return score
}
