package retrieval

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/sizing-assistant/internal/types"
)

// Client similarity weights
const (
	measurementSimilarityWeight = 0.5
	heightSimilarityWeight      = 0.2
	preferenceSimilarityWeight  = 0.2
	ageSimilarityWeight         = 0.1
)

// Product similarity weights
const (
	sameFitWeight    = 0.4
	sameFabricWeight = 0.3
	chartWeight      = 0.3
)

// SimilarClient is a client paired with its similarity to a target client.
type SimilarClient struct {
	Client     *types.Client `json:"client"`
	Similarity float64       `json:"similarity"`
}

// FindSimilarClients returns up to limit other clients ranked by body, height,
// preference and age similarity to target.
func (r *Retriever) FindSimilarClients(target *types.Client, limit int) []SimilarClient {
	results := make([]SimilarClient, 0)
	for _, c := range r.catalog.AllClients() {
		if c.ClientID == target.ClientID {
			continue
		}
		results = append(results, SimilarClient{Client: c, Similarity: ClientSimilarity(target, c)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// ClientSimilarity scores two clients in [0, 1].
func ClientSimilarity(a, b *types.Client) float64 {
	ma, mb := a.BodyMeasurements, b.BodyMeasurements
	measurements := (linearSimilarity(ma.BustCM-mb.BustCM, 50) +
		linearSimilarity(ma.WaistCM-mb.WaistCM, 40) +
		linearSimilarity(ma.HipsCM-mb.HipsCM, 50)) / 3

	height := linearSimilarity(float64(a.HeightCM-b.HeightCM), 50)

	preference := 0.5
	if a.PreferredFit == b.PreferredFit {
		preference = 1.0
	}

	age := linearSimilarity(float64(a.Age-b.Age), 50)

	return measurements*measurementSimilarityWeight +
		height*heightSimilarityWeight +
		preference*preferenceSimilarityWeight +
		age*ageSimilarityWeight
}

// ProductSimilarity scores two products in [0, 1] by fit, fabric and the M size chart entry.
func ProductSimilarity(a, b *types.Product) float64 {
	similarity := 0.0
	if strings.EqualFold(string(a.Fit), string(b.Fit)) {
		similarity += sameFitWeight
	}
	if strings.EqualFold(a.Fabric, b.Fabric) {
		similarity += sameFabricWeight
	}

	ma, okA := a.SizeChart[types.SizeM]
	mb, okB := b.SizeChart[types.SizeM]
	if okA && okB {
		avgDiff := (math.Abs(ma.BustCM-mb.BustCM) +
			math.Abs(ma.WaistCM-mb.WaistCM) +
			math.Abs(ma.HipsCM-mb.HipsCM)) / 3
		similarity += linearSimilarity(avgDiff, 20) * chartWeight
	}

	return math.Min(1.0, similarity)
}

// linearSimilarity maps a difference onto [0, 1], reaching 0 at scale.
func linearSimilarity(diff, scale float64) float64 {
	return math.Max(0, 1-math.Abs(diff)/scale)
}
