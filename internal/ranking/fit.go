// Package ranking provides the size recommendation engine: it scores every size of a product
// against a client's body, purchase history and fit preference, and picks the best one.
package ranking

import (
	"math"
	"strings"

	"github.com/jonathan/sizing-assistant/internal/types"
)

// Measurement weights and decay constants (cm)
const (
	bustWeight  = 0.40
	waistWeight = 0.35
	hipsWeight  = 0.25

	bustDecay  = 10.0
	waistDecay = 8.0
	hipsDecay  = 10.0
)

// Weights for combining the three signals
const (
	measurementWeight = 0.6
	historyWeight     = 0.25
	fitWeight         = 0.15
)

// fitCompatibility is the base delta keyed by client preference, then lowercased product fit.
// Combinations missing from the table contribute 0.
var fitCompatibility = map[types.FitPreference]map[string]float64{
	types.PreferenceSlim: {
		"slim":      0.2,
		"tailored":  0.1,
		"regular":   -0.05,
		"oversized": -0.15,
	},
	types.PreferenceRegular: {
		"slim":      -0.05,
		"tailored":  0.1,
		"regular":   0.2,
		"oversized": 0.05,
	},
	types.PreferenceLoose: {
		"slim":      -0.15,
		"tailored":  -0.1,
		"regular":   0.05,
		"oversized": 0.2,
	},
}

// sizeNudges pushes slim preferences toward smaller sizes and loose ones toward larger sizes.
var sizeNudges = map[types.FitPreference]map[types.Size]float64{
	types.PreferenceSlim: {
		types.SizeXS: 0.10,
		types.SizeS:  0.05,
		types.SizeL:  -0.05,
		types.SizeXL: -0.10,
	},
	types.PreferenceLoose: {
		types.SizeXS: -0.10,
		types.SizeS:  -0.05,
		types.SizeL:  0.05,
		types.SizeXL: 0.10,
	},
}

// computeMeasurementScores scores each available size by how closely its chart entry matches the body.
// Sizes the product does not offer, or that have no chart entry, score 0.
func computeMeasurementScores(body types.BodyMeasurements, product *types.Product) map[types.Size]float64 {
	scores := zeroScores()
	for _, size := range product.AvailableSizes {
		ref, ok := product.SizeChart[size]
		if !ok {
			continue
		}
		if _, known := scores[size]; !known {
			continue
		}
		scores[size] = measurementSimilarity(body, ref)
	}
	return scores
}

// measurementSimilarity returns a value in (0, 1] that decays as the measurements diverge.
func measurementSimilarity(body, ref types.BodyMeasurements) float64 {
	bust := math.Exp(-math.Abs(body.BustCM-ref.BustCM) / bustDecay)
	waist := math.Exp(-math.Abs(body.WaistCM-ref.WaistCM) / waistDecay)
	hips := math.Exp(-math.Abs(body.HipsCM-ref.HipsCM) / hipsDecay)
	return bustWeight*bust + waistWeight*waist + hipsWeight*hips
}

// computeFitDeltas applies the compatibility table uniformly plus the per-size preference nudges.
func computeFitDeltas(preference types.FitPreference, fit types.FitType) map[types.Size]float64 {
	pref := types.FitPreference(strings.ToLower(string(preference)))
	base := fitCompatibility[pref][strings.ToLower(string(fit))]

	deltas := zeroScores()
	for size := range deltas {
		deltas[size] = base + sizeNudges[pref][size]
	}
	return deltas
}

func zeroScores() map[types.Size]float64 {
	scores := make(map[types.Size]float64, len(types.SizeOrder))
	for _, size := range types.SizeOrder {
		scores[size] = 0
	}
	return scores
}
