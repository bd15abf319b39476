package ranking

import (
	"strings"

	"github.com/jonathan/sizing-assistant/internal/types"
)

// Feedback classes recognized in free-text purchase feedback
type feedbackKind int

const (
	feedbackUnknown feedbackKind = iota
	feedbackTooTight
	feedbackTooLoose
	feedbackGoodFit
)

const (
	sizeShiftDelta    = 0.1
	goodFitDelta      = 0.2
	goodNeighborDelta = 0.05
)

func classifyFeedback(feedback string) feedbackKind {
	text := strings.ToLower(feedback)
	switch {
	case strings.Contains(text, "too tight"):
		return feedbackTooTight
	case strings.Contains(text, "too loose"):
		return feedbackTooLoose
	case strings.Contains(text, "perfect"), strings.Contains(text, "comfortable"):
		return feedbackGoodFit
	default:
		return feedbackUnknown
	}
}

// computeHistoryDeltas accumulates size deltas from every past purchase in order.
func computeHistoryDeltas(history []types.Purchase) map[types.Size]float64 {
	deltas := zeroScores()
	for _, purchase := range history {
		bought := types.SizeIndex(purchase.SizePurchased)
		if bought < 0 {
			continue
		}

		switch classifyFeedback(purchase.FitFeedback) {
		case feedbackTooTight:
			// Client needs to size up
			for i, size := range types.SizeOrder {
				if i <= bought {
					deltas[size] -= sizeShiftDelta
				} else {
					deltas[size] += sizeShiftDelta
				}
			}
		case feedbackTooLoose:
			for i, size := range types.SizeOrder {
				if i < bought {
					deltas[size] += sizeShiftDelta
				} else {
					deltas[size] -= sizeShiftDelta
				}
			}
		case feedbackGoodFit:
			deltas[purchase.SizePurchased] += goodFitDelta
			if bought > 0 {
				deltas[types.SizeOrder[bought-1]] += goodNeighborDelta
			}
			if bought < len(types.SizeOrder)-1 {
				deltas[types.SizeOrder[bought+1]] += goodNeighborDelta
			}
		}
	}
	return deltas
}

// hasPositiveHistory reports whether any purchase was reported as a good fit.
func hasPositiveHistory(history []types.Purchase) bool {
	for _, purchase := range history {
		if classifyFeedback(purchase.FitFeedback) == feedbackGoodFit {
			return true
		}
	}
	return false
}
