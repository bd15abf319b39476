package retrieval

import (
	"sort"
	"strings"

	"github.com/jonathan/sizing-assistant/internal/types"
)

// Feedback sentiments
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Fit issues detected in feedback
const (
	FitIssueTooSmall = "too_small"
	FitIssueTooLarge = "too_large"
)

// FeedbackAnalysis is the reading of one purchase's free-text feedback.
type FeedbackAnalysis struct {
	Sentiment    string  `json:"sentiment"`
	FitIssue     string  `json:"fit_issue,omitempty"`
	Satisfaction float64 `json:"satisfaction"`
}

// RelevantPurchase is a past purchase with its product and how relevant it is to a new one.
type RelevantPurchase struct {
	Purchase  types.Purchase   `json:"purchase"`
	Product   *types.Product   `json:"product"`
	Relevance float64          `json:"relevance"`
	Analysis  FeedbackAnalysis `json:"analysis"`
}

// AnalyzeFeedback classifies purchase feedback into sentiment, fit issue and satisfaction.
func AnalyzeFeedback(feedback string) FeedbackAnalysis {
	text := strings.ToLower(feedback)
	switch {
	case strings.Contains(text, "perfect"), strings.Contains(text, "comfortable"):
		return FeedbackAnalysis{Sentiment: SentimentPositive, Satisfaction: 0.9}
	case strings.Contains(text, "too tight"):
		return FeedbackAnalysis{Sentiment: SentimentNegative, FitIssue: FitIssueTooSmall, Satisfaction: 0.2}
	case strings.Contains(text, "too loose"):
		return FeedbackAnalysis{Sentiment: SentimentNegative, FitIssue: FitIssueTooLarge, Satisfaction: 0.3}
	case strings.Contains(text, "did not like"):
		return FeedbackAnalysis{Sentiment: SentimentNegative, Satisfaction: 0.1}
	default:
		return FeedbackAnalysis{Sentiment: SentimentNeutral, Satisfaction: 0.5}
	}
}

// RelevantPurchaseHistory returns client's past purchases of known products, most relevant to product first.
func (r *Retriever) RelevantPurchaseHistory(client *types.Client, product *types.Product) []RelevantPurchase {
	results := make([]RelevantPurchase, 0, len(client.PurchaseHistory))
	for _, purchase := range client.PurchaseHistory {
		bought := r.catalog.GetProduct(purchase.ProductID)
		if bought == nil {
			continue
		}
		results = append(results, RelevantPurchase{
			Purchase:  purchase,
			Product:   bought,
			Relevance: ProductSimilarity(product, bought),
			Analysis:  AnalyzeFeedback(purchase.FitFeedback),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	return results
}
