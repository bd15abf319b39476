package session

import (
	"sort"
	"time"

	"github.com/jonathan/sizing-assistant/internal/types"
)

// Summary describes a conversation so far.
type Summary struct {
	SessionID         string         `json:"session_id"`
	CreatedAt         time.Time      `json:"created_at"`
	TotalTurns        int            `json:"total_turns"`
	TopicsDiscussed   []types.Intent `json:"topics_discussed"`
	ProductsMentioned []string       `json:"products_mentioned"`
	ClientsMentioned  []string       `json:"clients_mentioned"`
	ActiveClientID    string         `json:"active_client,omitempty"`
	ActiveProductID   string         `json:"active_product,omitempty"`
	LastActivity      *time.Time     `json:"last_activity,omitempty"`
}

// Suggestions are follow-ups derived from the conversation state.
type Suggestions struct {
	NextQuestions   []string `json:"next_questions"`
	RelatedProducts []string `json:"related_products"`
	RelatedClients  []string `json:"related_clients"`
}

// topicIntents are the intents reported as conversation topics.
var topicIntents = map[types.Intent]bool{
	types.IntentSizeRecommendation: true,
	types.IntentProductSearch:      true,
}

// Summary returns the summary of session id, or false if it does not exist.
func (m *Manager) Summary(id string) (Summary, bool) {
	s := m.get(id)
	if s == nil {
		return Summary{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summary{
		SessionID:         s.id,
		CreatedAt:         s.createdAt,
		TotalTurns:        len(s.turns),
		TopicsDiscussed:   make([]types.Intent, 0),
		ProductsMentioned: make([]string, 0),
		ClientsMentioned:  make([]string, 0),
	}

	seenTopic := make(map[types.Intent]bool)
	seenProduct := make(map[string]bool)
	seenClient := make(map[string]bool)
	for _, t := range s.turns {
		if topicIntents[t.Intent] && !seenTopic[t.Intent] {
			seenTopic[t.Intent] = true
			summary.TopicsDiscussed = append(summary.TopicsDiscussed, t.Intent)
		}
		for _, pid := range t.ProductIDs {
			if !seenProduct[pid] {
				seenProduct[pid] = true
				summary.ProductsMentioned = append(summary.ProductsMentioned, pid)
			}
		}
		for _, cid := range t.ClientIDs {
			if !seenClient[cid] {
				seenClient[cid] = true
				summary.ClientsMentioned = append(summary.ClientsMentioned, cid)
			}
		}
	}
	sort.Strings(summary.ProductsMentioned)
	sort.Strings(summary.ClientsMentioned)

	if s.activeClient != nil {
		summary.ActiveClientID = s.activeClient.ClientID
	}
	if s.activeProduct != nil {
		summary.ActiveProductID = s.activeProduct.ProductID
	}
	if n := len(s.turns); n > 0 {
		last := s.turns[n-1].Timestamp
		summary.LastActivity = &last
	}
	return summary, true
}

// Suggestions returns follow-up questions and the most mentioned products and clients.
func (m *Manager) Suggestions(id string) (Suggestions, bool) {
	s := m.get(id)
	if s == nil {
		return Suggestions{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	suggestions := Suggestions{NextQuestions: make([]string, 0)}
	switch {
	case s.activeClient != nil && s.activeProduct == nil:
		suggestions.NextQuestions = append(suggestions.NextQuestions,
			"¿Qué producto te interesa para recomendarte una talla?")
	case s.activeProduct != nil && s.activeClient == nil:
		suggestions.NextQuestions = append(suggestions.NextQuestions,
			"¿Para qué cliente necesitas la recomendación de talla?")
	case s.activeClient != nil && s.activeProduct != nil:
		suggestions.NextQuestions = append(suggestions.NextQuestions,
			"¿Te gustaría ver tallas alternativas?",
			"¿Necesitas información sobre el ajuste?",
			"¿Quieres comparar con otros productos similares?",
		)
	}

	suggestions.RelatedProducts = topKeys(s.productMentions, topMentions)
	suggestions.RelatedClients = topKeys(s.clientMentions, topMentions)
	return suggestions, true
}

// IntentCounts returns how often each intent was seen in session id.
func (m *Manager) IntentCounts(id string) map[types.Intent]int {
	out := make(map[types.Intent]int)
	s := m.get(id)
	if s == nil {
		return out
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range s.intentCounts {
		out[k] = v
	}
	return out
}
