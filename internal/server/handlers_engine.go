package server

import (
	"net/http"

	"github.com/jonathan/sizing-assistant/internal/chatbot"
	"github.com/jonathan/sizing-assistant/internal/parsing"
	"github.com/jonathan/sizing-assistant/internal/ranking"
	"github.com/jonathan/sizing-assistant/internal/types"
)

// RecommendationResponse pairs the engine output with the entities it was computed for.
type RecommendationResponse struct {
	Client         chatbot.ClientSummary    `json:"client"`
	Product        chatbot.ProductSummary   `json:"product"`
	Recommendation types.SizeRecommendation `json:"recommendation"`
}

// ParseResponse shows how a message is read and what catalog context it pulls in.
type ParseResponse struct {
	ParsedQuery      types.ParsedQuery      `json:"parsed_query"`
	RetrievedContext types.RetrievedContext `json:"retrieved_context"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	client := s.catalog.GetClient(req.ClientID)
	if client == nil {
		s.writeError(w, &ErrNotFound{Resource: "client", ID: req.ClientID})
		return
	}
	product := s.catalog.GetProduct(req.ProductID)
	if product == nil {
		s.writeError(w, &ErrNotFound{Resource: "product", ID: req.ProductID})
		return
	}

	s.jsonResponse(w, http.StatusOK, RecommendationResponse{
		Client:         chatbot.SummarizeClient(client),
		Product:        chatbot.SummarizeProduct(product),
		Recommendation: ranking.RecommendSize(client, product),
	})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req types.ParseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	pq := parsing.Parse(req.Text)
	s.jsonResponse(w, http.StatusOK, ParseResponse{
		ParsedQuery:      pq,
		RetrievedContext: s.retriever.Retrieve(pq),
	})
}
