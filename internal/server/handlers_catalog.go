package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/sizing-assistant/internal/catalog"
	"github.com/jonathan/sizing-assistant/internal/chatbot"
	"github.com/jonathan/sizing-assistant/internal/retrieval"
	"github.com/jonathan/sizing-assistant/internal/types"
)

const (
	defaultListLimit    = 20
	maxListLimit        = 100
	defaultSimilarLimit = 5
)

// ClientListResponse is a page of client summaries.
type ClientListResponse struct {
	Clients []chatbot.ClientSummary `json:"clients"`
	Count   int                     `json:"count"`
}

// ProductListResponse is a page of product summaries.
type ProductListResponse struct {
	Products []chatbot.ProductSummary `json:"products"`
	Count    int                      `json:"count"`
}

// SimilarClient is one entry of a similar-clients answer.
type SimilarClient struct {
	Client     chatbot.ClientSummary `json:"client"`
	Similarity float64               `json:"similarity"`
}

// StatsResponse describes the loaded catalog and live sessions.
type StatsResponse struct {
	Clients        catalog.ClientStats  `json:"clients"`
	Products       catalog.ProductStats `json:"products"`
	ActiveSessions int                  `json:"active_sessions"`
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, defaultListLimit, maxListLimit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var clients []*types.Client
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		clients = s.catalog.SearchClients(q, limit)
	} else {
		clients = s.catalog.AllClients()
		if len(clients) > limit {
			clients = clients[:limit]
		}
	}

	resp := ClientListResponse{Clients: make([]chatbot.ClientSummary, 0, len(clients))}
	for _, c := range clients {
		resp.Clients = append(resp.Clients, chatbot.SummarizeClient(c))
	}
	resp.Count = len(resp.Clients)
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	client := s.catalog.GetClient(id)
	if client == nil {
		s.writeError(w, &ErrNotFound{Resource: "client", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, client)
}

func (s *Server) handleSimilarClients(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	client := s.catalog.GetClient(id)
	if client == nil {
		s.writeError(w, &ErrNotFound{Resource: "client", ID: id})
		return
	}
	limit, err := queryLimit(r, defaultSimilarLimit, maxListLimit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	similar := s.retriever.FindSimilarClients(client, limit)
	out := make([]SimilarClient, 0, len(similar))
	for _, sc := range similar {
		out = append(out, similarClient(sc))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"client_id": id, "similar": out})
}

func similarClient(sc retrieval.SimilarClient) SimilarClient {
	return SimilarClient{Client: chatbot.SummarizeClient(sc.Client), Similarity: sc.Similarity}
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, defaultListLimit, maxListLimit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var products []*types.Product
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		products = s.catalog.SearchProducts(q, limit)
	} else {
		products = s.catalog.AllProducts()
		if len(products) > limit {
			products = products[:limit]
		}
	}

	resp := ProductListResponse{Products: make([]chatbot.ProductSummary, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, chatbot.SummarizeProduct(p))
	}
	resp.Count = len(resp.Products)
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	product := s.catalog.GetProduct(id)
	if product == nil {
		s.writeError(w, &ErrNotFound{Resource: "product", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, product)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, StatsResponse{
		Clients:        s.catalog.ClientStats(),
		Products:       s.catalog.ProductStats(),
		ActiveSessions: s.bot.Sessions().Count(),
	})
}
