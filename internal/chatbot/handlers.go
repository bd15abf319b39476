package chatbot

import (
	"context"
	"errors"
	"strings"

	"github.com/jonathan/sizing-assistant/internal/avatar"
	"github.com/jonathan/sizing-assistant/internal/composer"
	"github.com/jonathan/sizing-assistant/internal/parsing"
	"github.com/jonathan/sizing-assistant/internal/ranking"
	"github.com/jonathan/sizing-assistant/internal/session"
	"github.com/jonathan/sizing-assistant/internal/types"
)

// Products shown for a search, and the cap on the keyword fallback search.
const (
	listedProducts      = 5
	fallbackSearchLimit = 5
)

// dispatch parses and routes a message. The returned error is unexpected; a missing client
// or product is answered here with a clarifying question.
func (b *Bot) dispatch(ctx context.Context, sessionID, message string) (Response, session.TurnContext, error) {
	pq := parsing.Parse(message)
	rc := b.retriever.Retrieve(pq)

	var (
		resp Response
		tc   session.TurnContext
		err  error
	)
	switch rc.Intent {
	case types.IntentSizeRecommendation:
		resp, tc, err = b.recommendSize(ctx, sessionID, message, pq, rc)
	case types.IntentProductSearch:
		resp, tc = b.searchProducts(ctx, sessionID, message, rc)
	case types.IntentHelp:
		resp = Response{Text: HelpMessage}
		tc = session.TurnContext{Clients: rc.Clients, Products: rc.Products}
	default:
		resp, tc = b.general(ctx, sessionID, message, rc)
	}

	var unresolved *UnresolvedEntityError
	if errors.As(err, &unresolved) {
		resp = clarify(unresolved)
		tc = session.TurnContext{Clients: rc.Clients, Products: rc.Products}
		err = nil
	}
	if err != nil {
		return Response{}, session.TurnContext{}, err
	}

	resp.Intent = rc.Intent
	tc.Intent = rc.Intent
	if resp.Metadata == nil {
		resp.Metadata = map[string]any{}
	}
	resp.Metadata["intent"] = string(rc.Intent)
	resp.Metadata["success"] = !resp.NeedsClient && !resp.NeedsProduct
	return resp, tc, nil
}

func clarify(err *UnresolvedEntityError) Response {
	if err.Missing == MissingClient {
		return Response{Text: NeedsClientMessage, NeedsClient: true}
	}
	return Response{Text: NeedsProductMessage, NeedsProduct: true}
}

// resolveEntities picks the first retrieved client and product, falling back to the
// session's active ones.
func (b *Bot) resolveEntities(sessionID string, rc types.RetrievedContext) (*types.Client, *types.Product, error) {
	var client *types.Client
	if len(rc.Clients) > 0 {
		client = rc.Clients[0]
	} else {
		client = b.sessions.ActiveClient(sessionID)
	}
	if client == nil {
		return nil, nil, &UnresolvedEntityError{Missing: MissingClient}
	}

	var product *types.Product
	if len(rc.Products) > 0 {
		product = rc.Products[0]
	} else {
		product = b.sessions.ActiveProduct(sessionID)
	}
	if product == nil {
		return nil, nil, &UnresolvedEntityError{Missing: MissingProduct}
	}
	return client, product, nil
}

func (b *Bot) recommendSize(ctx context.Context, sessionID, message string, pq types.ParsedQuery, rc types.RetrievedContext) (Response, session.TurnContext, error) {
	client, product, err := b.resolveEntities(sessionID, rc)
	if err != nil {
		return Response{}, session.TurnContext{}, err
	}
	b.sessions.SetActiveClient(sessionID, client)
	b.sessions.SetActiveProduct(sessionID, product)

	// The numeric answer exists before any text generation is attempted.
	rec := ranking.RecommendSize(client, product)

	result := b.composer.Recommendation(ctx, composer.RecommendationInput{
		Query:          message,
		Client:         client,
		Product:        product,
		Recommendation: rec,
		Purchases:      b.retriever.RelevantPurchaseHistory(client, product),
		History:        b.sessions.History(sessionID),
	})

	clientSummary := SummarizeClient(client)
	productSummary := SummarizeProduct(product)
	resp := Response{
		Text:           result.Text,
		FallbackUsed:   result.FallbackUsed,
		Recommendation: &rec,
		Client:         &clientSummary,
		Product:        &productSummary,
	}

	if pq.HasVisualIntent && b.avatars != nil {
		img, err := b.avatars.Generate(ctx, client.ClientID, product.ProductID, rec.RecommendedSize, avatar.DetectColor(message))
		if err != nil {
			b.logger.Warn("avatar generation failed", "session_id", sessionID, "error", err)
		} else {
			resp.Avatar = img
		}
	}

	tc := session.TurnContext{
		Clients:  []*types.Client{client},
		Products: []*types.Product{product},
	}
	return resp, tc, nil
}

func (b *Bot) searchProducts(ctx context.Context, sessionID, message string, rc types.RetrievedContext) (Response, session.TurnContext) {
	products := rc.Products
	if len(products) == 0 && len(rc.Keywords) > 0 {
		products = b.catalog.SearchProducts(strings.Join(rc.Keywords, " "), fallbackSearchLimit)
	}
	tc := session.TurnContext{Clients: rc.Clients, Products: products}

	if len(products) == 0 {
		return Response{Text: composer.NoProductsMessage}, tc
	}

	result := b.composer.ProductSearch(ctx, message, products, b.sessions.History(sessionID))

	listed := products
	if len(listed) > listedProducts {
		listed = listed[:listedProducts]
	}
	summaries := make([]ProductSummary, 0, len(listed))
	for _, p := range listed {
		summaries = append(summaries, SummarizeProduct(p))
	}

	return Response{
		Text:          result.Text,
		FallbackUsed:  result.FallbackUsed,
		Products:      summaries,
		ProductsFound: len(products),
	}, tc
}

func (b *Bot) general(ctx context.Context, sessionID, message string, rc types.RetrievedContext) (Response, session.TurnContext) {
	result := b.composer.General(ctx, message, rc.Clients, rc.Products, b.sessions.History(sessionID))
	return Response{Text: result.Text, FallbackUsed: result.FallbackUsed},
		session.TurnContext{Clients: rc.Clients, Products: rc.Products}
}
