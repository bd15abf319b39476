// Package composer turns engine output into conversational replies. It asks the LLM
// for prose and falls back to fixed templates whenever the LLM is missing or fails,
// so a reply is always produced and the recommended size is never changed.
package composer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/sizing-assistant/internal/llm"
	"github.com/jonathan/sizing-assistant/internal/prompts"
	"github.com/jonathan/sizing-assistant/internal/retrieval"
	"github.com/jonathan/sizing-assistant/internal/types"
)

const promptFile = "composer.json"

// DefaultTimeout bounds a single LLM call
const DefaultTimeout = 20 * time.Second

// Products listed in prompts and fallbacks
const (
	promptProducts  = 3
	listedProducts  = 5
	promptPurchases = 3
)

// Result is a composed reply.
type Result struct {
	Text         string
	FallbackUsed bool
}

// RecommendationInput is everything the recommendation reply may mention.
type RecommendationInput struct {
	Query          string
	Client         *types.Client
	Product        *types.Product
	Recommendation types.SizeRecommendation
	Purchases      []retrieval.RelevantPurchase
	History        []types.Message
}

// Composer writes replies. A nil llm.Client makes every reply a template.
type Composer struct {
	client  llm.Client
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Composer.
func New(client llm.Client, timeout time.Duration, logger *slog.Logger) *Composer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{client: client, timeout: timeout, logger: logger}
}

// Recommendation explains a size recommendation.
func (c *Composer) Recommendation(ctx context.Context, in RecommendationInput) Result {
	fallback := RecommendationFallback(in.Product, in.Recommendation)

	prompt, err := prompts.Render(promptFile, "recommendation", map[string]string{
		"Query":   in.Query,
		"Context": BuildRecommendationContext(in),
	})
	if err != nil {
		return c.fail("recommendation", err, fallback)
	}
	return c.chat(ctx, "recommendation", prompt, in.History, llm.TierStandard, fallback)
}

// ProductSearch presents found products and asks which one to size.
func (c *Composer) ProductSearch(ctx context.Context, query string, products []*types.Product, history []types.Message) Result {
	if len(products) == 0 {
		return Result{Text: NoProductsMessage, FallbackUsed: true}
	}
	fallback := ProductSearchFallback(products)

	prompt, err := prompts.Render(promptFile, "product_search", map[string]string{
		"Query":    query,
		"Products": productLines(products, promptProducts),
	})
	if err != nil {
		return c.fail("product_search", err, fallback)
	}
	return c.chat(ctx, "product_search", prompt, history, llm.TierLite, fallback)
}

// General answers messages that are not about a specific recommendation or search.
func (c *Composer) General(ctx context.Context, query string, clients []*types.Client, products []*types.Product, history []types.Message) Result {
	prompt, err := prompts.Render(promptFile, "general", map[string]string{
		"Query":   query,
		"Context": generalContext(clients, products),
	})
	if err != nil {
		return c.fail("general", err, GeneralFallback)
	}
	return c.chat(ctx, "general", prompt, history, llm.TierLite, GeneralFallback)
}

func (c *Composer) chat(ctx context.Context, kind, prompt string, history []types.Message, tier llm.ModelTier, fallback string) Result {
	if c.client == nil {
		return Result{Text: fallback, FallbackUsed: true}
	}

	system, err := prompts.Get(promptFile, "system")
	if err != nil {
		return c.fail(kind, err, fallback)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.client.GenerateChat(ctx, llm.ChatRequest{
		System:  system,
		History: history,
		Prompt:  prompt,
	}, tier)
	if err != nil {
		return c.fail(kind, err, fallback)
	}
	if strings.TrimSpace(text) == "" {
		return c.fail(kind, fmt.Errorf("empty reply"), fallback)
	}
	return Result{Text: text}
}

func (c *Composer) fail(kind string, err error, fallback string) Result {
	c.logger.Warn("composer falling back to template", "kind", kind, "error", err)
	return Result{Text: fallback, FallbackUsed: true}
}
