package composer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/sizing-assistant/internal/llm"
	"github.com/jonathan/sizing-assistant/internal/retrieval"
	"github.com/jonathan/sizing-assistant/internal/types"
)

type fakeLLM struct {
	reply    string
	err      error
	block    bool
	requests []llm.ChatRequest
	tiers    []llm.ModelTier
}

func (f *fakeLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateChat(ctx, llm.ChatRequest{Prompt: prompt}, tier)
}

func (f *fakeLLM) GenerateChat(ctx context.Context, req llm.ChatRequest, tier llm.ModelTier) (string, error) {
	f.requests = append(f.requests, req)
	f.tiers = append(f.tiers, tier)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func (f *fakeLLM) GetModel(tier llm.ModelTier) string { return "fake" }
func (f *fakeLLM) Close() error                       { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testInput() RecommendationInput {
	return RecommendationInput{
		Query: "¿Qué talla para C0001 en el P001?",
		Client: &types.Client{
			ClientID: "C0001", Name: "Ana García", HeightCM: 165, PreferredFit: types.PreferenceRegular,
			BodyMeasurements: types.BodyMeasurements{BustCM: 90, WaistCM: 70, HipsCM: 95},
		},
		Product: &types.Product{
			ProductID: "P001", Name: "Blusa Básica", Fit: types.FitRegular, Fabric: "Cotton",
			AvailableSizes: []types.Size{types.SizeS, types.SizeM, types.SizeL},
		},
		Recommendation: types.SizeRecommendation{
			RecommendedSize:  types.SizeM,
			Confidence:       0.63,
			Reasoning:        "Basándome en tus medidas...",
			AlternativeSizes: []types.Size{types.SizeS, types.SizeL},
			FitNotes:         "El algodón puede encogerse ligeramente tras los primeros lavados.",
		},
		Purchases: []retrieval.RelevantPurchase{
			{Purchase: types.Purchase{ProductID: "P004", SizePurchased: types.SizeM, FitFeedback: "Perfect fit"}},
		},
		History: []types.Message{{Role: types.RoleUser, Content: "hola"}, {Role: types.RoleAssistant, Content: "¡Hola!"}},
	}
}

func TestRecommendation_UsesLLM(t *testing.T) {
	fake := &fakeLLM{reply: "La talla M es ideal para ti."}
	c := New(fake, time.Second, quietLogger())

	result := c.Recommendation(context.Background(), testInput())

	assert.Equal(t, "La talla M es ideal para ti.", result.Text)
	assert.False(t, result.FallbackUsed)
	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Contains(t, req.System, "asistente especializado")
	assert.Contains(t, req.Prompt, "Talla recomendada: M")
	assert.Contains(t, req.Prompt, "Historial relevante: Producto P004, talla M: Perfect fit")
	assert.Len(t, req.History, 2)
	assert.Equal(t, llm.TierStandard, fake.tiers[0])
}

func TestRecommendation_FallbackOnError(t *testing.T) {
	fake := &fakeLLM{err: errors.New("quota exceeded")}
	c := New(fake, time.Second, quietLogger())

	result := c.Recommendation(context.Background(), testInput())

	assert.True(t, result.FallbackUsed)
	assert.Contains(t, result.Text, "Te recomiendo la talla M para el Blusa Básica (confianza: 63%).")
	assert.Contains(t, result.Text, "Tallas alternativas: S, L.")
}

func TestRecommendation_FallbackOnTimeout(t *testing.T) {
	fake := &fakeLLM{block: true}
	c := New(fake, 10*time.Millisecond, quietLogger())

	result := c.Recommendation(context.Background(), testInput())

	assert.True(t, result.FallbackUsed)
	assert.Contains(t, result.Text, "talla M")
}

func TestRecommendation_FallbackOnEmptyReply(t *testing.T) {
	c := New(&fakeLLM{reply: "   "}, time.Second, quietLogger())

	result := c.Recommendation(context.Background(), testInput())

	assert.True(t, result.FallbackUsed)
}

func TestRecommendation_NilClient(t *testing.T) {
	c := New(nil, 0, nil)

	result := c.Recommendation(context.Background(), testInput())

	assert.True(t, result.FallbackUsed)
	assert.Contains(t, result.Text, "Basándome en tus medidas")
	assert.Contains(t, result.Text, "El algodón puede encogerse")
}

func TestProductSearch_NoProducts(t *testing.T) {
	fake := &fakeLLM{reply: "unused"}
	c := New(fake, time.Second, quietLogger())

	result := c.ProductSearch(context.Background(), "busca seda", nil, nil)

	assert.Equal(t, NoProductsMessage, result.Text)
	assert.Empty(t, fake.requests)
}

func TestProductSearch_PromptListsTopThree(t *testing.T) {
	fake := &fakeLLM{reply: "Mira estos productos"}
	c := New(fake, time.Second, quietLogger())
	products := []*types.Product{
		{ProductID: "P001", Name: "A", Fit: types.FitSlim, Fabric: "Cotton"},
		{ProductID: "P002", Name: "B", Fit: types.FitSlim, Fabric: "Cotton"},
		{ProductID: "P003", Name: "C", Fit: types.FitSlim, Fabric: "Cotton"},
		{ProductID: "P004", Name: "D", Fit: types.FitSlim, Fabric: "Cotton"},
	}

	result := c.ProductSearch(context.Background(), "algo slim", products, nil)

	assert.Equal(t, "Mira estos productos", result.Text)
	require.Len(t, fake.requests, 1)
	assert.Contains(t, fake.requests[0].Prompt, "**C** (P003)")
	assert.NotContains(t, fake.requests[0].Prompt, "P004")
	assert.Equal(t, llm.TierLite, fake.tiers[0])
}

func TestProductSearchFallback_ListsUpToFive(t *testing.T) {
	products := make([]*types.Product, 0, 6)
	for _, id := range []string{"P001", "P002", "P003", "P004", "P005", "P006"} {
		products = append(products, &types.Product{ProductID: id, Name: id, Fit: types.FitRegular, Fabric: "Wool"})
	}

	text := ProductSearchFallback(products)

	assert.Contains(t, text, "(P005)")
	assert.NotContains(t, text, "(P006)")
	assert.Contains(t, text, "¿Cuál te interesa")
}

func TestGeneral_Fallback(t *testing.T) {
	c := New(nil, time.Second, quietLogger())

	result := c.General(context.Background(), "hola", nil, nil, nil)

	assert.Equal(t, GeneralFallback, result.Text)
	assert.True(t, result.FallbackUsed)
}

func TestGeneral_IncludesMentionedEntities(t *testing.T) {
	fake := &fakeLLM{reply: "¡Claro!"}
	c := New(fake, time.Second, quietLogger())

	c.General(context.Background(), "hola", []*types.Client{{Name: "Ana"}}, []*types.Product{{Name: "Blusa"}}, nil)

	require.Len(t, fake.requests, 1)
	assert.Contains(t, fake.requests[0].Prompt, "Clientes mencionados: Ana; Productos mencionados: Blusa")
}
