package ranking

import (
	"fmt"
	"testing"

	"github.com/jonathan/sizing-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(bust, waist, hips float64) types.BodyMeasurements {
	return types.BodyMeasurements{BustCM: bust, WaistCM: waist, HipsCM: hips}
}

func testClient() *types.Client {
	return &types.Client{
		ClientID:         "C0001",
		Name:             "Ana García",
		Age:              28,
		HeightCM:         165,
		WeightKG:         58,
		BodyMeasurements: body(90, 70, 95),
		PreferredFit:     types.PreferenceRegular,
	}
}

func testProduct() *types.Product {
	return &types.Product{
		ProductID:      "P001",
		Name:           "Blusa Básica",
		AvailableSizes: []types.Size{types.SizeS, types.SizeM, types.SizeL},
		SizeChart: types.SizeChart{
			types.SizeXS: body(82, 62, 87),
			types.SizeS:  body(86, 66, 91),
			types.SizeM:  body(90, 70, 95),
			types.SizeL:  body(94, 74, 99),
			types.SizeXL: body(98, 78, 103),
		},
		Fit:            types.FitRegular,
		Fabric:         "Cotton",
		ModelReference: types.ModelReference{HeightCM: 170, WearingSize: types.SizeM},
	}
}

// flatProduct has identical chart entries for every size so only deltas decide.
func flatProduct(fit types.FitType, sizes ...types.Size) *types.Product {
	chart := types.SizeChart{}
	for _, size := range types.SizeOrder {
		chart[size] = body(90, 70, 95)
	}
	return &types.Product{
		ProductID:      "P010",
		Name:           "Prenda Plana",
		AvailableSizes: sizes,
		SizeChart:      chart,
		Fit:            fit,
		Fabric:         "Silk",
		ModelReference: types.ModelReference{HeightCM: 165, WearingSize: types.SizeM},
	}
}

func TestRecommendSize_ExactMeasurementMatch(t *testing.T) {
	rec := RecommendSize(testClient(), testProduct())

	assert.Equal(t, types.SizeM, rec.RecommendedSize)
	// measurement 1.0 at M plus regular/regular fit delta 0.2
	assert.InDelta(t, 0.6+0.15*0.2, rec.Confidence, 1e-9)
	assert.Len(t, rec.AlternativeSizes, 2)
	assert.NotContains(t, rec.AlternativeSizes, types.SizeM)
	assert.Contains(t, rec.Reasoning, "talla M del Blusa Básica")
	assert.Contains(t, rec.Reasoning, "busto: 90cm")
	assert.Contains(t, rec.Reasoning, "que coincide con tu preferencia")
}

func TestRecommendSize_OnlyOfferedSizes(t *testing.T) {
	client := testClient()
	client.BodyMeasurements = body(82, 62, 87) // XS body

	rec := RecommendSize(client, testProduct())

	assert.Equal(t, types.SizeS, rec.RecommendedSize)
	for _, alt := range rec.AlternativeSizes {
		assert.Contains(t, []types.Size{types.SizeS, types.SizeM, types.SizeL}, alt)
	}
	assert.Zero(t, rec.Scores[types.SizeXS])
	assert.Zero(t, rec.Scores[types.SizeXL])
}

func TestRecommendSize_TooTightHistoryBiasesUp(t *testing.T) {
	client := testClient()
	client.PurchaseHistory = []types.Purchase{
		{ProductID: "P002", SizePurchased: types.SizeM, FitFeedback: "Too tight around the waist"},
	}
	product := flatProduct(types.FitLoose, types.SizeS, types.SizeM, types.SizeL)

	rec := RecommendSize(client, product)

	assert.Greater(t, rec.Scores[types.SizeL], rec.Scores[types.SizeS])
	assert.Equal(t, types.SizeL, rec.RecommendedSize)
}

func TestRecommendSize_TooLooseHistoryBiasesDown(t *testing.T) {
	client := testClient()
	client.PurchaseHistory = []types.Purchase{
		{ProductID: "P002", SizePurchased: types.SizeM, FitFeedback: "too loose"},
	}
	product := flatProduct(types.FitLoose, types.SizeS, types.SizeM, types.SizeL)

	rec := RecommendSize(client, product)

	assert.Equal(t, types.SizeS, rec.RecommendedSize)
	assert.Greater(t, rec.Scores[types.SizeS], rec.Scores[types.SizeL])
}

func TestRecommendSize_SlimPreferenceNudgesSmaller(t *testing.T) {
	product := flatProduct(types.FitTailored, types.SizeOrder...)

	slim := testClient()
	slim.PreferredFit = types.PreferenceSlim
	regular := testClient()

	slimRec := RecommendSize(slim, product)
	regularRec := RecommendSize(regular, product)

	assert.Greater(t, slimRec.Scores[types.SizeXS], regularRec.Scores[types.SizeXS])
	assert.Less(t, slimRec.Scores[types.SizeXL], regularRec.Scores[types.SizeXL])
	assert.Equal(t, types.SizeXS, slimRec.RecommendedSize)
}

func TestRecommendSize_NoAvailableSizes(t *testing.T) {
	product := testProduct()
	product.AvailableSizes = nil

	rec := RecommendSize(testClient(), product)

	assert.Equal(t, types.SizeXS, rec.RecommendedSize)
	assert.Zero(t, rec.Confidence)
	assert.Equal(t, []types.Size{types.SizeS, types.SizeM}, rec.AlternativeSizes)
	assert.Equal(t, fmt.Sprintf(NoSizesReasoning, product.Name), rec.Reasoning)
	assert.NotContains(t, rec.Reasoning, "se ajusta mejor")
}

func TestRecommendSize_TieBreakUsesCanonicalOrder(t *testing.T) {
	product := flatProduct(types.FitLoose, types.SizeXL, types.SizeM, types.SizeS)

	rec := RecommendSize(testClient(), product)

	assert.Equal(t, types.SizeS, rec.RecommendedSize)
	assert.Equal(t, []types.Size{types.SizeM, types.SizeXL}, rec.AlternativeSizes)
}

func TestRecommendSize_DoesNotMutateInputs(t *testing.T) {
	client := testClient()
	client.PurchaseHistory = []types.Purchase{{ProductID: "P003", SizePurchased: types.SizeS, FitFeedback: "Perfect fit"}}
	product := testProduct()

	rec1 := RecommendSize(client, product)
	rec2 := RecommendSize(client, product)

	assert.Equal(t, rec1, rec2)
	assert.Equal(t, testProduct(), product)
	require.Len(t, client.PurchaseHistory, 1)
	assert.Equal(t, types.SizeS, client.PurchaseHistory[0].SizePurchased)
}

func TestRecommendSize_PositiveHistoryMentioned(t *testing.T) {
	client := testClient()
	client.PurchaseHistory = []types.Purchase{{ProductID: "P003", SizePurchased: types.SizeM, FitFeedback: "Comfortable"}}

	rec := RecommendSize(client, testProduct())

	assert.Contains(t, rec.Reasoning, "experiencias positivas")
}

func TestComputeMeasurementScores_ExactMatchIsOne(t *testing.T) {
	scores := computeMeasurementScores(body(90, 70, 95), testProduct())

	assert.InDelta(t, 1.0, scores[types.SizeM], 1e-9)
	assert.Less(t, scores[types.SizeS], scores[types.SizeM])
	assert.Less(t, scores[types.SizeL], scores[types.SizeM])
	assert.Zero(t, scores[types.SizeXS])
}

func TestComputeMeasurementScores_DecayWeights(t *testing.T) {
	product := flatProduct(types.FitRegular, types.SizeM)
	product.SizeChart[types.SizeM] = body(100, 78, 105)

	scores := computeMeasurementScores(body(90, 70, 95), product)

	expected := 0.40*0.36787944117 + 0.35*0.36787944117 + 0.25*0.36787944117
	assert.InDelta(t, expected, scores[types.SizeM], 1e-6)
}

func TestComputeHistoryDeltas_TooTight(t *testing.T) {
	deltas := computeHistoryDeltas([]types.Purchase{{SizePurchased: types.SizeM, FitFeedback: "too tight"}})

	assert.InDelta(t, -0.1, deltas[types.SizeXS], 1e-9)
	assert.InDelta(t, -0.1, deltas[types.SizeS], 1e-9)
	assert.InDelta(t, -0.1, deltas[types.SizeM], 1e-9)
	assert.InDelta(t, 0.1, deltas[types.SizeL], 1e-9)
	assert.InDelta(t, 0.1, deltas[types.SizeXL], 1e-9)
}

func TestComputeHistoryDeltas_TooLoose(t *testing.T) {
	deltas := computeHistoryDeltas([]types.Purchase{{SizePurchased: types.SizeM, FitFeedback: "Too loose"}})

	assert.InDelta(t, 0.1, deltas[types.SizeXS], 1e-9)
	assert.InDelta(t, 0.1, deltas[types.SizeS], 1e-9)
	assert.InDelta(t, -0.1, deltas[types.SizeM], 1e-9)
	assert.InDelta(t, -0.1, deltas[types.SizeL], 1e-9)
	assert.InDelta(t, -0.1, deltas[types.SizeXL], 1e-9)
}

func TestComputeHistoryDeltas_GoodFitAtEdge(t *testing.T) {
	deltas := computeHistoryDeltas([]types.Purchase{{SizePurchased: types.SizeXS, FitFeedback: "perfect"}})

	assert.InDelta(t, 0.2, deltas[types.SizeXS], 1e-9)
	assert.InDelta(t, 0.05, deltas[types.SizeS], 1e-9)
	assert.Zero(t, deltas[types.SizeM])
}

func TestComputeHistoryDeltas_AccumulatesAndIgnoresUnknown(t *testing.T) {
	deltas := computeHistoryDeltas([]types.Purchase{
		{SizePurchased: types.SizeM, FitFeedback: "perfect"},
		{SizePurchased: types.SizeM, FitFeedback: "comfortable"},
		{SizePurchased: "XXL", FitFeedback: "too tight"},
		{SizePurchased: types.SizeL, FitFeedback: "nice colour"},
	})

	assert.InDelta(t, 0.4, deltas[types.SizeM], 1e-9)
	assert.InDelta(t, 0.1, deltas[types.SizeS], 1e-9)
	assert.InDelta(t, 0.1, deltas[types.SizeL], 1e-9)
	assert.Zero(t, deltas[types.SizeXL])
}

func TestComputeFitDeltas_Table(t *testing.T) {
	tests := []struct {
		name       string
		preference types.FitPreference
		fit        types.FitType
		sizeM      float64
	}{
		{"slim slim", types.PreferenceSlim, types.FitSlim, 0.2},
		{"slim oversized", types.PreferenceSlim, types.FitOversized, -0.15},
		{"regular regular", types.PreferenceRegular, types.FitRegular, 0.2},
		{"regular oversized", types.PreferenceRegular, types.FitOversized, 0.05},
		{"loose tailored", types.PreferenceLoose, types.FitTailored, -0.1},
		{"loose product unlisted", types.PreferenceRegular, types.FitLoose, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltas := computeFitDeltas(tt.preference, tt.fit)
			assert.InDelta(t, tt.sizeM, deltas[types.SizeM], 1e-9)
		})
	}
}

func TestComputeFitDeltas_LooseNudgesLarger(t *testing.T) {
	deltas := computeFitDeltas(types.PreferenceLoose, types.FitOversized)

	assert.InDelta(t, 0.1, deltas[types.SizeXS], 1e-9)
	assert.InDelta(t, 0.3, deltas[types.SizeXL], 1e-9)
	assert.InDelta(t, 0.25, deltas[types.SizeL], 1e-9)
}

func TestBuildFitNotes_HeightAndFabric(t *testing.T) {
	client := testClient()
	client.HeightCM = 182

	notes := buildFitNotes(client, testProduct())

	assert.Contains(t, notes, "12cm más alta")
	assert.Contains(t, notes, "El algodón puede encogerse")
}

func TestBuildFitNotes_ShorterClient(t *testing.T) {
	client := testClient()
	client.HeightCM = 150

	notes := buildFitNotes(client, testProduct())

	assert.Contains(t, notes, "20cm más baja")
}

func TestBuildFitNotes_NoneApply(t *testing.T) {
	product := testProduct()
	product.Fabric = "Silk"

	notes := buildFitNotes(testClient(), product)

	assert.Equal(t, NoFitNotes, notes)
}

func TestBuildReasoning_SlimPreferenceOnOversized(t *testing.T) {
	client := testClient()
	client.PreferredFit = types.PreferenceSlim
	product := testProduct()
	product.Fit = types.FitOversized

	reasoning := buildReasoning(client, product, types.SizeM)

	assert.Contains(t, reasoning, "talla más pequeña")
}
