package parsing

import (
	"testing"

	"github.com/jonathan/sizing-assistant/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestExtractClientIDs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"user shorthand", "User5", []string{"C0005"}},
		{"cliente prefix", "cliente C0001", []string{"C0001"}},
		{"short id padded", "para c12 por favor", []string{"C0012"}},
		{"usuario with space", "soy el usuario 7", []string{"C0007"}},
		{"user out of range", "User150", []string{}},
		{"dedupe by normalized value", "C1 y también C0001", []string{"C0001"}},
		{"order of appearance", "User3 o C0002", []string{"C0003", "C0002"}},
		{"bare number ignored", "tengo 25 años", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractClientIDs(tt.text))
		})
	}
}

func TestExtractProductIDs(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"short id", "P1", []string{"P001"}},
		{"producto prefix", "producto P025", []string{"P025"}},
		{"lowercase", "quiero el p7", []string{"P007"}},
		{"dedupe", "P1 o P001", []string{"P001"}},
		{"several", "compara P002 y P010", []string{"P002", "P010"}},
		{"bare number ignored", "talla 38", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractProductIDs(tt.text))
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	keywords := ExtractKeywords("Busco una camisa AZUL de algodón, slim. ¿Camisa?")

	assert.Equal(t, []string{"camisa", "azul", "algodón", "slim"}, keywords)
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected types.Intent
	}{
		{"continuation", "Sí", types.IntentSizeRecommendation},
		{"continuation with punctuation", "ok!", types.IntentSizeRecommendation},
		{"continuation phrase", "de acuerdo", types.IntentSizeRecommendation},
		{"search beats size", "busca la talla M", types.IntentProductSearch},
		{"search phrase", "¿Qué productos tenéis?", types.IntentProductSearch},
		{"search pattern", "productos de lana", types.IntentProductSearch},
		{"descriptor without client", "algo oversized", types.IntentProductSearch},
		{"descriptor with client", "ajuste slim para C0001", types.IntentSizeRecommendation},
		{"size keyword", "¿Qué talla necesita C0002 para el P003?", types.IntentSizeRecommendation},
		{"visual", "genera un avatar", types.IntentSizeRecommendation},
		{"help", "necesito ayuda", types.IntentHelp},
		{"general", "hola, buenos días", types.IntentGeneral},
		{"empty", "", types.IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyIntent(tt.text))
		})
	}
}

func TestIsContinuation_LongReplyIsNot(t *testing.T) {
	assert.False(t, IsContinuation("sí, pero quiero ver otra cosa"))
	assert.False(t, IsContinuation("hola"))
	assert.True(t, IsContinuation("  Vale.  "))
}

func TestSearchTrigger_WholeWordOnly(t *testing.T) {
	// "ver" must not fire inside other words
	assert.Equal(t, types.IntentGeneral, ClassifyIntent("me gusta el verde"))
	assert.Equal(t, types.IntentSizeRecommendation, ClassifyIntent("¿Qué talla para C0001 en el P001 verde?"))
	assert.Equal(t, types.IntentProductSearch, ClassifyIntent("quiero ver abrigos"))
}

func TestParse_FullQuery(t *testing.T) {
	pq := Parse("Muéstrame cómo se ve el P001 en talla M para User5")

	assert.Equal(t, types.IntentSizeRecommendation, pq.Intent)
	assert.Equal(t, []string{"P001"}, pq.ProductIDs)
	assert.Equal(t, []string{"C0005"}, pq.ClientIDs)
	assert.True(t, pq.HasVisualIntent)
	assert.False(t, pq.IsContinuation)
	assert.Equal(t, "Muéstrame cómo se ve el P001 en talla M para User5", pq.OriginalQuery)
}

func TestParse_EmptyText(t *testing.T) {
	pq := Parse("")

	assert.Equal(t, types.IntentGeneral, pq.Intent)
	assert.Empty(t, pq.ProductIDs)
	assert.Empty(t, pq.ClientIDs)
	assert.Empty(t, pq.Keywords)
	assert.False(t, pq.HasVisualIntent)
}
