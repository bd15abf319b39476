package composer

import (
	"fmt"
	"strings"

	"github.com/jonathan/sizing-assistant/internal/types"
)

// Fixed replies
const (
	NoProductsMessage = "No encontré productos que coincidan con tu búsqueda. ¿Podrías ser más específico? " +
		"Puedes buscar por nombre, ID (ej: P001), material (algodón, lana) o tipo de ajuste (slim, regular)."

	GeneralFallback = "¡Hola! Soy tu asistente de tallas. Para darte la mejor recomendación, necesito saber " +
		"qué producto te interesa y para qué cliente es. ¿Podrías contarme más detalles?"
)

// RecommendationFallback states the engine's answer without an LLM.
func RecommendationFallback(product *types.Product, rec types.SizeRecommendation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Te recomiendo la talla %s para el %s (confianza: %.0f%%).",
		rec.RecommendedSize, product.Name, rec.Confidence*100)
	if rec.Reasoning != "" {
		sb.WriteString("\n\n")
		sb.WriteString(rec.Reasoning)
	}
	if rec.FitNotes != "" {
		sb.WriteString("\n\n")
		sb.WriteString(rec.FitNotes)
	}
	if len(rec.AlternativeSizes) > 0 {
		fmt.Fprintf(&sb, "\n\nTallas alternativas: %s.", joinSizes(rec.AlternativeSizes))
	}
	return sb.String()
}

// ProductSearchFallback lists products and asks which one to size.
func ProductSearchFallback(products []*types.Product) string {
	return "He encontrado estos productos:\n" +
		productLines(products, listedProducts) +
		"\n\n¿Cuál te interesa para recomendarte una talla?"
}

// BuildRecommendationContext renders the structured facts given to the LLM.
func BuildRecommendationContext(in RecommendationInput) string {
	client, product, rec := in.Client, in.Product, in.Recommendation
	body := client.BodyMeasurements

	lines := []string{
		fmt.Sprintf("Cliente: %s", client.Name),
		fmt.Sprintf("Medidas: Busto %gcm, Cintura %gcm, Cadera %gcm", body.BustCM, body.WaistCM, body.HipsCM),
		fmt.Sprintf("Altura: %dcm", client.HeightCM),
		fmt.Sprintf("Preferencia de ajuste: %s", client.PreferredFit),
		fmt.Sprintf("Producto: %s (%s)", product.Name, product.ProductID),
		fmt.Sprintf("Tipo de ajuste: %s", product.Fit),
		fmt.Sprintf("Material: %s", product.Fabric),
		fmt.Sprintf("Tallas disponibles: %s", joinSizes(product.AvailableSizes)),
		fmt.Sprintf("Talla recomendada: %s", rec.RecommendedSize),
		fmt.Sprintf("Confianza: %.2f", rec.Confidence),
		fmt.Sprintf("Razonamiento técnico: %s", rec.Reasoning),
		fmt.Sprintf("Notas del ajuste: %s", rec.FitNotes),
	}
	if len(rec.AlternativeSizes) > 0 {
		lines = append(lines, fmt.Sprintf("Tallas alternativas: %s", joinSizes(rec.AlternativeSizes)))
	}

	if len(in.Purchases) > 0 {
		purchases := in.Purchases
		if len(purchases) > promptPurchases {
			purchases = purchases[:promptPurchases]
		}
		summary := make([]string, 0, len(purchases))
		for _, p := range purchases {
			summary = append(summary, fmt.Sprintf("Producto %s, talla %s: %s",
				p.Purchase.ProductID, p.Purchase.SizePurchased, p.Purchase.FitFeedback))
		}
		lines = append(lines, fmt.Sprintf("Historial relevante: %s", strings.Join(summary, "; ")))
	}

	return strings.Join(lines, "\n")
}

func productLines(products []*types.Product, limit int) string {
	if len(products) > limit {
		products = products[:limit]
	}
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- **%s** (%s): Ajuste %s, material %s", p.Name, p.ProductID, p.Fit, p.Fabric))
	}
	return strings.Join(lines, "\n")
}

func generalContext(clients []*types.Client, products []*types.Product) string {
	var parts []string
	if len(clients) > 0 {
		names := make([]string, 0, len(clients))
		for _, c := range clients {
			names = append(names, c.Name)
		}
		parts = append(parts, "Clientes mencionados: "+strings.Join(names, ", "))
	}
	if len(products) > 0 {
		names := make([]string, 0, len(products))
		for _, p := range products {
			names = append(names, p.Name)
		}
		parts = append(parts, "Productos mencionados: "+strings.Join(names, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Contexto: " + strings.Join(parts, "; ")
}

func joinSizes(sizes []types.Size) string {
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, string(s))
	}
	return strings.Join(out, ", ")
}
