package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/sizing-assistant/internal/types"
)

// heightNoteThresholdCM is the height gap to the model above which a length note is added
const heightNoteThresholdCM = 10

// NoFitNotes is returned when no fit note applies
const NoFitNotes = "No hay notas adicionales sobre el ajuste."

var fabricNotes = map[string]string{
	"cotton":    "El algodón puede encogerse ligeramente tras los primeros lavados.",
	"wool":      "La lana puede tener algo de elasticidad y adaptarse mejor al cuerpo.",
	"polyester": "El poliéster mantiene su forma y talla de manera consistente.",
	"linen":     "El lino puede ser menos elástico, considera el ajuste cuidadosamente.",
	"blend":     "Esta mezcla de tejidos suele ofrecer un buen balance entre comodidad y durabilidad.",
}

// NoSizesReasoning is the reasoning for a product listed without any available size.
const NoSizesReasoning = "El producto %s no tiene tallas disponibles, así que no es posible recomendar una talla con confianza."

// buildReasoning explains the chosen size in plain Spanish.
func buildReasoning(client *types.Client, product *types.Product, size types.Size) string {
	if len(product.AvailableSizes) == 0 {
		return fmt.Sprintf(NoSizesReasoning, product.Name)
	}

	body := client.BodyMeasurements
	parts := []string{fmt.Sprintf(
		"Basándome en tus medidas (busto: %gcm, cintura: %gcm, cadera: %gcm), la talla %s del %s se ajusta mejor a tu cuerpo.",
		body.BustCM, body.WaistCM, body.HipsCM, size, product.Name,
	)}

	if hasPositiveHistory(client.PurchaseHistory) {
		parts = append(parts, "Tu historial muestra que has tenido experiencias positivas con tallas similares.")
	}

	if note := preferenceNote(client.PreferredFit, product.Fit); note != "" {
		parts = append(parts, note)
	}

	return strings.Join(parts, " ")
}

func preferenceNote(preference types.FitPreference, fit types.FitType) string {
	pref := strings.ToLower(string(preference))
	productFit := strings.ToLower(string(fit))
	if pref == "" || productFit == "" {
		return ""
	}

	switch {
	case pref == productFit:
		return fmt.Sprintf("Esta prenda tiene un ajuste %s, que coincide con tu preferencia.", productFit)
	case pref == "slim" && (productFit == "oversized" || productFit == "loose"):
		return fmt.Sprintf("Dado que prefieres un ajuste slim y esta prenda es %s, podrías considerar una talla más pequeña si buscas un fit más ajustado.", productFit)
	case pref == "loose" && (productFit == "slim" || productFit == "tailored"):
		return fmt.Sprintf("Dado que prefieres un ajuste holgado y esta prenda es %s, podrías considerar una talla más grande si buscas más comodidad.", productFit)
	default:
		return fmt.Sprintf("Ten en cuenta que esta prenda tiene un ajuste %s y tu preferencia es %s.", productFit, pref)
	}
}

// buildFitNotes adds length and fabric notes for the product.
func buildFitNotes(client *types.Client, product *types.Product) string {
	var notes []string

	ref := product.ModelReference
	if ref.HeightCM > 0 {
		diff := client.HeightCM - ref.HeightCM
		if diff > heightNoteThresholdCM {
			notes = append(notes, fmt.Sprintf("Eres %dcm más alta que el modelo de referencia, por lo que la prenda podría quedarte algo más corta.", diff))
		} else if diff < -heightNoteThresholdCM {
			notes = append(notes, fmt.Sprintf("Eres %dcm más baja que el modelo de referencia, por lo que la prenda podría quedarte algo más larga.", -diff))
		}
	}

	if note, ok := fabricNotes[strings.ToLower(product.Fabric)]; ok {
		notes = append(notes, note)
	}

	if len(notes) == 0 {
		return NoFitNotes
	}
	return strings.Join(notes, " ")
}
