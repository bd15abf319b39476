package avatar

import (
	"image/color"
	"strings"

	"github.com/jonathan/sizing-assistant/internal/types"
)

// DefaultColor is used when a message names no known color.
const DefaultColor = "azul"

var (
	background   = color.RGBA{240, 240, 240, 255}
	skin         = color.RGBA{255, 228, 196, 255}
	outline      = color.RGBA{0, 0, 0, 255}
	unknownColor = color.RGBA{100, 100, 150, 255}
)

// colorNames keeps palette lookup order stable.
var colorNames = []string{"azul", "rojo", "verde", "negro", "blanco", "gris", "rosa", "amarillo", "morado", "naranja"}

var palette = map[string]color.RGBA{
	"azul":     {70, 130, 180, 255},
	"rojo":     {220, 20, 60, 255},
	"verde":    {34, 139, 34, 255},
	"negro":    {0, 0, 0, 255},
	"blanco":   {255, 255, 255, 255},
	"gris":     {128, 128, 128, 255},
	"rosa":     {255, 182, 193, 255},
	"amarillo": {255, 215, 0, 255},
	"morado":   {147, 112, 219, 255},
	"naranja":  {255, 165, 0, 255},
}

// Garment width relative to the bust line.
var fitMultipliers = map[types.FitType]float64{
	types.FitSlim:      0.9,
	types.FitTailored:  1.0,
	types.FitRegular:   1.1,
	types.FitLoose:     1.3,
	types.FitOversized: 1.5,
}

// Colors lists the named garment colors.
func Colors() []string {
	out := make([]string, len(colorNames))
	copy(out, colorNames)
	return out
}

// DetectColor returns the first palette color named in text, or DefaultColor.
func DetectColor(text string) string {
	lower := strings.ToLower(text)
	for _, name := range colorNames {
		if strings.Contains(lower, name) {
			return name
		}
	}
	return DefaultColor
}

func garmentColor(name string) color.RGBA {
	if c, ok := palette[strings.ToLower(name)]; ok {
		return c
	}
	return unknownColor
}

func fitMultiplier(fit types.FitType) float64 {
	if m, ok := fitMultipliers[fit]; ok {
		return m
	}
	return 1.0
}
