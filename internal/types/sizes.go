// Package types provides type definitions for structured data used throughout the sizing-assistant system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Size is a garment size label
type Size string

// Size constants in canonical order
const (
	SizeXS Size = "XS"
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

// SizeOrder is the canonical size order. It also defines tie-break precedence.
var SizeOrder = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL}

// SizeIndex returns the position of size in SizeOrder, or -1 for unknown labels.
func SizeIndex(size Size) int {
	for i, s := range SizeOrder {
		if s == size {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is one of the known size labels.
func (s Size) IsValid() bool {
	return SizeIndex(s) >= 0
}

// FitType is the cut of a garment
type FitType string

// Garment fit constants
const (
	FitSlim      FitType = "Slim"
	FitRegular   FitType = "Regular"
	FitLoose     FitType = "Loose"
	FitTailored  FitType = "Tailored"
	FitOversized FitType = "Oversized"
)

// FitPreference is how a client likes garments to fit
type FitPreference string

// Client fit preferences
const (
	PreferenceSlim    FitPreference = "slim"
	PreferenceRegular FitPreference = "regular"
	PreferenceLoose   FitPreference = "loose"
)
