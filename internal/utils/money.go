// internal/utils/money.go
package utils

import (
	"math"
)

// All currency is persisted as integer cents; the decimal representation
// exists only at the API boundary.

// CentsFromReais converts a decimal BRL amount to integer cents, rounding
// half away from zero so values like 0.1+0.2 never drift.
func CentsFromReais(reais float64) int64 {
	return int64(math.Round(reais * 100))
}

// ReaisFromCents converts integer cents back to the decimal amount.
func ReaisFromCents(cents int64) float64 {
	return float64(cents) / 100
}
