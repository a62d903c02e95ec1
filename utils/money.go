package utils

import "math"

// RoundPrice rounds a monetary amount to 2 decimal places, half up.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
