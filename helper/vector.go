package helper

import "gonum.org/v1/gonum/floats"

// EuclideanDistance returns the L2 distance between two descriptors.
// Panics on length mismatch, so callers must dimension-check first.
func EuclideanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// DistanceToConfidence maps a descriptor distance to a 0-100 score using the
// same linear rule as the recognition model's reference implementation:
// confidence = (1 - distance) * 100, clamped.
func DistanceToConfidence(distance float64) float64 {
	c := (1 - distance) * 100
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
