package topsis

import "math"

// NormL2 scales w to unit Euclidean length, preserving proportions.
// A zero vector comes back as zeros of the same length.
func NormL2(w []float64) []float64 {
	out := make([]float64, len(w))

	norm := 0.0
	for _, v := range w {
		norm = math.Hypot(norm, v)
	}
	if norm == 0 {
		return out
	}

	for i, v := range w {
		out[i] = v / norm
	}
	return out
}

// Uniform returns a weight vector of n equal entries
func Uniform(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
