package domain

import "math"

// Normalize scales the vector to unit L2 norm in place and returns it.
// A zero-norm vector is left untouched and treated as degenerate, so the
// caller never divides by zero. Already-normalized vectors pass through
// unchanged within floating tolerance.
func Normalize(vector []float32) []float32 {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vector
	}
	for i := range vector {
		vector[i] = float32(float64(vector[i]) / norm)
	}
	return vector
}
