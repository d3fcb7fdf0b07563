package recommend

import (
	"fmt"
	"math"
)

// epsilon keeps the cosine denominator away from zero when either embedding is
// the zero vector.
const epsilon = 1e-8

// cosineSimilarity computes dot(a, b) / (||a||*||b|| + epsilon) with float64
// accumulation over the float32 embeddings.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding width mismatch: %d vs %d", len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		fa := float64(a[i])
		fb := float64(b[i])
		dot += fa * fb
		na += fa * fa
		nb += fb * fb
	}
	return dot / (math.Sqrt(na)*math.Sqrt(nb) + epsilon), nil
}
