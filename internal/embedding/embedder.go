// Package embedding provides text embedders and the semantic skill index
// built over the corpus vocabulary.
package embedding

import (
	"context"
	"math"
)

// Embedder turns texts into dense vectors. Implementations must return one
// vector per input text, in input order.
type Embedder interface {
	EmbedStrings(ctx context.Context, texts []string) ([][]float64, error)
	// Name identifies the embedding space. Indexes built by one embedder
	// cannot be queried with another.
	Name() string
}

// normalize scales v to unit length in place. Zero vectors are left unchanged.
func normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
	return v
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var s float64
	for i := 0; i < n; i++ {
		s += a[i] * b[i]
	}
	return s
}
