package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// HashingEmbedder is an offline, deterministic embedder. Words and
// character trigrams are hashed into a fixed number of signed buckets.
type HashingEmbedder struct {
	dims int
}

// NewHashingEmbedder creates a hashing embedder with dims buckets.
func NewHashingEmbedder(dims int) (*HashingEmbedder, error) {
	if dims <= 0 {
		return nil, fmt.Errorf("hashing embedder dimensions must be positive, got %d", dims)
	}
	return &HashingEmbedder{dims: dims}, nil
}

// Name implements Embedder.
func (h *HashingEmbedder) Name() string {
	return fmt.Sprintf("hashing-%d", h.dims)
}

// EmbedStrings implements Embedder.
func (h *HashingEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = h.embed(text)
	}
	return out, nil
}

const (
	wordWeight    = 1.0
	trigramWeight = 0.5
)

func (h *HashingEmbedder) embed(text string) []float64 {
	v := make([]float64, h.dims)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})

	for _, w := range words {
		h.add(v, "w:"+w, wordWeight)
		padded := []rune(" " + w + " ")
		for j := 0; j+3 <= len(padded); j++ {
			h.add(v, "t:"+string(padded[j:j+3]), trigramWeight)
		}
	}
	return normalize(v)
}

func (h *HashingEmbedder) add(v []float64, feature string, weight float64) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	bucket := int(sum % uint64(h.dims))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	v[bucket] += weight
}
