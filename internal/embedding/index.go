package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
)

// ErrIndexMismatch is returned when a persisted index was built by a
// different embedder or over a different vocabulary.
var ErrIndexMismatch = errors.New("persisted index does not match embedder or vocabulary")

// Neighbor is one query result.
type Neighbor struct {
	Token      string
	Similarity float64
}

// Index is a flat inner-product index over unit vectors. Similarities are
// cosine similarities in [-1, 1]. An Index is read-only after Build or LoadIndex.
type Index struct {
	embedder Embedder
	tokens   []string
	vectors  [][]float64
}

type indexFile struct {
	Embedder string      `json:"embedder"`
	Tokens   []string    `json:"tokens"`
	Vectors  [][]float64 `json:"vectors"`
}

// Build embeds every token and returns a queryable index.
func Build(ctx context.Context, emb Embedder, tokens []string) (*Index, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("cannot build index over an empty vocabulary")
	}

	vectors, err := emb.EmbedStrings(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to embed vocabulary: %w", err)
	}
	if len(vectors) != len(tokens) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d tokens", len(vectors), len(tokens))
	}
	for _, v := range vectors {
		normalize(v)
	}

	return &Index{
		embedder: emb,
		tokens:   slices.Clone(tokens),
		vectors:  vectors,
	}, nil
}

// Len returns the number of indexed tokens.
func (x *Index) Len() int {
	return len(x.tokens)
}

// Tokens returns the indexed tokens in index order.
func (x *Index) Tokens() []string {
	return x.tokens
}

// Query embeds text and returns up to k neighbors by descending similarity.
func (x *Index) Query(ctx context.Context, text string, k int) ([]Neighbor, error) {
	vectors, err := x.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vectors))
	}
	return x.Search(normalize(vectors[0]), k), nil
}

// Search returns up to k neighbors of a unit query vector. Equal
// similarities keep index order.
func (x *Index) Search(query []float64, k int) []Neighbor {
	if k <= 0 {
		return nil
	}

	neighbors := make([]Neighbor, len(x.tokens))
	for i, v := range x.vectors {
		neighbors[i] = Neighbor{Token: x.tokens[i], Similarity: dot(query, v)}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})

	if k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// Save writes the index as JSON, creating parent directories as needed.
func (x *Index) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create index directory: %w", err)
		}
	}

	data, err := json.Marshal(indexFile{
		Embedder: x.embedder.Name(),
		Tokens:   x.tokens,
		Vectors:  x.vectors,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write index file %s: %w", path, err)
	}
	return nil
}

// LoadIndex reads an index saved by Save. It returns ErrIndexMismatch when
// the file was built by another embedder or over a vocabulary other than
// tokens.
func LoadIndex(path string, emb Embedder, tokens []string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file %s: %w", path, err)
	}

	var f indexFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse index file %s: %w", path, err)
	}

	if f.Embedder != emb.Name() || len(f.Vectors) != len(f.Tokens) || !slices.Equal(f.Tokens, tokens) {
		return nil, ErrIndexMismatch
	}

	return &Index{embedder: emb, tokens: f.Tokens, vectors: f.Vectors}, nil
}
