package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is the embedding model used when none is configured.
const DefaultGeminiModel = "text-embedding-004"

// geminiBatchSize is the largest batch accepted by BatchEmbedContents.
const geminiBatchSize = 100

// GeminiEmbedder embeds texts with a Gemini embedding model.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates a Gemini embedder
func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbedder{client: client, model: model}, nil
}

// Name implements Embedder.
func (g *GeminiEmbedder) Name() string {
	return "gemini:" + g.model
}

// EmbedStrings implements Embedder.
func (g *GeminiEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	em := g.client.EmbeddingModel(g.model)
	out := make([][]float64, 0, len(texts))

	for start := 0; start < len(texts); start += geminiBatchSize {
		end := min(start+geminiBatchSize, len(texts))

		batch := em.NewBatch()
		for _, t := range texts[start:end] {
			batch.AddContent(genai.Text(t))
		}

		resp, err := em.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to embed batch %d-%d: %w", start, end, err)
		}
		if len(resp.Embeddings) != end-start {
			return nil, fmt.Errorf("embedding count mismatch: sent %d, got %d", end-start, len(resp.Embeddings))
		}

		for _, e := range resp.Embeddings {
			v := make([]float64, len(e.Values))
			for i, x := range e.Values {
				v[i] = float64(x)
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// Close releases the underlying client
func (g *GeminiEmbedder) Close() error {
	return g.client.Close()
}
