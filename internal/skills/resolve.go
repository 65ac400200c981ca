// Package skills maps free-text skills onto the canonical corpus vocabulary.
package skills

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/career-roadmap/internal/embedding"
)

// DefaultThreshold is the similarity a semantic neighbor must exceed to be accepted.
const DefaultThreshold = 0.6

// SemanticIndex answers nearest-neighbor queries over the vocabulary.
type SemanticIndex interface {
	Query(ctx context.Context, text string, k int) ([]embedding.Neighbor, error)
}

// Source records which step produced a canonical token.
type Source string

const (
	SourceSemantic Source = "semantic"
	SourceFuzzy    Source = "fuzzy"
	SourceRaw      Source = "raw"
)

// Resolution is the outcome for one raw skill.
type Resolution struct {
	Input  string
	Token  string
	Source Source
	// Score is the cosine similarity for semantic matches and the
	// token sort ratio for fuzzy matches.
	Score float64
}

// Resolver canonicalizes raw skills. It is safe for concurrent use when the
// underlying index is.
type Resolver struct {
	vocabulary []string
	index      SemanticIndex
	threshold  float64
	log        zerolog.Logger
}

// Option configures a Resolver
type Option func(*Resolver)

// WithIndex enables the semantic lookup step.
func WithIndex(index SemanticIndex) Option {
	return func(r *Resolver) {
		r.index = index
	}
}

// WithThreshold overrides DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(r *Resolver) {
		r.threshold = threshold
	}
}

// WithLogger sets the logger for degradation events.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

// NewResolver creates a resolver over vocabulary. Vocabulary order decides
// fuzzy ties.
func NewResolver(vocabulary []string, opts ...Option) *Resolver {
	r := &Resolver{
		vocabulary: slices.Clone(vocabulary),
		threshold:  DefaultThreshold,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the canonical tokens for raw, deduplicated in order of
// first appearance. Blank inputs are skipped. It never fails: each skill
// degrades from semantic to fuzzy to its own lower-cased form.
func (r *Resolver) Resolve(ctx context.Context, raw []string) []string {
	resolutions := r.ResolveDetailed(ctx, raw)

	seen := make(map[string]struct{}, len(resolutions))
	out := make([]string, 0, len(resolutions))
	for _, res := range resolutions {
		if _, ok := seen[res.Token]; ok {
			continue
		}
		seen[res.Token] = struct{}{}
		out = append(out, res.Token)
	}
	return out
}

// ResolveDetailed resolves every non-blank input without deduplication.
func (r *Resolver) ResolveDetailed(ctx context.Context, raw []string) []Resolution {
	out := make([]Resolution, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, r.resolveOne(ctx, s))
	}
	return out
}

func (r *Resolver) resolveOne(ctx context.Context, s string) Resolution {
	if r.index != nil {
		neighbors, err := r.index.Query(ctx, s, 1)
		switch {
		case err != nil:
			r.log.Debug().Err(err).Str("skill", s).Msg("semantic lookup failed")
		case len(neighbors) > 0 && neighbors[0].Similarity > r.threshold:
			return Resolution{Input: s, Token: neighbors[0].Token, Source: SourceSemantic, Score: neighbors[0].Similarity}
		}
	}

	if token, score, ok := bestFuzzyMatch(s, r.vocabulary); ok {
		return Resolution{Input: s, Token: token, Source: SourceFuzzy, Score: score}
	}

	r.log.Debug().Str("skill", s).Msg("no vocabulary match, keeping raw skill")
	return Resolution{Input: s, Token: strings.ToLower(s), Source: SourceRaw}
}
