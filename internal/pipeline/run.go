// Package pipeline provides the end-to-end roadmap generation flow:
// quiz heuristic, skill resolution, career matching and roadmap synthesis.
package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/career-roadmap/internal/corpus"
	"github.com/jonathan/career-roadmap/internal/ranking"
	"github.com/jonathan/career-roadmap/internal/roadmap"
	"github.com/jonathan/career-roadmap/internal/skills"
	"github.com/jonathan/career-roadmap/internal/types"
)

// Step names reported in progress events
const (
	StepDeriveSkills  = "derive_skills"
	StepResolveSkills = "resolve_skills"
	StepMatchCareer   = "match_career"
	StepSynthesize    = "synthesize_roadmaps"
)

// Step categories
const (
	CategorySkills    = "skills"
	CategoryMatching  = "matching"
	CategorySynthesis = "synthesis"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Pipeline turns a GenerateRequest into an Output. It holds only read-only
// state and is safe for concurrent use.
type Pipeline struct {
	corpus   *corpus.Corpus
	resolver *skills.Resolver
	seed     uint64
	log      zerolog.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithSeed fixes roadmap task sampling. 0 draws a fresh seed per request.
func WithSeed(seed uint64) Option {
	return func(p *Pipeline) {
		p.seed = seed
	}
}

// WithLogger sets the pipeline logger
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// New creates a pipeline over a loaded corpus and a resolver built from its vocabulary.
func New(c *corpus.Corpus, resolver *skills.Resolver, opts ...Option) *Pipeline {
	p := &Pipeline{
		corpus:   c,
		resolver: resolver,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Corpus returns the reference corpus the pipeline matches against.
func (p *Pipeline) Corpus() *corpus.Corpus {
	return p.corpus
}

// Generate runs the full pipeline. The only request-visible error is
// ranking.ErrEmptyCorpus; cancellation of ctx is also reported.
func (p *Pipeline) Generate(ctx context.Context, req types.GenerateRequest, onProgress ProgressCallback) (*types.Output, error) {
	runID := uuid.New().String()
	log := p.log.With().Str("run_id", runID).Logger()
	emit := func(step, category, message string, content any) {
		if onProgress != nil {
			onProgress(ProgressEvent{
				Step:     step,
				Category: category,
				Message:  message,
				RunID:    runID,
				Content:  content,
			})
		}
	}

	// Step 1: explicit skills first, then quiz-derived ones
	quizSkills := skills.DeriveFromQuiz(req.Answers)
	raw := append(slices.Clone(req.Skills), quizSkills...)
	emit(StepDeriveSkills, CategorySkills, fmt.Sprintf("Derived %d skills from %d quiz answers", len(quizSkills), len(req.Answers)), quizSkills)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: canonicalize against the corpus vocabulary
	resolved := p.resolver.Resolve(ctx, raw)
	emit(StepResolveSkills, CategorySkills, fmt.Sprintf("Resolved %d raw skills to %d canonical skills", len(raw), len(resolved)), resolved)

	// Step 3: pick the occupation
	best, err := ranking.SelectBest(resolved, req.Summary, p.corpus.Occupations())
	if err != nil {
		return nil, err
	}
	emit(StepMatchCareer, CategoryMatching, fmt.Sprintf("Selected %s (score %.2f)", best.Occupation.Name, best.Score), best.Notes)

	// Step 4: one roadmap per focus
	roadmaps := roadmap.New(roadmap.WithSeed(p.seed)).SynthesizeAll(best.Occupation, resolved)
	emit(StepSynthesize, CategorySynthesis, fmt.Sprintf("Synthesized %d roadmaps", len(roadmaps)), nil)

	log.Info().
		Int("derived_skills", len(resolved)).
		Str("career", best.Occupation.Name).
		Float64("score", best.Score).
		Msg("roadmaps generated")

	return &types.Output{
		Input:         echo(req),
		DerivedSkills: resolved,
		ChosenCareer:  best.Occupation.Name,
		Roadmaps:      roadmaps,
	}, nil
}

// echo copies the request with empty lists instead of nil so it serializes as arrays.
func echo(req types.GenerateRequest) types.GenerateRequest {
	out := req
	out.Skills = append([]string{}, req.Skills...)
	out.Answers = append([]types.QuizAnswer{}, req.Answers...)
	return out
}
