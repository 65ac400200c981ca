package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jonathan/career-roadmap/internal/config"
	"github.com/jonathan/career-roadmap/internal/corpus"
	"github.com/jonathan/career-roadmap/internal/db"
	"github.com/jonathan/career-roadmap/internal/embedding"
	"github.com/jonathan/career-roadmap/internal/export"
	"github.com/jonathan/career-roadmap/internal/logger"
	"github.com/jonathan/career-roadmap/internal/pipeline"
	"github.com/jonathan/career-roadmap/internal/rendering"
	"github.com/jonathan/career-roadmap/internal/skills"
)

// app holds the wired components shared by the commands.
type app struct {
	cfg      *config.Config
	corpus   *corpus.Corpus
	index    *embedding.Lazy
	pipeline *pipeline.Pipeline
	exporter *export.Exporter

	closers []func()
}

// loadConfig reads the config file (or defaults), applies environment
// overrides and validates the result. The global logger is initialized from it.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Init(cfg.Logger)
	return cfg, nil
}

// newApp wires corpus, index, resolver, pipeline and exporter.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}
	log := logger.Component("app")

	c, err := a.loadCorpus(ctx, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.corpus = c

	emb, err := a.newEmbedder(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.index = embedding.NewLazy(cfg.Index.Path, emb, c.Vocabulary(),
		embedding.WithLogger(logger.Component("embedding")))

	resolver := skills.NewResolver(c.Vocabulary(),
		skills.WithIndex(a.index),
		skills.WithThreshold(cfg.Index.Threshold),
		skills.WithLogger(logger.Component("skills")),
	)

	opts := []pipeline.Option{pipeline.WithLogger(logger.Component("pipeline"))}
	if cfg.Roadmap.Seed != 0 {
		opts = append(opts, pipeline.WithSeed(cfg.Roadmap.Seed))
	}
	a.pipeline = pipeline.New(c, resolver, opts...)

	exp, err := a.newExporter(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.exporter = exp
	return a, nil
}

func (a *app) loadCorpus(ctx context.Context, log zerolog.Logger) (*corpus.Corpus, error) {
	if a.cfg.CorpusSource != config.SourcePostgres {
		return corpus.LoadOrBuiltin(a.cfg.CorpusPath, a.cfg.AllowBuiltinCorpus, log)
	}

	store, err := db.Connect(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.closers = append(a.closers, store.Close)

	c, err := corpus.LoadStore(ctx, store)
	if err != nil {
		return nil, err
	}
	log.Info().Int("occupations", c.Len()).Msg("corpus loaded from postgres")
	return c, nil
}

func (a *app) newEmbedder(ctx context.Context) (embedding.Embedder, error) {
	if a.cfg.Index.Provider == config.ProviderGemini {
		g, err := embedding.NewGeminiEmbedder(ctx, a.cfg.GeminiAPIKey, a.cfg.Index.Model)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = g.Close() })
		return g, nil
	}
	h, err := embedding.NewHashingEmbedder(a.cfg.Index.Dimensions)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (a *app) newExporter(ctx context.Context) (*export.Exporter, error) {
	opts := []export.Option{export.WithLogger(logger.Component("export"))}
	if a.cfg.Export.PNG {
		opts = append(opts, export.WithRasterizer(rendering.NewPNGRenderer()))
	}
	if a.cfg.Export.S3.Bucket != "" {
		sink, err := export.NewS3Sink(ctx, a.cfg.Export.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to configure S3 sink: %w", err)
		}
		opts = append(opts, export.WithSink(sink))
	}
	return export.New(a.cfg.Export, opts...), nil
}

// Close releases database pools and embedding clients.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
