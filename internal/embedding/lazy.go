package embedding

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"github.com/rs/zerolog"
)

// Lazy holds the process-wide semantic index. The index is loaded or built
// on first use, at most once per process. Concurrent first callers block on
// the same build. A failed build is remembered and every later call returns
// the same error, so the semantic path stays disabled for the process lifetime.
type Lazy struct {
	path       string
	embedder   Embedder
	vocabulary []string
	log        zerolog.Logger

	mu    sync.Mutex
	built bool
	index *Index
	err   error
}

// LazyOption configures a Lazy index
type LazyOption func(*Lazy)

// WithLogger sets the logger used for build events
func WithLogger(log zerolog.Logger) LazyOption {
	return func(l *Lazy) {
		l.log = log
	}
}

// NewLazy creates a lazily built index over vocabulary. When path is not
// empty the index is loaded from and saved to that file.
func NewLazy(path string, emb Embedder, vocabulary []string, opts ...LazyOption) *Lazy {
	l := &Lazy{
		path:       path,
		embedder:   emb,
		vocabulary: vocabulary,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Get returns the index, loading or building it on the first call.
func (l *Lazy) Get(ctx context.Context) (*Index, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.built {
		return l.index, l.err
	}

	idx, err := l.loadOrBuild(ctx)
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		// the caller gave up; a later call retries the build
		return nil, err
	}
	l.index, l.err = idx, err
	l.built = true

	if l.err != nil {
		l.log.Warn().Err(l.err).Msg("semantic index unavailable, falling back to fuzzy matching")
	}
	return l.index, l.err
}

// Warm forces the first load or build.
func (l *Lazy) Warm(ctx context.Context) error {
	_, err := l.Get(ctx)
	return err
}

// Query implements the resolver's semantic lookup.
func (l *Lazy) Query(ctx context.Context, text string, k int) ([]Neighbor, error) {
	idx, err := l.Get(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Query(ctx, text, k)
}

// Reset discards the held index (mainly for tests)
func (l *Lazy) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.built = false
	l.index = nil
	l.err = nil
}

func (l *Lazy) loadOrBuild(ctx context.Context) (*Index, error) {
	if l.path != "" {
		idx, err := LoadIndex(l.path, l.embedder, l.vocabulary)
		switch {
		case err == nil:
			l.log.Info().Str("path", l.path).Int("tokens", idx.Len()).Msg("semantic index loaded")
			return idx, nil
		case errors.Is(err, fs.ErrNotExist):
			l.log.Info().Str("path", l.path).Msg("semantic index not found, building")
		default:
			l.log.Info().Err(err).Str("path", l.path).Msg("rebuilding semantic index")
		}
	}

	idx, err := Build(ctx, l.embedder, l.vocabulary)
	if err != nil {
		return nil, err
	}
	l.log.Info().Str("embedder", l.embedder.Name()).Int("tokens", idx.Len()).Msg("semantic index built")

	if l.path != "" {
		if err := idx.Save(l.path); err != nil {
			l.log.Warn().Err(err).Msg("failed to persist semantic index")
		}
	}
	return idx, nil
}
