// Package export persists pipeline output: JSON files, roadmap diagrams and
// an optional object storage copy. Export failures never invalidate the
// output that was handed in.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-roadmap/internal/config"
	"github.com/jonathan/career-roadmap/internal/rendering"
	"github.com/jonathan/career-roadmap/internal/schemas"
	"github.com/jonathan/career-roadmap/internal/types"
)

// Rasterizer turns an SVG diagram into PNG bytes.
type Rasterizer interface {
	Render(ctx context.Context, svg []byte, width, height int) ([]byte, error)
}

// Result describes what an export wrote.
type Result struct {
	RunID      string
	Images     []string // URLs under the static prefix, one per roadmap
	LatestPath string
	JSONPath   string
}

// Exporter writes pipeline output to disk and, optionally, to a Sink.
type Exporter struct {
	outputDir  string
	latestPath string
	staticDir  string
	staticURL  string
	rasterizer Rasterizer
	sink       Sink
	log        zerolog.Logger
	now        func() time.Time
}

// Option configures an Exporter
type Option func(*Exporter)

// WithRasterizer also writes a PNG per diagram and links it instead of the SVG.
func WithRasterizer(r Rasterizer) Option {
	return func(e *Exporter) {
		e.rasterizer = r
	}
}

// WithSink uploads every artifact after it is written locally.
func WithSink(s Sink) Option {
	return func(e *Exporter) {
		e.sink = s
	}
}

// WithLogger sets the exporter logger
func WithLogger(log zerolog.Logger) Option {
	return func(e *Exporter) {
		e.log = log
	}
}

// New creates an Exporter from cfg.
func New(cfg config.ExportConfig, opts ...Option) *Exporter {
	e := &Exporter{
		outputDir:  cfg.OutputDir,
		latestPath: cfg.LatestPath,
		staticDir:  cfg.StaticDir,
		staticURL:  cfg.StaticURL,
		log:        zerolog.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LatestPath is the file holding the most recent export.
func (e *Exporter) LatestPath() string {
	return e.latestPath
}

// StaticDir is the directory diagrams are written to.
func (e *Exporter) StaticDir() string {
	return e.staticDir
}

// Export renders diagrams, then writes the output with image links to the
// latest file and a timestamped file. On failure it returns the partial
// Result together with an *Error.
func (e *Exporter) Export(ctx context.Context, out *types.Output) (*Result, error) {
	runID := uuid.New().String()
	res := &Result{RunID: runID}
	var errs []error

	images, diagrams, err := e.renderDiagrams(ctx, runID, out.Roadmaps)
	if err != nil {
		errs = append(errs, err)
	}
	res.Images = images

	data, err := json.MarshalIndent(types.GenerateResponse{Output: *out, Images: images}, "", "  ")
	if err != nil {
		return res, &Error{Message: "failed to marshal output", Cause: err}
	}

	if err := schemas.ValidateOutput(data); err != nil {
		e.log.Warn().Err(err).Str("run_id", runID).Msg("exported output does not match schema")
	}

	if err := writeFile(e.latestPath, data); err != nil {
		errs = append(errs, err)
	} else {
		res.LatestPath = e.latestPath
	}

	name := fmt.Sprintf("roadmaps_%s_%s.json", e.now().UTC().Format("20060102_150405"), runID[:8])
	jsonPath := filepath.Join(e.outputDir, name)
	if err := writeFile(jsonPath, data); err != nil {
		errs = append(errs, err)
	} else {
		res.JSONPath = jsonPath
	}

	if e.sink != nil {
		if err := e.upload(ctx, runID, data, diagrams); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		e.log.Error().Err(errors.Join(errs...)).Str("run_id", runID).Msg("export incomplete")
		return res, &Error{Message: "export incomplete", Cause: errors.Join(errs...)}
	}

	e.log.Info().Str("run_id", runID).Str("path", jsonPath).Int("images", len(images)).Msg("output exported")
	return res, nil
}

// diagram is one rendered file kept for upload.
type diagram struct {
	name        string
	body        []byte
	contentType string
}

// renderDiagrams writes one diagram per roadmap under a directory named
// after the run. Diagrams that were written are linked even when others
// fail; a failed PNG falls back to its SVG.
func (e *Exporter) renderDiagrams(ctx context.Context, runID string, roadmaps []types.Roadmap) ([]string, []diagram, error) {
	dir := filepath.Join(e.staticDir, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return []string{}, nil, fmt.Errorf("failed to create static directory: %w", err)
	}

	rendered := make([]diagram, len(roadmaps))
	errs := make([]error, len(roadmaps))
	var g errgroup.Group
	for i := range roadmaps {
		g.Go(func() error {
			rendered[i], errs[i] = e.renderOne(ctx, dir, i, &roadmaps[i])
			return nil
		})
	}
	_ = g.Wait()

	images := []string{}
	written := make([]diagram, 0, len(rendered))
	for _, d := range rendered {
		if d.name == "" {
			continue
		}
		images = append(images, path.Join(e.staticURL, runID, d.name))
		written = append(written, d)
	}
	return images, written, errors.Join(errs...)
}

// renderOne writes the SVG and, with a rasterizer, the PNG of one roadmap.
// It returns the SVG diagram alongside the error when only the PNG fails.
func (e *Exporter) renderOne(ctx context.Context, dir string, i int, rm *types.Roadmap) (diagram, error) {
	svg, err := rendering.SVG(rm)
	if err != nil {
		return diagram{}, err
	}

	d := diagram{name: fmt.Sprintf("roadmap_%d.svg", i+1), body: svg, contentType: "image/svg+xml"}
	if err := writeFile(filepath.Join(dir, d.name), svg); err != nil {
		return diagram{}, err
	}

	if e.rasterizer == nil {
		return d, nil
	}

	nodes, _ := rendering.Layout(rm.Steps)
	width, height := rendering.Size(nodes)
	png, err := e.rasterizer.Render(ctx, svg, width, height)
	if err != nil {
		return d, err
	}

	p := diagram{name: fmt.Sprintf("roadmap_%d.png", i+1), body: png, contentType: "image/png"}
	if err := writeFile(filepath.Join(dir, p.name), png); err != nil {
		return d, err
	}
	return p, nil
}

func (e *Exporter) upload(ctx context.Context, runID string, data []byte, diagrams []diagram) error {
	if err := e.sink.Put(ctx, path.Join(runID, "output.json"), data, "application/json"); err != nil {
		return err
	}
	for _, d := range diagrams {
		if err := e.sink.Put(ctx, path.Join(runID, d.name), d.body, d.contentType); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(name string, data []byte) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
