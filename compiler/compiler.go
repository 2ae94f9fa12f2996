// Package compiler runs the schema code generation pipeline: it loads the
// schema documents of a directory, builds the declarations and writes the
// generated artifacts.
package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/syssam/schemagen/compiler/gen"
	"github.com/syssam/schemagen/compiler/load"
)

// Run describes one execution of the pipeline.
type Run struct {
	Config *gen.Config
	Model  *load.Model
	// Result is nil when the run was skipped.
	Result *gen.Result
	// Files lists the written artifact paths.
	Files []string
	// Skipped reports whether the stored snapshot matched the model and
	// configuration, and nothing was generated.
	Skipped bool
}

// Generator is the interface that writes the output of a run.
type Generator interface {
	Generate(context.Context, *Run) error
}

// The GenerateFunc type is an adapter to allow the use of ordinary
// functions as Generator.
type GenerateFunc func(context.Context, *Run) error

// Generate calls f(ctx, r).
func (f GenerateFunc) Generate(ctx context.Context, r *Run) error {
	return f(ctx, r)
}

// Hook wraps the writing step of a run, e.g. to post-process the result or
// to write additional artifacts.
type Hook func(Generator) Generator

// Option configures a pipeline execution.
type Option func(*options)

type options struct {
	log     *zap.Logger
	workers int
	hooks   []Hook
	force   bool
}

func newOptions(opts []Option) *options {
	o := &options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger reporting pipeline progress.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithWorkers sets the number of parallel file writers.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithHooks adds hooks around the writing step. The first hook is the
// outermost one.
func WithHooks(hooks ...Hook) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, hooks...)
	}
}

// WithForce disables the snapshot check, so a run always regenerates.
func WithForce() Option {
	return func(o *options) {
		o.force = true
	}
}

// Generate loads the schema documents of dir and generates the configured
// artifacts.
func Generate(ctx context.Context, dir string, cfg *gen.Config, opts ...Option) (*Run, error) {
	m, err := load.Dir(ctx, dir)
	if err != nil {
		return nil, err
	}
	return GenerateModel(ctx, m, cfg, opts...)
}

// GenerateModel generates the configured artifacts of a loaded model. With
// gen.FeatureSnapshot enabled, the run is skipped when the stored snapshot
// matches the model and configuration.
func GenerateModel(ctx context.Context, m *load.Model, cfg *gen.Config, opts ...Option) (*Run, error) {
	if cfg == nil {
		return nil, gen.NewConfigError("Config", nil, "config cannot be nil")
	}
	if m == nil {
		return nil, gen.NewConfigError("Model", nil, "model cannot be nil")
	}
	o := newOptions(opts)
	r := &Run{Config: cfg, Model: m}
	if !o.force {
		fresh, err := UpToDate(cfg, m)
		if err != nil {
			return nil, err
		}
		if fresh {
			o.log.Debug("schema unchanged, skipping generation", zap.String("snapshot", cfg.SnapshotPath()))
			r.Skipped = true
			return r, nil
		}
	}
	res, err := gen.Build(cfg, m)
	if err != nil {
		return nil, err
	}
	r.Result = res
	o.log.Debug("schema built",
		zap.Int("types", len(res.Order)),
		zap.Int("depth", res.MaxDepth),
		zap.Strings("features", cfg.FeatureNames()),
	)

	var g Generator = write(o)
	for i := len(o.hooks) - 1; i >= 0; i-- {
		g = o.hooks[i](g)
	}
	if err := g.Generate(ctx, r); err != nil {
		return nil, err
	}
	o.log.Info("generated", zap.Int("types", len(res.Order)), zap.Strings("files", r.Files))
	return r, nil
}

// write returns the generator rendering and writing the artifacts of a run.
func write(o *options) Generator {
	return GenerateFunc(func(ctx context.Context, r *Run) error {
		w, err := gen.NewWriter(r.Config)
		if err != nil {
			return err
		}
		arts, err := w.WithWorkers(o.workers).Render(r.Result, r.Model)
		if err != nil {
			return err
		}
		if err := w.Write(ctx, arts); err != nil {
			return err
		}
		for _, a := range arts {
			r.Files = append(r.Files, a.Path)
			o.log.Debug("wrote artifact", zap.String("path", a.Path), zap.Int("bytes", len(a.Data)))
		}
		return nil
	})
}

// Check reports the artifacts that are missing or differ from what
// Generate would write for the schema documents of dir.
func Check(ctx context.Context, dir string, cfg *gen.Config) ([]string, error) {
	m, err := load.Dir(ctx, dir)
	if err != nil {
		return nil, err
	}
	res, err := gen.Build(cfg, m)
	if err != nil {
		return nil, err
	}
	w, err := gen.NewWriter(cfg)
	if err != nil {
		return nil, err
	}
	arts, err := w.Render(res, m)
	if err != nil {
		return nil, err
	}
	return w.Stale(arts)
}

// UpToDate reports whether the snapshot stored by gen.FeatureSnapshot
// matches the model and configuration, and the main artifact exists. It is always false when
// the feature is disabled.
func UpToDate(cfg *gen.Config, m *load.Model) (bool, error) {
	enabled, err := cfg.FeatureEnabled(gen.FeatureSnapshot.Name)
	if err != nil || !enabled {
		return false, err
	}
	if _, err := os.Stat(cfg.Target); err != nil {
		return false, nil
	}
	stored, err := os.ReadFile(cfg.SnapshotPath())
	switch {
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("compiler: read snapshot: %w", err)
	}
	current, err := gen.Snapshot(cfg, m)
	if err != nil {
		return false, err
	}
	return bytes.Equal(stored, current), nil
}
