package gen

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/schemagen/compiler/load"
)

// sdlHeader is written at the top of the standalone SDL document.
const sdlHeader = "# Code generated by schemagen. DO NOT EDIT.\n\n"

// Artifact is one rendered output file.
type Artifact struct {
	Path string
	Data []byte
}

// Writer renders build results to files and writes them with parallel
// workers.
type Writer struct {
	cfg     *Config
	workers int
}

// NewWriter creates a writer for the configured targets.
func NewWriter(cfg *Config) (*Writer, error) {
	if cfg == nil || cfg.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target path in config")
	}
	return &Writer{cfg: cfg, workers: runtime.GOMAXPROCS(0)}, nil
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// Render produces the artifacts of a build, sorted by path. The model is
// only used for the snapshot of FeatureSnapshot.
func (w *Writer) Render(res *Result, m *load.Model) ([]Artifact, error) {
	var b strings.Builder
	for _, line := range w.cfg.HeaderLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	for _, line := range res.Lines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	arts := []Artifact{{Path: w.cfg.Target, Data: []byte(b.String())}}

	if w.cfg.SDLTarget != "" {
		sdl := res.SDLSource()
		names, err := ParseSDL(sdl)
		if err != nil {
			return nil, NewGenerationError("render", w.cfg.SDLTarget, "", err)
		}
		if !slices.Equal(names, res.Order) {
			return nil, NewGenerationError("render", w.cfg.SDLTarget, "SDL declarations do not match the built types", nil)
		}
		arts = append(arts, Artifact{Path: w.cfg.SDLTarget, Data: []byte(sdlHeader + sdl + "\n")})
	}

	if res.Go != nil {
		if w.cfg.GoTarget == "" {
			return nil, NewConfigError("GoTarget", nil, "feature go/structs requires a Go target path")
		}
		data, err := renderGo(w.cfg.GoTarget, res)
		if err != nil {
			return nil, err
		}
		arts = append(arts, Artifact{Path: w.cfg.GoTarget, Data: data})
	}

	if w.cfg.featureOn(FeatureSnapshot.Name) {
		if m == nil {
			return nil, NewConfigError("Model", nil, "feature schema/snapshot requires the schema model")
		}
		data, err := Snapshot(w.cfg, m)
		if err != nil {
			return nil, NewGenerationError("render", w.cfg.SnapshotPath(), "", err)
		}
		arts = append(arts, Artifact{Path: w.cfg.SnapshotPath(), Data: data})
	}

	slices.SortFunc(arts, func(a, b Artifact) int {
		return strings.Compare(a.Path, b.Path)
	})
	return arts, nil
}

// Snapshot encodes the model together with the effective configuration, so
// either one changing invalidates a stored snapshot.
func Snapshot(cfg *Config, m *load.Model) ([]byte, error) {
	return load.EncodeSnapshotWith(m, cfg.settings())
}

// renderGo renders the Jennifer file and formats it with goimports.
func renderGo(path string, res *Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := res.Go.Render(&buf); err != nil {
		return nil, NewGenerationError("render", path, "", err)
	}
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return nil, NewGenerationError("format", path, "", err)
	}
	return formatted, nil
}

// Write writes the artifacts in parallel, each through a temporary file
// renamed into place, then removes the files of disabled features.
func (w *Writer) Write(ctx context.Context, arts []Artifact) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)
	for _, a := range arts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeFile(a.Path, a.Data); err != nil {
				return NewGenerationError("write", a.Path, "", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return w.cleanup()
}

// cleanup removes the artifacts of features that are switched off.
func (w *Writer) cleanup() error {
	var errs []error
	for _, f := range AllFeatures {
		if f.cleanup == nil || w.cfg.featureOn(f.Name) {
			continue
		}
		if err := f.cleanup(w.cfg); err != nil {
			errs = append(errs, NewGenerationError("cleanup", "", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Stale returns the paths of the artifacts whose content on disk differs
// from the rendered one, including missing files.
func (w *Writer) Stale(arts []Artifact) ([]string, error) {
	var stale []string
	for _, a := range arts {
		data, err := os.ReadFile(a.Path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			stale = append(stale, a.Path)
		case err != nil:
			return nil, NewGenerationError("check", a.Path, "", err)
		case !bytes.Equal(data, a.Data):
			stale = append(stale, a.Path)
		}
	}
	return stale, nil
}

// writeFile replaces path with data without ever leaving a partially
// written file behind.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
