package compiler

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/syssam/schemagen/compiler/gen"
	"github.com/syssam/schemagen/compiler/load"
)

// DefaultDebounce is the quiet period after the last change of a schema
// document before the watcher regenerates.
const DefaultDebounce = 300 * time.Millisecond

// Watcher regenerates the artifacts of a schema directory whenever one of
// its documents changes.
type Watcher struct {
	dir      string
	cfg      *gen.Config
	opts     []Option
	log      *zap.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
	// last holds the snapshot of the last generated model.
	last []byte

	// OnRun, if set, is called after every generation attempt.
	OnRun func(*Run, error)
}

// NewWatcher creates a watcher for the schema documents of dir.
func NewWatcher(dir string, cfg *gen.Config, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("compiler: create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("compiler: watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:      dir,
		cfg:      cfg,
		opts:     opts,
		log:      newOptions(opts).log,
		watcher:  fw,
		debounce: DefaultDebounce,
	}, nil
}

// WithDebounce sets the quiet period before regenerating.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// Run generates once, then regenerates after changes until the context is
// done. Generation errors are reported through the logger and OnRun, and do
// not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	w.generate(ctx)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !load.IsSchemaFile(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug("schema document changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			w.generate(ctx)
		}
	}
}

// generate reloads the directory and regenerates when the model differs
// from the last generated one.
func (w *Watcher) generate(ctx context.Context) {
	r, err := w.regenerate(ctx)
	if err != nil {
		w.log.Error("generation failed", zap.String("dir", w.dir), zap.Error(err))
	}
	if w.OnRun != nil {
		w.OnRun(r, err)
	}
}

func (w *Watcher) regenerate(ctx context.Context) (*Run, error) {
	m, err := load.Dir(ctx, w.dir)
	if err != nil {
		return nil, err
	}
	snap, err := gen.Snapshot(w.cfg, m)
	if err != nil {
		return nil, err
	}
	if w.last != nil && bytes.Equal(w.last, snap) {
		w.log.Debug("schema unchanged, skipping generation", zap.String("dir", w.dir))
		return &Run{Config: w.cfg, Model: m, Skipped: true}, nil
	}
	r, err := GenerateModel(ctx, m, w.cfg, w.opts...)
	if err != nil {
		return nil, err
	}
	w.last = snap
	return r, nil
}
