package load

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Extensions lists the file extensions Dir picks up.
var Extensions = []string{".json", ".yaml", ".yml"}

// Dir loads every definition document found directly inside dir.
// See Files for the merge rules.
func Dir(ctx context.Context, dir string) (*Model, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load: read schema directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsSchemaFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return Files(ctx, paths...)
}

// IsSchemaFile reports whether the file name has a definition document extension.
func IsSchemaFile(name string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(name)))
}

// Files reads and decodes the given documents in parallel, then merges them
// in lexical path order. When two documents define the same type, the one
// whose path sorts last wins.
func Files(ctx context.Context, paths ...string) (*Model, error) {
	paths = slices.Clone(paths)
	slices.Sort(paths)
	docs := make([][]*Definition, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("load: read %s: %w", path, err)
			}
			defs, err := ParseDocument(filepath.Base(path), data)
			if err != nil {
				return err
			}
			docs[i] = defs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := NewModel()
	for _, defs := range docs {
		for _, d := range defs {
			m.Add(d)
		}
	}
	return m, nil
}
