package compiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/syssam/schemagen/compiler/gen"
	"github.com/syssam/schemagen/compiler/load"
)

const (
	baseDoc = `{
  "Base": {"meta": {"dbBase": true}, "fields": {"createdAt": "string"}},
  "Color": {"values": ["RED", "GREEN"]}
}`
	userDoc = `
User:
  extends: Base
  fields:
    name: {type: string, required: true}
    color: Color
Admin:
  extends: User
`
)

// schemaDir writes the given documents into a new directory.
func schemaDir(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}
	return dir
}

func TestGenerate(t *testing.T) {
	dir := schemaDir(t, map[string]string{"base.json": baseDoc, "user.yaml": userDoc})
	out := t.TempDir()
	cfg := gen.MustNewConfig(
		gen.WithTarget(filepath.Join(out, "schema.ts")),
		gen.WithSDLTarget(filepath.Join(out, "schema.graphql")),
		gen.WithFeatures(gen.FeatureSDLValidate),
	)

	core, logs := observer.New(zap.DebugLevel)
	r, err := Generate(context.Background(), dir, cfg, WithLogger(zap.New(core)))
	require.NoError(t, err)

	assert.False(t, r.Skipped)
	assert.Equal(t, []string{"Base", "User", "Admin", "Color"}, r.Result.Order)
	assert.ElementsMatch(t, []string{cfg.Target, cfg.SDLTarget}, r.Files)
	assert.Equal(t, 1, logs.FilterMessage("generated").Len())
	built := logs.FilterMessage("schema built").All()
	require.Len(t, built, 1)
	assert.EqualValues(t, 2, built[0].ContextMap()["depth"])

	data, err := os.ReadFile(cfg.Target)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "// DO NOT EDIT. Generated file\n"))
	assert.Contains(t, text, "export interface User extends Base {\n  name: string;\n  color?: Color;\n}")
	assert.Contains(t, text, "export type Admin = User;")
	assert.Contains(t, text, "export const AdminDef: SchemaDefinition = UserDef;")
	assert.Contains(t, text, "export const AllGql = gql`")

	stale, err := Check(context.Background(), dir, cfg)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestGenerateErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "schema.ts")
	cfg := gen.MustNewConfig(gen.WithTarget(out))

	t.Run("missing parent writes nothing", func(t *testing.T) {
		dir := schemaDir(t, map[string]string{"orphan.yaml": "Orphan: {extends: Ghost}"})

		r, err := Generate(context.Background(), dir, cfg)
		require.Error(t, err)
		assert.Nil(t, r)
		assert.True(t, gen.IsMissingParentError(err))
		assert.NoFileExists(t, out)
	})

	t.Run("decode error", func(t *testing.T) {
		dir := schemaDir(t, map[string]string{"bad.yaml": "User: {fields: {tags: array}}"})

		_, err := Generate(context.Background(), dir, cfg)
		var derr *load.DecodeError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "bad.yaml", derr.Source)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := Generate(context.Background(), filepath.Join(t.TempDir(), "nope"), cfg)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := GenerateModel(context.Background(), load.NewModel(), nil)
		assert.True(t, gen.IsConfigError(err))
		_, err = GenerateModel(context.Background(), nil, cfg)
		assert.True(t, gen.IsConfigError(err))
	})
}

func TestGenerateSnapshot(t *testing.T) {
	dir := schemaDir(t, map[string]string{"base.json": baseDoc})
	out := t.TempDir()
	cfg := gen.MustNewConfig(
		gen.WithTarget(filepath.Join(out, "schema.ts")),
		gen.WithFeatures(gen.FeatureSnapshot),
	)
	ctx := context.Background()

	r, err := Generate(ctx, dir, cfg)
	require.NoError(t, err)
	assert.False(t, r.Skipped)
	assert.FileExists(t, cfg.SnapshotPath())

	r, err = Generate(ctx, dir, cfg)
	require.NoError(t, err)
	assert.True(t, r.Skipped)
	assert.Nil(t, r.Result)

	r, err = Generate(ctx, dir, cfg, WithForce())
	require.NoError(t, err)
	assert.False(t, r.Skipped)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte("Tag: {fields: {label: string}}"), 0o644))
	r, err = Generate(ctx, dir, cfg)
	require.NoError(t, err)
	assert.False(t, r.Skipped)
	assert.Contains(t, r.Result.Order, "Tag")

	require.NoError(t, os.Remove(cfg.Target))
	m, err := load.Dir(ctx, dir)
	require.NoError(t, err)
	fresh, err := UpToDate(cfg, m)
	require.NoError(t, err)
	assert.False(t, fresh, "a missing target is never up to date")
}

func TestGenerateSnapshotConfigChange(t *testing.T) {
	dir := schemaDir(t, map[string]string{"base.json": baseDoc, "user.yaml": userDoc})
	target := filepath.Join(t.TempDir(), "schema.ts")
	ctx := context.Background()

	first := gen.MustNewConfig(gen.WithTarget(target), gen.WithFeatures(gen.FeatureSnapshot))
	r, err := Generate(ctx, dir, first)
	require.NoError(t, err)
	require.False(t, r.Skipped)

	for _, tt := range []struct {
		name string
		opts []gen.Option
	}{
		{"export name", []gen.Option{gen.WithSDLExport("Schema")}},
		{"feature", []gen.Option{gen.WithFeatures(gen.FeatureORMRequired)}},
		{"identity field", []gen.Option{gen.WithIDField("id")}},
		{"header", []gen.Option{gen.WithHeader("// custom")}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			cfg := gen.MustNewConfig(append([]gen.Option{gen.WithTarget(target), gen.WithFeatures(gen.FeatureSnapshot)}, tt.opts...)...)
			r, err := Generate(ctx, dir, cfg)
			require.NoError(t, err)
			assert.False(t, r.Skipped)

			r, err = Generate(ctx, dir, cfg)
			require.NoError(t, err)
			assert.True(t, r.Skipped)
		})
	}

	cfg := gen.MustNewConfig(gen.WithTarget(target), gen.WithFeatures(gen.FeatureSnapshot), gen.WithSDLExport("Schema"))
	_, err = Generate(ctx, dir, cfg, WithForce())
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "export const Schema = gql`")
}

func TestHooks(t *testing.T) {
	dir := schemaDir(t, map[string]string{"base.json": baseDoc})
	cfg := gen.MustNewConfig(gen.WithTarget(filepath.Join(t.TempDir(), "schema.ts")))

	var calls []string
	hook := func(name string) Hook {
		return func(next Generator) Generator {
			return GenerateFunc(func(ctx context.Context, r *Run) error {
				calls = append(calls, name)
				return next.Generate(ctx, r)
			})
		}
	}
	_, err := Generate(context.Background(), dir, cfg, WithHooks(hook("outer"), hook("inner")))
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, calls)

	boom := errors.New("boom")
	abort := func(Generator) Generator {
		return GenerateFunc(func(context.Context, *Run) error { return boom })
	}
	_, err = Generate(context.Background(), dir, cfg, WithHooks(abort), WithForce())
	assert.ErrorIs(t, err, boom)
}

func TestCheck(t *testing.T) {
	dir := schemaDir(t, map[string]string{"base.json": baseDoc})
	cfg := gen.MustNewConfig(gen.WithTarget(filepath.Join(t.TempDir(), "schema.ts")))
	ctx := context.Background()

	stale, err := Check(ctx, dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.Target}, stale)

	_, err = Generate(ctx, dir, cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.yaml"), []byte(userDoc), 0o644))

	stale, err = Check(ctx, dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.Target}, stale)
}
