package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.Mkdir("schema", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("schema", "types.yaml"), []byte(`
Base: {meta: {dbBase: true}, fields: {createdAt: string}}
User: {extends: Base, fields: {name: {type: string, required: true}}}
`), 0o644))
	target := filepath.Join("out", "schema.ts")

	out, err := execute(t, "check", "-o", target)
	assert.ErrorIs(t, err, ErrOutOfDate)
	assert.Contains(t, out, "out of date")

	out, err = execute(t, "generate", "-o", target, "--sdl-target", "out/schema.graphql", "--features", "sdl/validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 2 types")
	assert.FileExists(t, target)
	assert.FileExists(t, "out/schema.graphql")

	out, err = execute(t, "check", "-o", target, "--sdl-target", "out/schema.graphql")
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")

	_, err = execute(t, "generate", "-o", target, "--features", "bogus")
	assert.Error(t, err)
}

func TestGenerateSnapshotSkip(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.Mkdir("schema", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("schema", "color.json"), []byte(`{"Color": {"values": ["RED"]}}`), 0o644))
	require.NoError(t, os.WriteFile("schemagen.yaml", []byte("target: out/schema.ts\nfeatures: [schema/snapshot]\n"), 0o644))

	out, err := execute(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 1 types")

	out, err = execute(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema unchanged")

	out, err = execute(t, "generate", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 1 types")
}

func TestFeaturesCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := execute(t, "features")
	require.NoError(t, err)

	for _, name := range []string{"orm/required", "sdl/validate", "go/structs", "schema/snapshot"} {
		assert.Contains(t, out, name)
	}
}
