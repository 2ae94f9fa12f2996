package load

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDir(t *testing.T) {
	t.Run("merges documents in path order", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "b.yaml", "Color:\n  values: [BLUE]\nPost:\n  extends: Base\n")
		writeFile(t, dir, "a.json", `{"Base": {"fields": {"a": "string"}}, "Color": {"values": ["RED"]}}`)
		writeFile(t, dir, "README.md", "not a schema")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

		m, err := Dir(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"Base", "Color", "Post"}, m.Names())

		color, _ := m.Get("Color")
		assert.Equal(t, []string{"BLUE"}, color.Values, "b.yaml sorts after a.json and wins")
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := Dir(context.Background(), filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("decode error aborts", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "ok.json", `{"A": {"fields": {}}}`)
		writeFile(t, dir, "bad.json", `{"B": {"fields": {"x": {"type": "array"}}}}`)

		_, err := Dir(context.Background(), dir)
		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "bad.json", de.Source)
		assert.Equal(t, "B", de.Type)
		assert.Equal(t, "x", de.Field)
	})

	t.Run("canceled context", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.json", `{"A": {"fields": {}}}`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Dir(ctx, dir)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDirTestdata(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := Dir(context.Background(), filepath.Join("testdata", "valid"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Admin", "Base", "Status", "User"}, m.Names())

		user, _ := m.Get("User")
		assert.Equal(t, "user.yaml:1", user.Pos)
		require.Len(t, user.Fields, 4)
		assert.Equal(t, TypeAny, user.Fields[3].Type)

		admin, _ := m.Get("Admin")
		assert.Equal(t, KindRecord, admin.Kind())
		assert.False(t, admin.HasFields())
	})

	t.Run("failure", func(t *testing.T) {
		_, err := Dir(context.Background(), filepath.Join("testdata", "failure"))
		var de *DecodeError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "bad.yaml", de.Source)
		assert.Equal(t, 3, de.Line)
	})

	t.Run("cycle decodes", func(t *testing.T) {
		m, err := Dir(context.Background(), filepath.Join("testdata", "cycle"))
		require.NoError(t, err)
		assert.Equal(t, 3, m.Len())
	})
}

func TestIsSchemaFile(t *testing.T) {
	assert.True(t, IsSchemaFile("a.json"))
	assert.True(t, IsSchemaFile("a.YAML"))
	assert.True(t, IsSchemaFile("dir/a.yml"))
	assert.False(t, IsSchemaFile("a.ts"))
}
