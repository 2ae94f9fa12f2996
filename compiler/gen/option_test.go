package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		err := WithHeader("// Custom header")(c)

		require.NoError(t, err)
		assert.Equal(t, []string{"// Custom header"}, c.HeaderLines())
	})

	t.Run("no lines disables the header", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithHeader()(c))

		assert.NotNil(t, c.Header)
		assert.Empty(t, c.HeaderLines())
	})
}

func TestWithTarget(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithTarget("out/schema.ts")(c))
	assert.Equal(t, "out/schema.ts", c.Target)

	err := WithTarget("")(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestWithSDLTarget(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"graphql", "schema.graphql", false},
		{"graphqls", "schema.graphqls", false},
		{"gql", "out/schema.gql", false},
		{"wrong extension", "schema.ts", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithSDLTarget(tt.path)(c)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				assert.Empty(t, c.SDLTarget)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.path, c.SDLTarget)
			}
		})
	}
}

func TestWithGoTarget(t *testing.T) {
	t.Run("enables go/structs", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithGoTarget("model/types.go", "model")(c))

		assert.Equal(t, "model/types.go", c.GoTarget)
		assert.Equal(t, "model", c.GoPackageName())
		enabled, err := c.FeatureEnabled(FeatureGoStructs.Name)
		require.NoError(t, err)
		assert.True(t, enabled)
	})

	t.Run("empty package selects the default", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithGoTarget("types.go", "")(c))
		assert.Equal(t, DefaultGoPackage, c.GoPackageName())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		for _, tc := range []struct{ path, pkg string }{
			{"", "model"},
			{"types.ts", "model"},
			{"types.go", "my-model"},
		} {
			err := WithGoTarget(tc.path, tc.pkg)(&Config{})
			require.Error(t, err, "%s %s", tc.path, tc.pkg)
			assert.True(t, IsConfigError(err))
		}
	})
}

func TestWithNames(t *testing.T) {
	c := &Config{}
	require.NoError(t, c.Apply(
		WithSDLExport("Schema"),
		WithORMSuffix("Model"),
		WithIDField("id"),
		WithSnapshotTarget("cache/schema.snapshot"),
	))

	assert.Equal(t, "Schema", c.SDLExportName())
	assert.Equal(t, "Model", c.ORMTypeSuffix())
	assert.Equal(t, "id", c.IDFieldName())
	assert.Equal(t, "cache/schema.snapshot", c.SnapshotPath())

	for _, opt := range []Option{
		WithSDLExport("all-gql"),
		WithORMSuffix(""),
		WithORMSuffix("a b"),
		WithIDField(""),
		WithSnapshotTarget(""),
	} {
		assert.True(t, IsConfigError(opt(&Config{})))
	}
}

func TestWithFeatures(t *testing.T) {
	t.Run("adds features", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithFeatures(FeatureORMRequired, FeatureSDLValidate)(c))

		assert.Len(t, c.Features, 2)
		assert.Equal(t, []string{"orm/required", "sdl/validate"}, c.FeatureNames())
	})

	t.Run("by name", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithFeatureNames("schema/snapshot", "orm/required")(c))
		assert.Equal(t, []string{"orm/required", "schema/snapshot"}, c.FeatureNames())
	})

	t.Run("unknown name", func(t *testing.T) {
		err := WithFeatureNames("sql/upsert")(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestApply(t *testing.T) {
	t.Run("stops at the first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(WithTarget(""), WithSDLExport("Schema"))

		require.Error(t, err)
		assert.Empty(t, c.SDLExport)
	})

	t.Run("ApplyAll collects every error", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(WithTarget(""), WithSDLExport("Schema"), WithIDField("1d"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Target")
		assert.Contains(t, err.Error(), "IDField")
		assert.Equal(t, "Schema", c.SDLExport)
	})
}

func TestNewConfig(t *testing.T) {
	c, err := NewConfig(WithTarget("schema.ts"), WithFeatures(FeatureSDLValidate))
	require.NoError(t, err)
	assert.Equal(t, "schema.ts", c.Target)

	_, err = NewConfig(WithTarget(""))
	assert.True(t, IsConfigError(err))

	assert.Panics(t, func() { MustNewConfig(WithSDLTarget("schema.txt")) })
	assert.NotPanics(t, func() { MustNewConfig() })
}
