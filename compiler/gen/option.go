package gen

import (
	"errors"
	"go/token"
	"path/filepath"
	"strings"
)

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the header lines of the main artifact.
// Passing no lines disables the header.
func WithHeader(lines ...string) Option {
	return func(c *Config) error {
		c.Header = append([]string{}, lines...)
		return nil
	}
}

// WithTarget sets the path of the main artifact.
func WithTarget(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("Target", nil, "target path cannot be empty")
		}
		c.Target = path
		return nil
	}
}

// WithSDLTarget sets the path of the standalone .graphql document.
func WithSDLTarget(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("SDLTarget", nil, "SDL target path cannot be empty")
		}
		if ext := filepath.Ext(path); ext != ".graphql" && ext != ".graphqls" && ext != ".gql" {
			return NewConfigError("SDLTarget", path, "SDL target must have a .graphql, .graphqls or .gql extension")
		}
		c.SDLTarget = path
		return nil
	}
}

// WithGoTarget sets the path and package clause of the Go declarations file
// and enables FeatureGoStructs.
func WithGoTarget(path, pkg string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("GoTarget", nil, "Go target path cannot be empty")
		}
		if filepath.Ext(path) != ".go" {
			return NewConfigError("GoTarget", path, "Go target must have a .go extension")
		}
		if pkg != "" && !token.IsIdentifier(pkg) {
			return NewConfigError("GoPackage", pkg, "package name must be a Go identifier")
		}
		c.GoTarget = path
		c.GoPackage = pkg
		c.Features = append(c.Features, FeatureGoStructs)
		return nil
	}
}

// WithSnapshotTarget overrides the snapshot path of FeatureSnapshot.
func WithSnapshotTarget(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("SnapshotTarget", nil, "snapshot path cannot be empty")
		}
		c.SnapshotTarget = path
		return nil
	}
}

// WithSDLExport sets the name of the exported constant wrapping the SDL document.
func WithSDLExport(name string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(name) {
			return NewConfigError("SDLExport", name, "export name must be an identifier")
		}
		c.SDLExport = name
		return nil
	}
}

// WithORMSuffix sets the suffix of document-mapper definition names.
func WithORMSuffix(suffix string) Option {
	return func(c *Config) error {
		if suffix == "" || strings.ContainsAny(suffix, " \t\n") {
			return NewConfigError("ORMSuffix", suffix, "suffix must be a non-empty identifier part")
		}
		c.ORMSuffix = suffix
		return nil
	}
}

// WithIDField sets the identity field injected into persisted root types.
func WithIDField(name string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(name) {
			return NewConfigError("IDField", name, "identity field must be an identifier")
		}
		c.IDField = name
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames enables features by name.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				return NewConfigError("Features", name, "unknown feature name")
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
