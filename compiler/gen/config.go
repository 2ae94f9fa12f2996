package gen

import (
	"slices"
	"strings"
)

// Defaults used when the corresponding Config field is empty.
const (
	DefaultSDLExport = "AllGql"
	DefaultORMSuffix = "Def"
	DefaultIDField   = "_id"
	DefaultGoPackage = "schema"
	snapshotExt      = ".snapshot"
)

// DefaultHeader holds the boilerplate lines written above the generated
// declarations of the main artifact.
var DefaultHeader = []string{
	"// DO NOT EDIT. Generated file",
	`import gql from "graphql-tag"`,
	`import { SchemaDefinition } from "mongoose";`,
}

// Config holds the global codegen configuration shared by the build and
// the writer.
type Config struct {
	// Header lines written at the top of the main artifact.
	// Nil means DefaultHeader.
	Header []string

	// Target is the path of the main artifact holding the native declarations,
	// the document-mapper definitions and the wrapped SDL document.
	Target string

	// SDLTarget is the optional path of a standalone .graphql document.
	SDLTarget string

	// GoTarget is the path of the Go declarations file written when
	// FeatureGoStructs is enabled.
	GoTarget string

	// GoPackage is the package clause of the Go declarations file.
	GoPackage string

	// SnapshotTarget overrides the snapshot path used by FeatureSnapshot.
	// It defaults to Target with a ".snapshot" suffix.
	SnapshotTarget string

	// SDLExport names the exported constant wrapping the SDL document.
	SDLExport string

	// ORMSuffix is appended to referenced type names in document-mapper output.
	ORMSuffix string

	// IDField is the identity field injected into persisted root types.
	IDField string

	// Features defines a list of additional features to add to the codegen phase.
	Features []Feature
}

// FeatureEnabled reports if the given feature name is enabled, either
// explicitly or by default. Unknown names return a ConfigError.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	if _, ok := FeatureByName(name); !ok {
		return false, NewConfigError("Features", name, "unknown feature name")
	}
	return c.featureOn(name), nil
}

// featureOn is FeatureEnabled for names known to exist.
func (c *Config) featureOn(name string) bool {
	if c == nil {
		f, _ := FeatureByName(name)
		return f.Default
	}
	for _, f := range c.Features {
		if f.Name == name {
			return true
		}
	}
	f, _ := FeatureByName(name)
	return f.Default
}

// HeaderLines returns the configured header or DefaultHeader.
func (c *Config) HeaderLines() []string {
	if c == nil || c.Header == nil {
		return DefaultHeader
	}
	return c.Header
}

// SDLExportName returns the name of the exported SDL constant.
func (c *Config) SDLExportName() string {
	if c == nil || c.SDLExport == "" {
		return DefaultSDLExport
	}
	return c.SDLExport
}

// ORMTypeSuffix returns the suffix of document-mapper definition names.
func (c *Config) ORMTypeSuffix() string {
	if c == nil || c.ORMSuffix == "" {
		return DefaultORMSuffix
	}
	return c.ORMSuffix
}

// IDFieldName returns the identity field name of persisted root types.
func (c *Config) IDFieldName() string {
	if c == nil || c.IDField == "" {
		return DefaultIDField
	}
	return c.IDField
}

// GoPackageName returns the package clause of the Go declarations file.
func (c *Config) GoPackageName() string {
	if c == nil || c.GoPackage == "" {
		return DefaultGoPackage
	}
	return c.GoPackage
}

// SnapshotPath returns where FeatureSnapshot stores the model snapshot.
// It returns an empty string when no target is configured.
func (c *Config) SnapshotPath() string {
	switch {
	case c == nil:
		return ""
	case c.SnapshotTarget != "":
		return c.SnapshotTarget
	case c.Target != "":
		return c.Target + snapshotExt
	default:
		return ""
	}
}

// FeatureNames returns the names of the explicitly enabled features, sorted.
func (c *Config) FeatureNames() []string {
	names := make([]string, 0, len(c.Features))
	for _, f := range c.Features {
		names = append(names, f.Name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// settings returns the effective values that shape the generated artifacts,
// keyed by name. Defaults are resolved, so an explicit default and an empty
// field yield the same settings.
func (c *Config) settings() map[string]string {
	var targets [3]string
	if c != nil {
		targets = [3]string{c.Target, c.SDLTarget, c.GoTarget}
	}
	features := make([]string, 0, len(AllFeatures))
	for _, f := range AllFeatures {
		if c.featureOn(f.Name) {
			features = append(features, f.Name)
		}
	}
	slices.Sort(features)
	return map[string]string{
		"target":     targets[0],
		"sdl_target": targets[1],
		"go_target":  targets[2],
		"go_package": c.GoPackageName(),
		"export":     c.SDLExportName(),
		"orm_suffix": c.ORMTypeSuffix(),
		"id_field":   c.IDFieldName(),
		"header":     strings.Join(c.HeaderLines(), "\n"),
		"features":   strings.Join(features, ","),
	}
}
