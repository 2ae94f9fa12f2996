package gen

import (
	"errors"
	"os"
)

var (
	// FeatureORMRequired enforces required fields in document-mapper definitions.
	FeatureORMRequired = Feature{
		Name:        "orm/required",
		Stage:       Alpha,
		Default:     false,
		Description: "Adds `required: true` to document-mapper definitions of required fields",
	}

	// FeatureSDLValidate validates the generated SDL document before returning it.
	FeatureSDLValidate = Feature{
		Name:        "sdl/validate",
		Stage:       Stable,
		Default:     false,
		Description: "Validates the generated GraphQL SDL with gqlparser and fails the build on errors",
	}

	// FeatureGoStructs generates Go declarations alongside the other targets.
	FeatureGoStructs = Feature{
		Name:        "go/structs",
		Stage:       Experimental,
		Default:     false,
		Description: "Generates Go struct and enum declarations for every type",
		cleanup: func(c *Config) error {
			return remove(c.GoTarget)
		},
	}

	// FeatureSnapshot stores a msgpack snapshot of the schema model next to the
	// generated output, so unchanged models can skip regeneration.
	FeatureSnapshot = Feature{
		Name:        "schema/snapshot",
		Stage:       Experimental,
		Default:     false,
		Description: "Stores a snapshot of the schema model to detect when regeneration is needed",
		cleanup: func(c *Config) error {
			return remove(c.SnapshotPath())
		},
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureORMRequired,
		FeatureSDLValidate,
		FeatureGoStructs,
		FeatureSnapshot,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and may change or go away.
	Experimental

	// Alpha features are complete but their output may still change.
	Alpha

	// Beta features are documented and not expected to change.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// String implements fmt.Stringer.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup removes the artifacts of a feature that was switched off,
	// e.g. files written by previous codegen runs.
	cleanup func(*Config) error
}

// FeatureByName returns the public feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// remove deletes the file if it exists.
func remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
