// Package gen turns a schema model into TypeScript declarations, mongoose
// schema definitions and a GraphQL SDL document.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Schema documents (*.json, *.yaml)
//	        ↓
//	   load.Model (type name → Definition)
//	        ↓
//	   Tree (extends relationships, parents first)
//	        ↓
//	   Build (native, document-mapper and SDL backends)
//	        ↓
//	   Writer (rendered artifacts on disk)
//
// # Key Types
//
//   - Tree: the inheritance forest of a model, rooted at a synthetic node
//   - Result: the fragments of a build, in tree order
//   - Config: global configuration for code generation
//   - Writer: renders a Result into files and writes them atomically
//
// SDL has no inheritance, so every object type inlines the fields of its
// ancestors between provenance markers:
//
//	type Derived {
//	  # START Inherited from Base
//	  a: String
//	  # END Inherited from Base
//
//	  b: Int
//	}
//
// # Error Handling
//
// The package uses structured error types:
//
//   - MissingParentError: extends names a type that does not exist
//   - CycleError: an extends chain loops back on itself
//   - DefinitionError: a definition no backend can render
//   - ConfigError: configuration errors
//   - GenerationError: rendering and writing errors
//   - ValidationError: generated SDL rejected by gqlparser
//
// Example error handling:
//
//	res, err := gen.Build(cfg, model)
//	if err != nil {
//	    if gen.IsMissingParentError(err) {
//	        // Handle the broken inheritance tree
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./generated/schema.ts"),
//	    gen.WithSDLTarget("./generated/schema.graphql"),
//	    gen.WithFeatures(gen.FeatureSDLValidate),
//	)
//
// # Features
//
// The generator supports optional features that can be enabled:
//
//   - orm/required: required: true in document-mapper definitions
//   - sdl/validate: gqlparser validation of the SDL document
//   - go/structs: Go declarations rendered with Jennifer
//   - schema/snapshot: msgpack snapshot of the model for change detection
package gen
