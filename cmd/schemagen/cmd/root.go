// Package cmd implements the schemagen command line tool.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/syssam/schemagen/compiler"
	"github.com/syssam/schemagen/compiler/gen"
	"github.com/syssam/schemagen/internal/logger"
)

// state is shared by the subcommands of one invocation.
type state struct {
	configFile string
	verbosity  int
	jsonOutput bool

	config *Config
}

// NewRootCmd returns the schemagen command with its subcommands.
func NewRootCmd() *cobra.Command {
	s := &state{}
	root := &cobra.Command{
		Use:   "schemagen",
		Short: "Generate TypeScript, mongoose and GraphQL declarations from schema documents",
		Long: `Generate type declarations from JSON or YAML schema documents.

Every document maps type names to definitions: records with fields and an
optional parent type, or enums with a list of values. schemagen writes one
TypeScript module holding the interfaces, the mongoose schema definitions
and the GraphQL SDL of all types, with inherited fields flattened into
every GraphQL type.

Configuration is read from schemagen.yaml, SCHEMAGEN_* environment
variables and flags, in increasing precedence.

Examples:
  schemagen generate                           # Generate using schemagen.yaml
  schemagen generate -s ./schema -o out/db.ts  # Explicit directories
  schemagen check                              # Fail if the output is stale
  schemagen watch -v                           # Regenerate on every change`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Initialize(s.jsonOutput, s.verbosity); err != nil {
				return err
			}
			config, err := LoadConfig(s.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			s.config = config
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Cleanup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&s.configFile, "config", "c", "", "Config file (default: ./schemagen.yaml)")
	flags.CountVarP(&s.verbosity, "verbose", "v", "Verbose output (-v, -vv)")
	flags.BoolVar(&s.jsonOutput, "json", false, "Log as JSON")
	flags.StringP("schema", "s", "", "Directory holding the schema documents")
	flags.StringP("target", "o", "", "Path of the generated TypeScript module")
	flags.String("sdl-target", "", "Path of a standalone GraphQL SDL document")
	flags.String("go-target", "", "Path of the generated Go declarations")
	flags.StringSlice("features", nil, "Features to enable: orm/required, sdl/validate, go/structs, schema/snapshot")

	root.AddCommand(
		newGenerateCmd(s),
		newCheckCmd(s),
		newWatchCmd(s),
		newFeaturesCmd(),
	)
	return root
}

// Execute runs the schemagen command.
func Execute() error {
	return NewRootCmd().Execute()
}

// genConfig returns the codegen configuration of the invocation.
func (s *state) genConfig() (*gen.Config, error) {
	return s.config.GenConfig()
}

// options returns the pipeline options of the invocation.
func (s *state) options() []compiler.Option {
	return []compiler.Option{compiler.WithLogger(logger.Logger.Desugar())}
}
