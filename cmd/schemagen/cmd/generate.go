package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/syssam/schemagen/compiler"
	"github.com/syssam/schemagen/compiler/gen"
	"github.com/syssam/schemagen/internal/logger"
)

// ErrOutOfDate is returned by the check command when the generated
// artifacts do not match the schema documents.
var ErrOutOfDate = errors.New("generated files are out of date - run 'schemagen generate' to update")

func newGenerateCmd(s *state) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate declarations from the schema documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.genConfig()
			if err != nil {
				return err
			}
			opts := s.options()
			if force {
				opts = append(opts, compiler.WithForce())
			}
			r, err := compiler.Generate(cmd.Context(), s.config.Schema, cfg, opts...)
			if err != nil {
				return err
			}
			if r.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Schema unchanged, nothing to generate")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Generated %d types\n", len(r.Result.Order))
			for _, f := range r.Files {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", f)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Regenerate even when the schema snapshot is unchanged")
	return cmd
}

func newCheckCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check if generated files are up to date",
		Long: `Check if the generated files match the current schema documents.

The files are rendered in memory and compared byte for byte with the
files on disk.

Examples:
  schemagen check           # Check the files of schemagen.yaml
  schemagen check -o a.ts   # Check another target`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.genConfig()
			if err != nil {
				return err
			}
			stale, err := compiler.Check(cmd.Context(), s.config.Schema, cfg)
			if err != nil {
				return err
			}
			if len(stale) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Generated files are up to date")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✗ Generated files are out of date:")
			for _, f := range stale {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", f)
			}
			return ErrOutOfDate
		},
	}
}

func newWatchCmd(s *state) *cobra.Command {
	var debounce = compiler.DefaultDebounce
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever a schema document changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.genConfig()
			if err != nil {
				return err
			}
			w, err := compiler.NewWatcher(s.config.Schema, cfg, s.options()...)
			if err != nil {
				return err
			}
			w.WithDebounce(debounce)
			w.OnRun = func(r *compiler.Run, err error) {
				switch {
				case err != nil:
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
				case !r.Skipped:
					fmt.Fprintf(cmd.OutOrStdout(), "✓ Generated %d types\n", len(r.Result.Order))
				}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			logger.Logger.Infow("watching schema documents", "dir", s.config.Schema, "debounce", debounce)
			return w.Run(ctx)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "Quiet period after a change before regenerating")
	return cmd
}

func newFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List the optional code generation features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSTAGE\tDESCRIPTION")
			for _, f := range gen.AllFeatures {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.Stage, strings.ReplaceAll(f.Description, "`", ""))
			}
			return tw.Flush()
		},
	}
}
