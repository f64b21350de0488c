package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build [theme files...]",
		Short: "Compile theme documents",
		Long: `Compile one or more theme documents into fully-resolved output files.

With no arguments, every YAML document in the themes directory is
compiled. Documents compile independently and concurrently; one
document's failure does not abort the others.`,
		Example: `  # Compile everything under the themes directory
  pigment build

  # Compile specific themes
  pigment build themes/midnight.yaml themes/daylight.yaml

  # Emit YAML instead of JSON
  pigment build --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			sources, err := themeSources(cmdCtx.Config, args)
			if err != nil {
				return err
			}
			if len(sources) == 0 {
				return fmt.Errorf("no theme documents found in %s", cmdCtx.Config.ThemesDir)
			}

			results := cmdCtx.Engine.CompileAll(cmd.Context(), sources)

			var failures []error
			for _, result := range results {
				if result.Err != nil {
					failures = append(failures, result.Err)
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", result.Path, result.Err)
					continue
				}

				outPath, err := result.Compilation.Write(cmdCtx.Config.OutDir, cmdCtx.Config.Format)
				if err != nil {
					failures = append(failures, err)
					fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", result.Path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s → %s\n", result.Path, outPath)
			}

			if len(failures) > 0 {
				return fmt.Errorf("%d of %d theme(s) failed: %w", len(failures), len(results), errors.Join(failures...))
			}
			return nil
		},
	}
}
