package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <theme file>",
		Short: "Show the composed document before resolution",
		Long: `Print the merged, carry-forward-substituted document with every
reference and colour-transform call still unevaluated. Useful for
seeing what imports and overrides produced before the resolution
engine runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			composed, err := cmdCtx.Engine.Preview(args[0])
			if err != nil {
				return err
			}

			var data []byte
			switch cmdCtx.Config.Format {
			case "yaml":
				data, err = yaml.Marshal(composed)
			default:
				data, err = json.MarshalIndent(composed, "", "  ")
				data = append(data, '\n')
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
