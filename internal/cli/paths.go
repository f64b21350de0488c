package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths <theme file>",
		Short: "List every resolved path and its final value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			comp, err := cmdCtx.Engine.Compile(args[0])
			if err != nil {
				return err
			}

			w := table.NewWriter()
			w.SetOutputMirror(cmd.OutOrStdout())
			w.SetStyle(table.StyleLight)
			w.AppendHeader(table.Row{"Path", "Kind", "Value"})

			for _, key := range comp.Store.Keys() {
				tok, _ := comp.Store.Find(key)
				w.AppendRow(table.Row{key, tok.Kind.String(), tok.Value})
			}
			w.Render()
			return nil
		},
	}
}
