package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/pigment/pkg/token"
)

func newExplainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <theme file> <path>",
		Short: "Show how one value was resolved",
		Long: `Compile a theme document and replay the derivation trail for one
path: every token the resolver passed through on the way from the
original expression to the final literal, including nested function
sub-resolutions and hops into other tokens' own trails.`,
		Example: `  pigment explain themes/midnight.yaml colors.editor.background`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := newCommandContext(cmd)
			if err != nil {
				return err
			}

			comp, err := cmdCtx.Engine.Compile(args[0])
			if err != nil {
				return err
			}

			key := args[1]
			tok, ok := comp.Store.Find(key)
			if !ok {
				return fmt.Errorf("no token for %q; try 'pigment paths %s' to list keys", key, args[0])
			}

			w := table.NewWriter()
			w.SetOutputMirror(cmd.OutOrStdout())
			w.SetStyle(table.StyleLight)
			w.AppendHeader(table.Row{"#", "Token", "Kind", "Raw Value", "Value"})

			step := 0
			visited := make(map[*token.Token]bool)
			var walk func(t *token.Token, depth int)
			walk = func(t *token.Token, depth int) {
				if visited[t] {
					return
				}
				visited[t] = true
				step++
				indent := strings.Repeat("  ", depth)
				w.AppendRow(table.Row{step, indent + t.Name, t.Kind.String(), t.RawValue, t.Value})
				for _, visitedTok := range t.Trail {
					walk(visitedTok, depth+1)
				}
			}
			walk(tok, 0)
			w.Render()

			if parents := comp.Store.Parents(key); len(parents) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\nDerived from: %s\n", strings.Join(parents, ", "))
			}
			if upstream := comp.Store.Upstream(key); len(upstream) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Depends on: %s\n", strings.Join(upstream, ", "))
			}
			return nil
		},
	}
}
