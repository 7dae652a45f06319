package main

import (
	"fmt"
	"strings"

	"github.com/fasthttp/pathrouter/radix"
	"github.com/spf13/cobra"
)

func matchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match FILE PATH...",
		Short: "Print the route each path resolves to",
		Long: `Print the tag, pattern and captured variables of the route each path
resolves to, or "no match". Variables are listed in pattern order.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.load(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, path := range args[1:] {
				m, ok := r.Lookup(path)
				if !ok {
					fmt.Fprintf(out, "%s: no match\n", path)
					continue
				}

				// Variables are listed in pattern order
				tokens, err := radix.Parse(m.Pattern)
				if err != nil {
					return err
				}

				var b strings.Builder
				for _, name := range tokens.Names() {
					fmt.Fprintf(&b, " %s=%q", name, m.Vars[name])
				}

				fmt.Fprintf(out, "%s: %s %s%s\n", path, m.Tag, m.Pattern, b.String())
			}

			return nil
		},
	}
}
