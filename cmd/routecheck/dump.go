package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var rawConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func dumpCmd(opts *globalOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the compiled route tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.load(cmd, args[0])
			if err != nil {
				return err
			}

			if raw {
				rawConfig.Fdump(cmd.OutOrStdout(), r)
				return nil
			}

			return r.Dump(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the internal node arena")

	return cmd
}
