package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/tierank/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tierankctl", version.String())
		},
	}
}
