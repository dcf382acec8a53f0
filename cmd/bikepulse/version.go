package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bikepulse/pkg/contracts"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := contracts.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bikepulse %s (%s)\n", info.Version, info.Stage)
			fmt.Fprintf(out, "  api:        %s\n", info.APIVersion)
			fmt.Fprintf(out, "  data:       %s\n", info.DataFormat)
			fmt.Fprintf(out, "  commit:     %s\n", info.GitCommit)
			fmt.Fprintf(out, "  built:      %s\n", info.BuildTime)
			fmt.Fprintf(out, "  go:         %s %s/%s\n", info.GoVersion, info.OS, info.Architecture)
		},
	}
}
