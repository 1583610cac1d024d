package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmgraph"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fsmgraph",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "fsmgraph version %s\n", strings.TrimSpace(fsmgraph.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
