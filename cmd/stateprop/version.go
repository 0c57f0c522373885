package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/stateprop"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of stateprop",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stateprop version %s\n", strings.TrimSpace(stateprop.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
