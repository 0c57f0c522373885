package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/stateprop/internal/cli"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored counterexamples",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.List(cmd.Context(), sharedOptions(cmd), cmd.OutOrStdout())
	},
}

var forgetCmd = &cobra.Command{
	Use:   "forget <id>",
	Short: "Delete a stored counterexample",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Forget(cmd.Context(), sharedOptions(cmd), args[0])
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the demo models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Models(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(listCmd, forgetCmd, modelsCmd)
}
