package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/stateprop/internal/cli"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a stored counterexample",
	Long:  `Regenerates the cycle recorded in a stored counterexample and runs it again. Exits 1 while the failure still reproduces.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := sharedOptions(cmd)
		opts.Pretty, _ = cmd.Flags().GetBool("pretty")

		passed, err := cli.Replay(cmd.Context(), opts, args[0], cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if !passed {
			return exitError{code: 1}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Bool("pretty", false, "Render the counterexample as Markdown")
}
