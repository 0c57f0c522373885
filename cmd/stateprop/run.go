package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/stateprop/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [model...]",
	Short: "Check demo models",
	Long:  `Runs check cycles for the named demo models, or all of them, and prints the minimized counterexample of every failing model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := sharedOptions(cmd)
		opts.Seed, _ = cmd.Flags().GetInt64("seed")
		opts.Cycles, _ = cmd.Flags().GetInt("cycles")
		opts.MaxCommands, _ = cmd.Flags().GetInt("max-commands")
		opts.Reproduction, _ = cmd.Flags().GetString("reproduction")
		opts.Pretty, _ = cmd.Flags().GetBool("pretty")
		opts.Metrics, _ = cmd.Flags().GetBool("metrics")
		quiet, _ := cmd.Flags().GetBool("quiet")
		opts.Banner = !quiet

		passed, err := cli.Check(cmd.Context(), opts, args, cmd.OutOrStdout())
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
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int64("seed", 0, "Master seed (default from config, random when zero)")
	runCmd.Flags().Int("cycles", 0, "Number of cycles per model")
	runCmd.Flags().Int("max-commands", 0, "Maximum commands per generated sequence")
	runCmd.Flags().String("reproduction", "", "Shrink acceptance: any or same")
	runCmd.Flags().Bool("pretty", false, "Render counterexamples as Markdown")
	runCmd.Flags().Bool("metrics", false, "Print Prometheus metrics after the run")
	runCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
