package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/stateprop/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "stateprop",
	Short: "stateprop checks stateful systems against their models",
	Long: `stateprop generates random command sequences from a model, runs them
against the system under test and shrinks any failing sequence to a minimal
counterexample.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries a process exit code without printing anything.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	sigCtx := cli.NewSignalContext(context.Background())
	err := rootCmd.ExecuteContext(sigCtx)
	sigCtx.Cancel()

	if sig := sigCtx.Signal(); sig != nil {
		fmt.Fprintf(os.Stderr, "interrupted by %s\n", sig)
		os.Exit(130)
	}
	if err != nil {
		if e, ok := err.(exitError); ok {
			os.Exit(e.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

// sharedOptions reads the persistent flags.
func sharedOptions(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	logLevel, _ := flags.GetString("log-level")
	store, _ := flags.GetString("store")
	storeDir, _ := flags.GetString("store-dir")
	redisAddr, _ := flags.GetString("redis-addr")
	redisDB, _ := flags.GetInt("redis-db")
	jsonMode, _ := flags.GetBool("json")

	return cli.Options{
		ConfigPath: configPath,
		LogLevel:   logLevel,
		Store:      store,
		StoreDir:   storeDir,
		RedisAddr:  redisAddr,
		RedisDB:    redisDB,
		JSON:       jsonMode,
	}
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML configuration file")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("store", cli.StoreFile, "Counterexample store: file, memory or redis")
	pf.String("store-dir", "", "Directory of the file store (default .stateprop/counterexamples)")
	pf.String("redis-addr", "", "Redis address for the redis store (default $REDIS_ADDR)")
	pf.Int("redis-db", 0, "Redis database for the redis store")
	pf.Bool("json", false, "Print results as JSON")
}
