package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ccctl",
	Short: "Currency Cloud API client",
	Long: `A command line client for the Currency Cloud API.

Commands that call the API can act on behalf of another account or
contact with --on-behalf-of.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("on-behalf-of", "", "UUID of the account or contact to act on behalf of")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error), overrides the configuration")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func main() {
	Execute()
}
