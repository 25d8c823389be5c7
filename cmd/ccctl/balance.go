package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// balanceCmd represents the balance command
var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show balances",
	Long:  `Show the balances an account holds.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'balance' requires a subcommand (find, retrieve)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
