package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// beneficiaryCmd represents the beneficiary command
var beneficiaryCmd = &cobra.Command{
	Use:   "beneficiary",
	Short: "Manage beneficiaries",
	Long:  `Create, validate, retrieve, find and delete the beneficiaries of an account.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'beneficiary' requires a subcommand (create, validate, retrieve, find, delete)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(beneficiaryCmd)
}
