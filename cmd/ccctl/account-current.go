package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/currencycloud"
)

// accountCurrentCmd represents the account current command
var accountCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current account",
	Long: `Show the account of the auth token. With --on-behalf-of, show the
account acted on behalf of instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		err := runWithClient(cmd, func(ctx context.Context, client *currencycloud.Client) error {
			account, err := client.CurrentAccount(ctx)
			if err != nil {
				return err
			}
			return printJSON(account)
		})
		exitOnError("show current account", err)
	},
}

var accountRetrieveCmd = &cobra.Command{
	Use:   "retrieve ID",
	Short: "Show an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runWithClient(cmd, func(ctx context.Context, client *currencycloud.Client) error {
			account, err := client.RetrieveAccount(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(account)
		})
		exitOnError("retrieve account", err)
	},
}

func init() {
	accountCmd.AddCommand(accountCurrentCmd)
	accountCmd.AddCommand(accountRetrieveCmd)
}
