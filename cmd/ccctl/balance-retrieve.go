package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/currencycloud"
)

// balanceRetrieveCmd represents the balance retrieve command
var balanceRetrieveCmd = &cobra.Command{
	Use:   "retrieve CURRENCY",
	Short: "Show the balance held in one currency",
	Long: `Show the balance held in one currency.

Example:
  ccctl balance retrieve GBP`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		currency := strings.ToUpper(args[0])

		err := runWithClient(cmd, func(ctx context.Context, client *currencycloud.Client) error {
			balance, err := client.RetrieveBalance(ctx, currency)
			if err != nil {
				return err
			}
			return printJSON(balance)
		})
		exitOnError("retrieve balance", err)
	},
}

func init() {
	balanceCmd.AddCommand(balanceRetrieveCmd)
}
