package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/currencycloud"
)

// balanceFindCmd represents the balance find command
var balanceFindCmd = &cobra.Command{
	Use:   "find",
	Short: "List the balances of the account",
	Run: func(cmd *cobra.Command, args []string) {
		page := paginationFromFlags(cmd)

		err := runWithClient(cmd, func(ctx context.Context, client *currencycloud.Client) error {
			balances, err := client.FindBalances(ctx, page)
			if err != nil {
				return err
			}
			return printJSON(balances)
		})
		exitOnError("find balances", err)
	},
}

func init() {
	balanceCmd.AddCommand(balanceFindCmd)
	addPaginationFlags(balanceFindCmd)
}
