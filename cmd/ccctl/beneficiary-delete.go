package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/currencycloud"
)

// beneficiaryDeleteCmd represents the beneficiary delete command
var beneficiaryDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a beneficiary",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runWithClient(cmd, func(ctx context.Context, client *currencycloud.Client) error {
			b, err := client.DeleteBeneficiary(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(b)
		})
		exitOnError("delete beneficiary", err)
	},
}

func init() {
	beneficiaryCmd.AddCommand(beneficiaryDeleteCmd)
}
