package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/currencycloud"
)

// beneficiaryRetrieveCmd represents the beneficiary retrieve command
var beneficiaryRetrieveCmd = &cobra.Command{
	Use:   "retrieve ID",
	Short: "Retrieve a beneficiary",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := runWithClient(cmd, func(ctx context.Context, client *currencycloud.Client) error {
			b, err := client.RetrieveBeneficiary(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(b)
		})
		exitOnError("retrieve beneficiary", err)
	},
}

func init() {
	beneficiaryCmd.AddCommand(beneficiaryRetrieveCmd)
}
