package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/currencycloud"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/model"
)

// beneficiaryCreateCmd represents the beneficiary create command
var beneficiaryCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a beneficiary",
	Long: `Create a beneficiary.

The bank account holder name defaults to NAME.

Example:
  ccctl beneficiary create "Test User" --bank-country GB --currency GBP \
    --account-number 12345678 --routing-code-type sort_code --routing-code 123456`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		holder, _ := flags.GetString("holder")
		if holder == "" {
			holder = args[0]
		}
		bankCountry, _ := flags.GetString("bank-country")
		currency, _ := flags.GetString("currency")

		b := model.NewBeneficiary(holder, bankCountry, currency, args[0])
		b.AccountNumber, _ = flags.GetString("account-number")
		b.RoutingCodeType1, _ = flags.GetString("routing-code-type")
		b.RoutingCodeValue1, _ = flags.GetString("routing-code")
		b.BicSwift, _ = flags.GetString("bic-swift")
		b.Iban, _ = flags.GetString("iban")
		b.Email, _ = flags.GetString("email")

		err := runWithClient(cmd, func(ctx context.Context, client *currencycloud.Client) error {
			created, err := client.CreateBeneficiary(ctx, b)
			if err != nil {
				return err
			}
			return printJSON(created)
		})
		exitOnError("create beneficiary", err)
	},
}

func init() {
	beneficiaryCmd.AddCommand(beneficiaryCreateCmd)
	flags := beneficiaryCreateCmd.Flags()
	flags.String("holder", "", "Bank account holder name")
	flags.String("bank-country", "", "Two letter country code of the bank")
	flags.String("currency", "", "Three letter currency code")
	flags.String("account-number", "", "Bank account number")
	flags.String("routing-code-type", "", "Routing code type, e.g. sort_code or aba")
	flags.String("routing-code", "", "Routing code value")
	flags.String("bic-swift", "", "BIC/SWIFT code")
	flags.String("iban", "", "IBAN")
	flags.String("email", "", "Email address of the beneficiary")
	_ = beneficiaryCreateCmd.MarkFlagRequired("bank-country")
	_ = beneficiaryCreateCmd.MarkFlagRequired("currency")
}
