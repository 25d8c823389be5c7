package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/currencycloud"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/model"
)

var beneficiaryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check bank details without creating a beneficiary",
	Long: `Check bank details without creating a beneficiary and print them as
completed by the API, including the bank name and address.

Example:
  ccctl beneficiary validate --bank-country GB --currency GBP \
    --account-number 12345678 --routing-code-type sort_code --routing-code 123456`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		bankCountry, _ := flags.GetString("bank-country")
		currency, _ := flags.GetString("currency")
		beneficiaryCountry, _ := flags.GetString("beneficiary-country")

		b := model.NewBeneficiaryForValidate(bankCountry, currency, beneficiaryCountry)
		b.AccountNumber, _ = flags.GetString("account-number")
		b.RoutingCodeType1, _ = flags.GetString("routing-code-type")
		b.RoutingCodeValue1, _ = flags.GetString("routing-code")
		b.BicSwift, _ = flags.GetString("bic-swift")
		b.Iban, _ = flags.GetString("iban")
		b.PaymentTypes, _ = flags.GetStringSlice("payment-types")

		err := runWithClient(cmd, func(ctx context.Context, client *currencycloud.Client) error {
			validated, err := client.ValidateBeneficiary(ctx, b)
			if err != nil {
				return err
			}
			return printJSON(validated)
		})
		exitOnError("validate beneficiary", err)
	},
}

func init() {
	beneficiaryCmd.AddCommand(beneficiaryValidateCmd)
	flags := beneficiaryValidateCmd.Flags()
	flags.String("bank-country", "", "Two letter country code of the bank")
	flags.String("currency", "", "Three letter currency code")
	flags.String("beneficiary-country", "", "Two letter country code of the beneficiary")
	flags.String("account-number", "", "Bank account number")
	flags.String("routing-code-type", "", "Routing code type, e.g. sort_code or aba")
	flags.String("routing-code", "", "Routing code value")
	flags.String("bic-swift", "", "BIC/SWIFT code")
	flags.String("iban", "", "IBAN")
	flags.StringSlice("payment-types", nil, "Payment types, e.g. regular,priority")
	_ = beneficiaryValidateCmd.MarkFlagRequired("bank-country")
	_ = beneficiaryValidateCmd.MarkFlagRequired("currency")
}
