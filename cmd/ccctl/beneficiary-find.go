package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/currencycloud"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/model"
)

// beneficiaryFindCmd represents the beneficiary find command
var beneficiaryFindCmd = &cobra.Command{
	Use:   "find",
	Short: "Find beneficiaries",
	Long: `Find the beneficiaries matching every given filter.

Example:
  ccctl beneficiary find --currency GBP --per-page 10
  ccctl beneficiary find --name "Test User" --first`,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		filter := &model.Beneficiary{}
		filter.Name, _ = flags.GetString("name")
		filter.BankCountry, _ = flags.GetString("bank-country")
		filter.Currency, _ = flags.GetString("currency")
		first, _ := flags.GetBool("first")
		page := paginationFromFlags(cmd)

		err := runWithClient(cmd, func(ctx context.Context, client *currencycloud.Client) error {
			if first {
				b, err := client.FirstBeneficiary(ctx, filter)
				if err != nil {
					return err
				}
				return printJSON(b)
			}

			found, err := client.FindBeneficiaries(ctx, filter, page)
			if err != nil {
				return err
			}
			return printJSON(found)
		})
		exitOnError("find beneficiaries", err)
	},
}

func init() {
	beneficiaryCmd.AddCommand(beneficiaryFindCmd)
	flags := beneficiaryFindCmd.Flags()
	flags.String("name", "", "Beneficiary name")
	flags.String("bank-country", "", "Two letter country code of the bank")
	flags.String("currency", "", "Three letter currency code")
	flags.Bool("first", false, "Print only the first match")
	addPaginationFlags(beneficiaryFindCmd)
}

func addPaginationFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 0, "Page number")
	cmd.Flags().Int("per-page", 0, "Results per page")
	cmd.Flags().String("order", "", "Field to order by")
	cmd.Flags().Bool("desc", false, "Order descending")
}

func paginationFromFlags(cmd *cobra.Command) *model.Pagination {
	flags := cmd.Flags()
	p := &model.Pagination{}
	p.CurrentPage, _ = flags.GetInt("page")
	p.PerPage, _ = flags.GetInt("per-page")
	p.Order, _ = flags.GetString("order")
	if desc, _ := flags.GetBool("desc"); desc {
		p.OrderAscDesc = "desc"
	}
	return p
}
