package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/logging"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/model"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/sandbox"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "127.0.0.1"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

// sandboxCmd represents the sandbox command
var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run an in-memory Currency Cloud API",
	Long: `Run an in-memory Currency Cloud API.

The sandbox serves the beneficiary, balance and account endpoints and
keeps data per account: requests sent with on_behalf_of only see the data
of that account. Nothing is persisted.

With --seed, a main account and one sub-account with balances are
created and the sub-account id is logged. With --fixtures, the data is
loaded from a YAML file instead, and reloaded whenever the file changes
when --watch is set.

Example:
  ccctl sandbox --auth-token 4df5b3e5882a412f148dcd08fa4e5b73 --seed
  ccctl sandbox --fixtures fixtures.yml --watch`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		exitOnError("load configuration", err)

		logger, err := logging.New(cfg.LogLevel)
		exitOnError("create logger", err)
		defer logging.Sync(logger)()

		token, _ := cmd.Flags().GetString("auth-token")
		if token == "" {
			token = cfg.AuthToken
		}
		if token == "" {
			fmt.Fprintln(os.Stderr, "--auth-token or CURRENCYCLOUD_AUTH_TOKEN is required")
			os.Exit(1)
		}

		sb := sandbox.New(token, sandbox.WithAccessLog(os.Stdout))
		if seed, _ := cmd.Flags().GetBool("seed"); seed {
			seedSandbox(sb, logger)
		}

		if fixtures, _ := cmd.Flags().GetString("fixtures"); fixtures != "" {
			if err := sb.LoadFixtures(fixtures); err != nil {
				logger.Error("could not load fixtures", zap.Error(err))
				os.Exit(1)
			}
			logger.Info("loaded fixtures", zap.String("path", fixtures))

			if watch, _ := cmd.Flags().GetBool("watch"); watch {
				go watchFixtures(cmd.Context(), sb, fixtures, logger)
			}
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		addr := net.JoinHostPort(host, port)

		logger.Info("running sandbox", zap.String("address", "http://"+addr))
		if err := sb.ListenAndServe(addr); err != nil {
			logger.Error("sandbox stopped", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sandboxCmd)

	sandboxCmd.Flags().StringP("port", "p", defaultPort(), "sandbox listen port")
	sandboxCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "sandbox bind address")
	sandboxCmd.Flags().String("auth-token", "", "auth token clients must send, defaults to the configured token")
	sandboxCmd.Flags().Bool("seed", false, "create demo accounts and balances")
	sandboxCmd.Flags().String("fixtures", "", "YAML file to load accounts, balances and beneficiaries from")
	sandboxCmd.Flags().Bool("watch", false, "reload --fixtures when the file changes")
}

func watchFixtures(ctx context.Context, sb *sandbox.Server, path string, logger *zap.Logger) {
	err := sb.WatchFixtures(ctx, path, func(err error) {
		if err != nil {
			logger.Warn("could not reload fixtures", zap.String("path", path), zap.Error(err))
			return
		}
		logger.Info("reloaded fixtures", zap.String("path", path))
	})
	if err != nil {
		logger.Error("stopped watching fixtures", zap.String("path", path), zap.Error(err))
	}
}

func seedSandbox(sb *sandbox.Server, logger *zap.Logger) {
	primary := sb.SeedAccount("", model.Account{
		AccountName:     "Currency Cloud Sandbox",
		LegalEntityType: "company",
		Brand:           "currencycloud",
		Status:          "enabled",
		Country:         "GB",
	})
	sb.SeedBalance("", model.Balance{AccountID: primary.ID, Currency: "GBP", Amount: decimal.RequireFromString("10000.00")})
	sb.SeedBalance("", model.Balance{AccountID: primary.ID, Currency: "EUR", Amount: decimal.RequireFromString("2500.00")})

	subID := uuid.NewString()
	sub := sb.SeedAccount(subID, model.Account{
		ID:              subID,
		AccountName:     "Sandbox Sub-Account",
		LegalEntityType: "individual",
		Brand:           "currencycloud",
		Status:          "enabled",
		Country:         "GB",
	})
	sb.SeedBalance(subID, model.Balance{AccountID: sub.ID, Currency: "GBP", Amount: decimal.RequireFromString("150.25")})
	sb.SeedBeneficiary(subID, model.Beneficiary{
		BankAccountHolderName: "Test User",
		Name:                  "Test User",
		BankCountry:           "GB",
		Currency:              "GBP",
		PaymentTypes:          []string{"regular"},
	})

	logger.Info("seeded sandbox",
		zap.String("account-id", primary.ID),
		zap.String("sub-account-id", sub.ID),
	)
}
