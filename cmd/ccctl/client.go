package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/audit"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/config"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/currencycloud"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/logging"
)

const userAgent = "ccctl/1.0"

// loadConfig loads the configuration and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

// runWithClient builds a client from the configuration and runs fn with
// it, on behalf of --on-behalf-of when the flag is set.
func runWithClient(cmd *cobra.Command, fn func(ctx context.Context, client *currencycloud.Client) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.AuthToken == "" {
		return errors.New("an auth token is required, set CURRENCYCLOUD_AUTH_TOKEN")
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logging.Sync(logger)()

	auditor, closeAuditor, err := newAuditor(cfg, logger)
	if err != nil {
		return err
	}
	defer closeAuditor()

	client, err := currencycloud.NewFromConfig(cfg,
		currencycloud.WithLogger(logger),
		currencycloud.WithAuditor(auditor),
		currencycloud.WithUserAgent(userAgent),
	)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	onBehalfOf, _ := cmd.Flags().GetString("on-behalf-of")
	if onBehalfOf == "" {
		return fn(ctx, client)
	}
	return client.OnBehalfOfDo(onBehalfOf, func() error {
		return fn(ctx, client)
	})
}

// newAuditor returns the auditor configured by cfg and a func releasing it.
func newAuditor(cfg *config.Config, logger *zap.Logger) (audit.Auditor, func(), error) {
	if !cfg.AuditEnabled {
		return audit.Nop, func() {}, nil
	}

	store, err := audit.OpenStore(cfg.AuditDatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	onError := func(err error) {
		logger.Warn("audit event was not persisted", zap.Error(err))
	}

	closeStore := func() {
		if store != nil {
			_ = store.Close()
		}
	}
	return audit.New(audit.NewLogger(os.Stderr), store, onError), closeStore, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// exitOnError reports err and exits, the way every command fails.
func exitOnError(action string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Failed to %s: %v\n", action, err)
	os.Exit(1)
}
