package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/config"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Manage the audit database",
	Long: `Manage the PostgreSQL database on-behalf-of audit events are saved to.

The database is set with CURRENCYCLOUD_AUDIT_DATABASE_URL or
audit_database_url in the config file.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'audit' requires a subcommand (migrate, rollback, status, messages)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func auditDatabaseURL() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.AuditDatabaseURL == "" {
		return "", fmt.Errorf("CURRENCYCLOUD_AUDIT_DATABASE_URL environment variable is required")
	}
	return cfg.AuditDatabaseURL, nil
}
