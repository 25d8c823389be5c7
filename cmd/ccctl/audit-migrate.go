package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/audit"
)

// auditMigrateCmd represents the audit migrate command
var auditMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the audit schema",
	Long: `Create and/or upgrade the audit schema.

This command runs all pending migrations embedded in ccctl.

Example:
  ccctl audit migrate`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrations(); err != nil {
			fmt.Println("Migration failed:", err)
			os.Exit(1)
		}
	},
}

var auditRollbackCmd = &cobra.Command{
	Use:   "rollback [steps]",
	Short: "Rollback audit migrations",
	Long: `Rollback audit migrations.

This command rolls back the specified number of migrations (default: 1).

Example:
  ccctl audit rollback      # Rollback 1 migration
  ccctl audit rollback 3    # Rollback 3 migrations`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				fmt.Println("Rollback failed: steps must be a positive number")
				os.Exit(1)
			}
			steps = n
		}

		if err := runMigrationsDown(steps); err != nil {
			fmt.Println("Rollback failed:", err)
			os.Exit(1)
		}
	},
}

var auditStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current audit schema version",
	Run: func(cmd *cobra.Command, args []string) {
		if err := showMigrationStatus(); err != nil {
			fmt.Println("Failed to get status:", err)
			os.Exit(1)
		}
	},
}

func init() {
	auditCmd.AddCommand(auditMigrateCmd)
	auditCmd.AddCommand(auditRollbackCmd)
	auditCmd.AddCommand(auditStatusCmd)
}

func runMigrations() error {
	dbURL, err := auditDatabaseURL()
	if err != nil {
		return err
	}

	if err := audit.Migrate(dbURL); err != nil {
		return err
	}

	version, _, err := audit.Version(dbURL)
	if err != nil {
		return err
	}
	fmt.Printf("Audit schema is at version: %d\n", version)
	return nil
}

func runMigrationsDown(steps int) error {
	dbURL, err := auditDatabaseURL()
	if err != nil {
		return err
	}

	fmt.Printf("Rolling back %d migration(s)...\n", steps)
	if err := audit.Rollback(dbURL, steps); err != nil {
		return err
	}

	version, _, err := audit.Version(dbURL)
	if err != nil {
		return err
	}
	fmt.Printf("Rolled back to version: %d\n", version)
	return nil
}

func showMigrationStatus() error {
	dbURL, err := auditDatabaseURL()
	if err != nil {
		return err
	}

	version, dirty, err := audit.Version(dbURL)
	if err != nil {
		return err
	}
	if version == 0 {
		fmt.Println("No migrations have been applied yet")
		return nil
	}

	fmt.Printf("Current version: %d\n", version)
	if dirty {
		fmt.Println("Warning: Database is in a dirty state")
	}

	files, err := audit.MigrationFiles()
	if err != nil {
		return err
	}
	fmt.Println("Available migrations:")
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}
	return nil
}
