package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/audit"
)

// auditMessagesCmd represents the audit messages command
var auditMessagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Show the latest audit messages",
	Long: `Show the latest audit messages, newest first.

Example:
  ccctl audit messages --limit 20`,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		if err := showMessages(limit); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show audit messages: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	auditCmd.AddCommand(auditMessagesCmd)
	auditMessagesCmd.Flags().IntP("limit", "n", 50, "Number of messages to show")
}

func showMessages(limit int) error {
	dbURL, err := auditDatabaseURL()
	if err != nil {
		return err
	}

	store, err := audit.OpenStore(dbURL)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	messages, err := store.Messages(limit)
	if err != nil {
		return err
	}
	return printJSON(messages)
}
