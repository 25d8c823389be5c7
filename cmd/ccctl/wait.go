package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the API to be reachable",
	Long: `Wait for the configured API to answer HTTP requests.

Any response counts, including authentication failures, so the command
can be used before a token is issued, or to wait for ccctl sandbox.

Example:
  ccctl wait
  ccctl wait --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		retries, _ := cmd.Flags().GetUint64("retries")

		cfg, err := loadConfig(cmd)
		exitOnError("load configuration", err)

		if err := waitForAPI(cmd.Context(), cfg.BaseURL(), retries); err != nil {
			fmt.Fprintf(os.Stderr, "API did not become reachable: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("API is reachable")
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().Uint64P("retries", "r", 90, "Number of retries")
}

func waitForAPI(ctx context.Context, baseURL string, retries uint64) error {
	client := &http.Client{Timeout: 2 * time.Second}

	fmt.Printf("Waiting for %s...\n", baseURL)

	check := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			fmt.Print(".")
			return err
		}
		_ = resp.Body.Close()
		if resp.StatusCode >= 500 {
			fmt.Print(".")
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), retries), ctx)
	err := backoff.Retry(check, policy)
	fmt.Println()
	return err
}
