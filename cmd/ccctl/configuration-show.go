package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/config"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/identity"
)

var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show how ccctl will reach the API",
	Long: `Show the API ccctl talks to, whether it can authenticate, the account it
acts on behalf of and where on-behalf-of scopes are audited, followed by
every configuration attribute and its source.

The auth token is never printed, only whether it is set.

Example:
  ccctl configuration show
  ccctl --on-behalf-of c6ece846-6df1-461d-acaa-b42a6aa74045 configuration show -o json`,
	Run: func(cmd *cobra.Command, args []string) {
		report, err := newConfigurationReport(cmd)
		exitOnError("show configuration", err)

		if output, _ := cmd.Flags().GetString("output"); output == "json" {
			exitOnError("show configuration", printJSON(report))
			return
		}
		report.writeText(os.Stdout)
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

// configurationReport is what a command run with the same flags and
// environment would use.
type configurationReport struct {
	ConfigFile    string             `json:"config_file"`
	APIURL        string             `json:"api_url"`
	Authenticated bool               `json:"authenticated"`
	OnBehalfOf    string             `json:"on_behalf_of,omitempty"`
	Audit         string             `json:"audit"`
	Problems      []string           `json:"problems,omitempty"`
	Attributes    []config.Attribute `json:"attributes"`
}

func newConfigurationReport(cmd *cobra.Command) (*configurationReport, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	report := &configurationReport{
		ConfigFile:    cfg.ConfigFilePath(),
		APIURL:        cfg.BaseURL(),
		Authenticated: cfg.AuthToken != "",
		Audit:         auditDestination(cfg),
		Attributes:    cfg.Attributes(),
	}

	if err := cfg.Validate(); err != nil {
		report.Problems = append(report.Problems, err.Error())
	}
	if !report.Authenticated {
		report.Problems = append(report.Problems, "no auth token, set CURRENCYCLOUD_AUTH_TOKEN")
	}
	if id, _ := cmd.Flags().GetString("on-behalf-of"); id != "" {
		report.OnBehalfOf = id
		if err := identity.Validate(id); err != nil {
			report.Problems = append(report.Problems, fmt.Sprintf("--on-behalf-of: %v", err))
		}
	}
	return report, nil
}

func auditDestination(cfg *config.Config) string {
	switch {
	case !cfg.AuditEnabled:
		return "disabled"
	case cfg.AuditDatabaseURL == "":
		return "stderr"
	default:
		return "stderr and database"
	}
}

func (r *configurationReport) writeText(w io.Writer) {
	onBehalfOf := r.OnBehalfOf
	if onBehalfOf == "" {
		onBehalfOf = "(own account)"
	}
	token := "not set"
	if r.Authenticated {
		token = "set"
	}

	fmt.Fprintf(w, "API:            %s\n", r.APIURL)
	fmt.Fprintf(w, "Auth token:     %s\n", token)
	fmt.Fprintf(w, "On behalf of:   %s\n", onBehalfOf)
	fmt.Fprintf(w, "Audit:          %s\n", r.Audit)
	fmt.Fprintf(w, "Config file:    %s\n\n", r.ConfigFile)

	for _, attr := range r.Attributes {
		value := attr.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "  %-20s %-40s (%s)\n", attr.Name, value, attr.Source)
	}

	if len(r.Problems) > 0 {
		fmt.Fprintln(w)
		for _, p := range r.Problems {
			fmt.Fprintf(w, "Warning: %s\n", p)
		}
	}
}
