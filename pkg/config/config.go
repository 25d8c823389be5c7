package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/logging"
)

const (
	DefaultConfigPath = "/etc/currencycloud"
	ConfigFileName    = "currencycloud.yml"
)

// Environments maps environment names to API base URLs.
var Environments = map[string]string{
	"demonstration": "https://devapi.currencycloud.com",
	"production":    "https://api.currencycloud.com",
}

// Config holds all client configuration settings
type Config struct {
	// Environment selects the API base URL when APIURL is not set
	Environment string `yaml:"environment" json:"environment"`

	// APIURL overrides the base URL of the environment
	APIURL string `yaml:"api_url" json:"api_url"`

	// AuthToken is an auth token issued by the authenticate endpoint
	AuthToken string `yaml:"auth_token" json:"auth_token"`

	// TimeoutSeconds bounds each HTTP request
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeout_seconds"`

	// MaxRetries is the number of retries for failed requests
	MaxRetries int `yaml:"max_retries" json:"max_retries"`

	// RateLimit is the number of requests per second the client sends
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit"`

	// RateBurst is the number of requests that may be sent at once
	RateBurst int `yaml:"rate_burst" json:"rate_burst"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level"`

	// AuditEnabled writes on-behalf-of audit events
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// AuditDatabaseURL persists audit events to PostgreSQL when set
	AuditDatabaseURL string `yaml:"audit_database_url" json:"audit_database_url"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		Environment:    "demonstration",
		TimeoutSeconds: 30,
		MaxRetries:     3,
		RateLimit:      10,
		RateBurst:      10,
		LogLevel:       "info",
		AuditEnabled:   false,
		sources:        make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("CURRENCYCLOUD_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	if err := config.applyEnvConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"environment", "api_url", "auth_token", "timeout_seconds",
		"max_retries", "rate_limit", "rate_burst", "log_level",
		"audit_enabled", "audit_database_url",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	if file.Environment != "" {
		c.Environment = file.Environment
		c.sources["environment"] = "file"
	}
	if file.APIURL != "" {
		c.APIURL = file.APIURL
		c.sources["api_url"] = "file"
	}
	if file.AuthToken != "" {
		c.AuthToken = file.AuthToken
		c.sources["auth_token"] = "file"
	}
	if file.TimeoutSeconds != 0 {
		c.TimeoutSeconds = file.TimeoutSeconds
		c.sources["timeout_seconds"] = "file"
	}
	if file.MaxRetries != 0 {
		c.MaxRetries = file.MaxRetries
		c.sources["max_retries"] = "file"
	}
	if file.RateLimit != 0 {
		c.RateLimit = file.RateLimit
		c.sources["rate_limit"] = "file"
	}
	if file.RateBurst != 0 {
		c.RateBurst = file.RateBurst
		c.sources["rate_burst"] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.AuditEnabled {
		c.AuditEnabled = true
		c.sources["audit_enabled"] = "file"
	}
	if file.AuditDatabaseURL != "" {
		c.AuditDatabaseURL = file.AuditDatabaseURL
		c.sources["audit_database_url"] = "file"
	}
}

func (c *Config) applyEnvConfig() error {
	if val := os.Getenv("CURRENCYCLOUD_ENVIRONMENT"); val != "" {
		c.Environment = val
		c.sources["environment"] = "environment"
	}
	if val := os.Getenv("CURRENCYCLOUD_API_URL"); val != "" {
		c.APIURL = val
		c.sources["api_url"] = "environment"
	}
	if val := os.Getenv("CURRENCYCLOUD_AUTH_TOKEN"); val != "" {
		c.AuthToken = val
		c.sources["auth_token"] = "environment"
	}
	if val := os.Getenv("CURRENCYCLOUD_TIMEOUT_SECONDS"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid CURRENCYCLOUD_TIMEOUT_SECONDS: %w", err)
		}
		c.TimeoutSeconds = i
		c.sources["timeout_seconds"] = "environment"
	}
	if val := os.Getenv("CURRENCYCLOUD_MAX_RETRIES"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid CURRENCYCLOUD_MAX_RETRIES: %w", err)
		}
		c.MaxRetries = i
		c.sources["max_retries"] = "environment"
	}
	if val := os.Getenv("CURRENCYCLOUD_RATE_LIMIT"); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid CURRENCYCLOUD_RATE_LIMIT: %w", err)
		}
		c.RateLimit = f
		c.sources["rate_limit"] = "environment"
	}
	if val := os.Getenv("CURRENCYCLOUD_RATE_BURST"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid CURRENCYCLOUD_RATE_BURST: %w", err)
		}
		c.RateBurst = i
		c.sources["rate_burst"] = "environment"
	}
	if val := os.Getenv("CURRENCYCLOUD_LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("CURRENCYCLOUD_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = val == "true" || val == "1"
		c.sources["audit_enabled"] = "environment"
	}
	if val := os.Getenv("CURRENCYCLOUD_AUDIT_DATABASE_URL"); val != "" {
		c.AuditDatabaseURL = val
		c.sources["audit_database_url"] = "environment"
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// BaseURL returns the API URL, falling back to the environment's URL
func (c *Config) BaseURL() string {
	if c.APIURL != "" {
		return c.APIURL
	}
	return Environments[c.Environment]
}

// Timeout returns the request timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIURL == "" {
		if _, ok := Environments[c.Environment]; !ok {
			return fmt.Errorf("invalid environment: %s", c.Environment)
		}
	} else if u, err := url.Parse(c.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_url: %s", c.APIURL)
	}

	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid timeout_seconds: %d", c.TimeoutSeconds)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("invalid max_retries: %d", c.MaxRetries)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rate_limit: %v", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("invalid rate_burst: %d", c.RateBurst)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	token := ""
	if c.AuthToken != "" {
		token = "(redacted)"
	}
	auditURL := ""
	if c.AuditDatabaseURL != "" {
		auditURL = redactURL(c.AuditDatabaseURL)
	}

	return []Attribute{
		{Name: "environment", Value: c.Environment, Source: c.Source("environment")},
		{Name: "api_url", Value: c.BaseURL(), Source: c.Source("api_url")},
		{Name: "auth_token", Value: token, Source: c.Source("auth_token")},
		{Name: "timeout_seconds", Value: strconv.Itoa(c.TimeoutSeconds), Source: c.Source("timeout_seconds")},
		{Name: "max_retries", Value: strconv.Itoa(c.MaxRetries), Source: c.Source("max_retries")},
		{Name: "rate_limit", Value: strconv.FormatFloat(c.RateLimit, 'f', -1, 64), Source: c.Source("rate_limit")},
		{Name: "rate_burst", Value: strconv.Itoa(c.RateBurst), Source: c.Source("rate_burst")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
		{Name: "audit_database_url", Value: auditURL, Source: c.Source("audit_database_url")},
	}
}

// redactURL hides the password of a connection URL
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(redacted)"
	}
	return u.Redacted()
}
