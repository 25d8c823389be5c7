// Package config provides configuration management for the Currency Cloud client.
//
// This package handles loading and validating client configuration
// from environment variables and configuration files.
//
// # Configuration Sources
//
// Configuration is loaded from, in increasing precedence:
//
//   - Built-in defaults
//   - $CURRENCYCLOUD_CONFIG_PATH/currencycloud.yml (default /etc/currencycloud)
//   - Environment variables
//
// # Key Configuration Options
//
//   - CURRENCYCLOUD_ENVIRONMENT: demonstration or production
//   - CURRENCYCLOUD_API_URL: Base URL overriding the environment
//   - CURRENCYCLOUD_AUTH_TOKEN: Auth token sent as X-Auth-Token
//   - CURRENCYCLOUD_LOG_LEVEL: Logging verbosity
//   - CURRENCYCLOUD_AUDIT_DATABASE_URL: Audit database connection
package config
