// Command ccctl is a command line client for the Currency Cloud API.
//
// It reads its settings from $CURRENCYCLOUD_CONFIG_PATH/currencycloud.yml
// and CURRENCYCLOUD_* environment variables, see `ccctl configuration show`.
//
// # Quick Start
//
//	export CURRENCYCLOUD_AUTH_TOKEN=4df5b3e5882a412f148dcd08fa4e5b73
//
//	# Show the account of the token
//	ccctl account current
//
//	# Find the beneficiaries of a sub-account
//	ccctl beneficiary find --currency GBP --on-behalf-of c6ece846-6df1-461d-acaa-b42a6aa74045
//
// # Local Sandbox
//
// The sandbox serves the same endpoints from memory:
//
//	ccctl sandbox --auth-token 4df5b3e5882a412f148dcd08fa4e5b73 --seed &
//	export CURRENCYCLOUD_API_URL=http://localhost:8000
//	ccctl wait
//	ccctl balance find
//
// # Audit
//
// With CURRENCYCLOUD_AUDIT_ENABLED=true every on-behalf-of scope is written
// to stderr as an RFC5424 line, and to PostgreSQL when
// CURRENCYCLOUD_AUDIT_DATABASE_URL is set. Create the table first:
//
//	ccctl audit migrate
package main
