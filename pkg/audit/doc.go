// Package audit records on-behalf-of activity of Currency Cloud clients.
//
// Every time a client starts or stops acting on behalf of another account,
// or refuses to, an OnBehalfOfEvent is produced. Events are written as
// RFC5424 syslog lines and, when an audit database is configured, persisted
// to its messages table.
//
// # Usage
//
//	store, err := audit.OpenStore(os.Getenv("CURRENCYCLOUD_AUDIT_DATABASE_URL"))
//	auditor := audit.New(audit.NewLogger(os.Stderr), store, nil)
//
//	client, err := currencycloud.New(url, token, currencycloud.WithAuditor(auditor))
//
// The messages table is created by Migrate, which applies the embedded
// migrations.
package audit
