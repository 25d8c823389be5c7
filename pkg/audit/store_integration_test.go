package audit

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a PostgreSQL container for the test and returns its URL.
func startPostgres(t *testing.T) string {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TEST=1 to run.")
	}

	ctx := context.Background()
	pg, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("audit_test"),
		tcpostgres.WithUsername("audit"),
		tcpostgres.WithPassword("audit"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	dbURL, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	return dbURL
}

func TestStoreAgainstPostgres(t *testing.T) {
	dbURL := startPostgres(t)

	if err := Migrate(dbURL); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	// a second run has nothing to do
	if err := Migrate(dbURL); err != nil {
		t.Fatalf("Migrate() twice error = %v", err)
	}
	if version, dirty, err := Version(dbURL); err != nil || version != 1 || dirty {
		t.Fatalf("Version() = %d, %v, %v; want 1, false, nil", version, dirty, err)
	}

	store, err := OpenStore(dbURL)
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	events := []Event{
		OnBehalfOfEvent{ActingFor: contactID, Operation: OperationEnter, APIURL: "http://sandbox"},
		OnBehalfOfEvent{ActingFor: contactID, Operation: OperationExit, APIURL: "http://sandbox", Err: errors.New("declined")},
	}
	for _, event := range events {
		if err := store.Save(event); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	messages, err := store.Messages(10)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Messages() returned %d messages, want 2", len(messages))
	}
	for _, m := range messages {
		if m.Msgid != "on-behalf-of" {
			t.Errorf("Msgid = %q, want on-behalf-of", m.Msgid)
		}
		if m.Facility != FacilityAuthPriv {
			t.Errorf("Facility = %d, want %d", m.Facility, FacilityAuthPriv)
		}
		if _, ok := m.Sdata[SDIDSubject]; !ok {
			t.Errorf("Sdata = %v, want %s", m.Sdata, SDIDSubject)
		}
	}

	if err := Rollback(dbURL, 1); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	if version, _, err := Version(dbURL); err != nil || version != 0 {
		t.Fatalf("Version() after rollback = %d, %v; want 0, nil", version, err)
	}
}
