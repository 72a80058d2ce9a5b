package testutil

import (
	"database/sql"
	"os"
	"testing"

	"github.com/classboard/classboard/internal/config"
	"github.com/classboard/classboard/internal/db"
)

// OpenTestDB connects to the test postgres instance, applies migrations and
// starts from an empty users table. Tests skip when TEST_DB_HOST is unset.
func OpenTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "classboard",
		Password: "classboard_pass",
		DBName:   "classboard_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	if _, err := conn.Exec("TRUNCATE users"); err != nil {
		t.Fatalf("truncate users: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}
