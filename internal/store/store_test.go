// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"atelier/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching local development.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "atelier")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "atelier")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Reset goose global state so repeated calls stay safe.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanProjects removes test projects by slug prefix. Call in t.Cleanup().
func cleanProjects(t *testing.T, db *sql.DB, slugPrefix string) {
	t.Helper()
	db.Exec("DELETE FROM projects WHERE slug LIKE $1", slugPrefix+"%")
}

// cleanArchives removes test archive entries by slug prefix. Call in t.Cleanup().
func cleanArchives(t *testing.T, db *sql.DB, slugPrefix string) {
	t.Helper()
	db.Exec("DELETE FROM archive_projects WHERE slug LIKE $1", slugPrefix+"%")
}

// cleanPosts removes test posts by slug prefix. Call in t.Cleanup().
func cleanPosts(t *testing.T, db *sql.DB, slugPrefix string) {
	t.Helper()
	db.Exec("DELETE FROM posts WHERE slug LIKE $1", slugPrefix+"%")
}

// cleanUsers removes test users by email. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// cleanIntake removes test inquiry and feedback rows by email. Call in t.Cleanup().
func cleanIntake(t *testing.T, db *sql.DB, email string) {
	t.Helper()
	db.Exec("DELETE FROM inquiries WHERE email = $1", email)
	db.Exec("DELETE FROM feedback WHERE email = $1", email)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
