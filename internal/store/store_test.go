// Integration tests for the stores run against the docker-compose Postgres
// and skip themselves when it is not running.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"lightshop/internal/database"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB returns a migrated connection to the test database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		envOr("POSTGRES_USER", "lightshop"),
		envOr("POSTGRES_PASSWORD", "changeme"),
		envOr("POSTGRES_HOST", "localhost"),
		envOr("POSTGRES_PORT", "5432"),
		envOr("POSTGRES_DB", "lightshop"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, dsn)
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// purge runs a cleanup statement and reports failures without failing the
// test, so leftovers are visible in -v output.
func purge(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Logf("cleanup %q: %v", query, err)
	}
}

// countRows counts every row of table.
func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func cleanProducts(t *testing.T, db *sql.DB, ids ...int64) {
	for _, id := range ids {
		purge(t, db, "DELETE FROM products WHERE id = $1", id)
	}
}

func cleanMediaFolder(t *testing.T, db *sql.DB, folderID string) {
	purge(t, db, "DELETE FROM media_images WHERE folder_id = $1", folderID)
}

func cleanTelegramUser(t *testing.T, db *sql.DB, userID int64) {
	purge(t, db, "DELETE FROM telegram_messages WHERE telegram_user_id = $1", userID)
}
