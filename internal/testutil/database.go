package testutil

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/database"
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The schema is created by running the real migrations, and the database is
// automatically closed when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := database.Migrate(db, zerolog.Nop()); err != nil {
		db.Close()
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CountRows returns the number of rows in table. Table names are not escaped,
// so only pass literals.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM "` + table + `"`).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
}
