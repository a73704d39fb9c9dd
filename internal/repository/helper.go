package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// timestampLayout is fixed width so timestamps stored as TEXT sort chronologically.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

const dateLayout = "2006-01-02"

// querier is the subset of *sql.DB and *sql.Tx used by the repositories.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// Note: mirrors validation.ParseTime; both are kept local to avoid cross-layer imports.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(dateLayout, str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// FormatTimestamp renders t in the stored timestamp layout (UTC).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// FormatDate renders the calendar date of t without converting its location.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// isUniqueViolation reports whether err is a SQLite UNIQUE or PRIMARY KEY constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// checkAffected maps zero affected rows to notFound.
func checkAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
