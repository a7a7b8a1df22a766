package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrate brings databases created by older builds up to the current schema.
// Columns are only ever added, never dropped.
func migrate(db *sql.DB) error {
	columns := []struct {
		table, column, definition string
	}{
		{"review_sessions", "updated_at", "TEXT NOT NULL DEFAULT ''"},
		{"review_sessions", "version", "INTEGER NOT NULL DEFAULT 1"},
	}
	for _, c := range columns {
		if err := addColumnIfNotExists(db, c.table, c.column, c.definition); err != nil {
			return err
		}
	}

	// sessions written before updated_at existed fall back to their start time
	_, err := db.Exec("UPDATE review_sessions SET updated_at = started_at WHERE updated_at = ''")
	return err
}

func addColumnIfNotExists(db *sql.DB, table, column, definition string) error {
	exists, err := columnExists(db, table, column)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)); err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return nil
}

func columnExists(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if strings.EqualFold(name, column) {
			return true, nil
		}
	}
	return false, rows.Err()
}
