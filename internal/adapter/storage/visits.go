package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// VisitCounter is a monotonic page-visit counter backed by SQLite, so the
// count survives restarts and concurrent increments stay serialized in the
// database rather than in application state.
type VisitCounter struct {
	db *sql.DB
}

// NewVisitCounter opens the counter database, creating it and seeding the
// counter at start on first use.
func NewVisitCounter(path string, start int64) (*VisitCounter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create visits dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open visits db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		count INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create visits table: %w", err)
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO visits (id, count) VALUES (1, ?)`, start); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed visits counter: %w", err)
	}

	return &VisitCounter{db: db}, nil
}

// Increment bumps the counter and returns the new value.
func (v *VisitCounter) Increment() (int64, error) {
	var count int64
	err := v.db.QueryRow(`UPDATE visits SET count = count + 1 WHERE id = 1 RETURNING count`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment visits: %w", err)
	}
	return count, nil
}

// Count returns the current value without incrementing.
func (v *VisitCounter) Count() (int64, error) {
	var count int64
	if err := v.db.QueryRow(`SELECT count FROM visits WHERE id = 1`).Scan(&count); err != nil {
		return 0, fmt.Errorf("read visits: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (v *VisitCounter) Close() error {
	return v.db.Close()
}
