// Package history keeps a local log of tool runs in a SQLite database so
// past checks against a URL can be reviewed later.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const DefaultDBName = "seotools.db"

type DB struct {
	*sql.DB
	path string
}

// Run is one recorded tool invocation.
type Run struct {
	RunID     int64
	CreatedAt time.Time
	Tool      string
	Target    string
	Status    string
	Errors    int
	Warnings  int
	Summary   string
}

// Run statuses.
const (
	StatusOK     = "ok"
	StatusIssues = "issues"
	StatusFailed = "failed"
)

// OpenAt opens or creates the database at the given path.
func OpenAt(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: dbPath,
	}

	if err := db.ensureSchemaExists(); err != nil {
		_ = db.Close() // Close error less important than schema error
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Open opens or creates the SQLite database next to the binary.
func Open() (*DB, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	return OpenAt(filepath.Join(filepath.Dir(execPath), DefaultDBName))
}

// ensureSchemaExists checks if the schema exists and initializes it if not
func (db *DB) ensureSchemaExists() error {
	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&tableName)

	if err == sql.ErrNoRows {
		return db.InitSchema()
	}

	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}

	return nil
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// InitSchema initializes the database schema
func (db *DB) InitSchema() error {
	_, err := db.Exec(schema)
	return err
}

// RecordRun inserts a run row and returns its ID.
func (db *DB) RecordRun(tool, target, status string, errors, warnings int, summary string) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (tool, target, status, error_count, warning_count, summary)
		VALUES (?, ?, ?, ?, ?, ?)
	`, tool, target, status, errors, warnings, summary)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// ListRuns retrieves runs ordered by most recent first. Tool and targetPattern
// filter the list when non-empty; limit caps the result when positive.
func (db *DB) ListRuns(tool, targetPattern string, limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at, tool, target, status, error_count, warning_count, summary
		FROM runs
	`

	var conditions []string
	var args []interface{}

	if tool != "" {
		conditions = append(conditions, "tool = ?")
		args = append(args, tool)
	}

	if targetPattern != "" {
		conditions = append(conditions, "target LIKE ?")
		args = append(args, "%"+targetPattern+"%")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, run_id DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.Tool, &r.Target, &r.Status,
			&r.Errors, &r.Warnings, &r.Summary); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// GetRunByID retrieves a single run.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	var r Run
	err := db.QueryRow(`
		SELECT run_id, created_at, tool, target, status, error_count, warning_count, summary
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&r.RunID, &r.CreatedAt, &r.Tool, &r.Target, &r.Status,
		&r.Errors, &r.Warnings, &r.Summary)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}
