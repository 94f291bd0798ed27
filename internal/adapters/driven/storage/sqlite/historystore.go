// Package sqlite provides an SQLite-backed journal of routing decisions.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/preceptor-labs/preceptor-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore records every routed query and its resolution.
type HistoryStore struct {
	db   *sql.DB
	path string
}

// NewHistoryStore creates an SQLite history store at the specified data
// directory. If dataDir is empty, defaults to ~/.preceptor/data.
func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".preceptor", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &HistoryStore{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Record appends one routing decision. A missing ID or timestamp is
// filled in.
func (s *HistoryStore) Record(ctx context.Context, entry driven.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO query_history (id, query, category, used_retrieval, confidence, answer, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Query, string(entry.Category), entry.UsedRetrieval,
		entry.Confidence, entry.Answer, entry.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *HistoryStore) Recent(ctx context.Context, n int) ([]driven.HistoryEntry, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, category, used_retrieval, confidence, answer, created_at
		FROM query_history
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []driven.HistoryEntry
	for rows.Next() {
		var entry driven.HistoryEntry
		var category string
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.Query, &category,
			&entry.UsedRetrieval, &entry.Confidence, &entry.Answer, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entry.Category = domain.QueryCategory(category)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			entry.CreatedAt = t
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *HistoryStore) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *HistoryStore) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
