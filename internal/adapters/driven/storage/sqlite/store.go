package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.folio/data/metadata.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".folio", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metadata.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
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

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// WorkStore returns a WorkStore interface backed by this store.
func (s *Store) WorkStore() driven.WorkStore {
	return &workStore{store: s}
}

// SuggestionStore returns a SuggestionStore interface backed by this store.
func (s *Store) SuggestionStore() driven.SuggestionStore {
	return &suggestionStore{store: s}
}

// ChunkStore returns a ChunkStore interface backed by this store.
func (s *Store) ChunkStore() driven.ChunkStore {
	return &chunkStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
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

	// Sort and run migrations
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
	}

	return nil
}

// ==================== Work Store ====================

// workStore implements driven.WorkStore.
type workStore struct {
	store *Store
}

var _ driven.WorkStore = (*workStore)(nil)

// Save stores or updates a work.
func (s *workStore) Save(ctx context.Context, work *domain.Work) error {
	now := time.Now().UTC()
	if work.CreatedAt.IsZero() {
		work.CreatedAt = now
	}
	work.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO works (id, title, source_uri, stem, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			source_uri = excluded.source_uri,
			stem = excluded.stem,
			updated_at = excluded.updated_at
	`, work.ID, work.Title, work.SourceURI, work.Stem, work.CreatedAt, work.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving work: %w", err)
	}
	return nil
}

// Get retrieves a work by ID.
func (s *workStore) Get(ctx context.Context, id string) (*domain.Work, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, source_uri, stem, created_at, updated_at
		FROM works WHERE id = ?
	`, id)

	work, err := scanWork(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning work: %w", err)
	}
	return work, nil
}

// List returns all works ordered by creation time.
func (s *workStore) List(ctx context.Context) ([]domain.Work, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, source_uri, stem, created_at, updated_at
		FROM works ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying works: %w", err)
	}
	defer rows.Close()

	var works []domain.Work //nolint:prealloc // size unknown from query
	for rows.Next() {
		work, err := scanWork(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning work: %w", err)
		}
		works = append(works, *work)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating works: %w", err)
	}

	return works, nil
}

// Delete removes a work.
func (s *workStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM works WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting work: %w", err)
	}
	return nil
}

func scanWork(scan func(...any) error) (*domain.Work, error) {
	var work domain.Work
	var createdAt, updatedAt sql.NullTime
	if err := scan(&work.ID, &work.Title, &work.SourceURI, &work.Stem, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if createdAt.Valid {
		work.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		work.UpdatedAt = updatedAt.Time
	}
	return &work, nil
}

// ==================== Suggestion Store ====================

// suggestionStore implements driven.SuggestionStore.
type suggestionStore struct {
	store *Store
}

var _ driven.SuggestionStore = (*suggestionStore)(nil)

// Get returns the work's current suggestion table.
func (s *suggestionStore) Get(ctx context.Context, workID string) (*domain.SuggestionTable, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT version, rows_json, generated_at, updated_at
		FROM suggestion_tables WHERE work_id = ?
	`, workID)

	table := domain.SuggestionTable{WorkID: workID}
	var rowsJSON string
	var generatedAt, updatedAt sql.NullTime
	if err := row.Scan(&table.Version, &rowsJSON, &generatedAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning suggestion table: %w", err)
	}

	if err := json.Unmarshal([]byte(rowsJSON), &table.Rows); err != nil {
		return nil, fmt.Errorf("unmarshaling rows: %w", err)
	}
	if generatedAt.Valid {
		table.GeneratedAt = generatedAt.Time
	}
	if updatedAt.Valid {
		table.UpdatedAt = updatedAt.Time
	}

	return &table, nil
}

// Save writes the table when expectedVersion matches the stored version.
func (s *suggestionStore) Save(ctx context.Context, table *domain.SuggestionTable, expectedVersion int64) (int64, error) {
	rowsJSON, err := json.Marshal(table.Rows)
	if err != nil {
		return 0, fmt.Errorf("marshalling rows: %w", err)
	}

	now := time.Now().UTC()
	generatedAt := table.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = now
	}
	newVersion := expectedVersion + 1

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var current int64
	row := tx.QueryRowContext(ctx, "SELECT version FROM suggestion_tables WHERE work_id = ?", table.WorkID)
	switch err := row.Scan(&current); {
	case errors.Is(err, sql.ErrNoRows):
		if expectedVersion != 0 {
			return 0, domain.ErrVersionConflict
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO suggestion_tables (work_id, version, rows_json, generated_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, table.WorkID, newVersion, string(rowsJSON), generatedAt, now)
		if err != nil {
			return 0, fmt.Errorf("inserting suggestion table: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("reading current version: %w", err)
	default:
		if current != expectedVersion {
			return 0, domain.ErrVersionConflict
		}
		_, err := tx.ExecContext(ctx, `
			UPDATE suggestion_tables
			SET version = ?, rows_json = ?, generated_at = ?, updated_at = ?
			WHERE work_id = ? AND version = ?
		`, newVersion, string(rowsJSON), generatedAt, now, table.WorkID, expectedVersion)
		if err != nil {
			return 0, fmt.Errorf("updating suggestion table: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing suggestion table: %w", err)
	}

	return newVersion, nil
}

// Delete removes the work's suggestion table.
func (s *suggestionStore) Delete(ctx context.Context, workID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM suggestion_tables WHERE work_id = ?", workID)
	if err != nil {
		return fmt.Errorf("deleting suggestion table: %w", err)
	}
	return nil
}

// ==================== Chunk Store ====================

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// Replace atomically replaces the work's entire chunk set.
func (s *chunkStore) Replace(ctx context.Context, workID string, chunks []domain.Chunk) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE work_id = ?", workID); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	for _, chunk := range chunks {
		pathJSON, err := json.Marshal(chunk.HeadingPath)
		if err != nil {
			return fmt.Errorf("marshalling heading path: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO chunks (id, work_id, position, content, heading_path, start_line, end_line)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, chunk.ID, workID, chunk.Position, chunk.Content, string(pathJSON), chunk.StartLine, chunk.EndLine)
		if err != nil {
			return fmt.Errorf("inserting chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing chunks: %w", err)
	}
	return nil
}

// Get returns the work's chunks ordered by position.
func (s *chunkStore) Get(ctx context.Context, workID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, work_id, position, content, heading_path, start_line, end_line
		FROM chunks WHERE work_id = ? ORDER BY position
	`, workID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var pathJSON string
		if err := rows.Scan(&chunk.ID, &chunk.WorkID, &chunk.Position, &chunk.Content,
			&pathJSON, &chunk.StartLine, &chunk.EndLine); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		if err := json.Unmarshal([]byte(pathJSON), &chunk.HeadingPath); err != nil {
			return nil, fmt.Errorf("unmarshaling heading path: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// Delete removes all chunks for a work.
func (s *chunkStore) Delete(ctx context.Context, workID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM chunks WHERE work_id = ?", workID)
	if err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	return nil
}
