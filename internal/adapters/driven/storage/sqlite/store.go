package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/geodist/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CentroidStore = (*Store)(nil)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "centroids.db"

// Store is a SQLite-backed centroid store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.geodist/data/centroids.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".geodist", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets readers proceed while an import is writing
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// migrate runs all pending up migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_centroids.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveCentroid stores or replaces a centroid.
func (s *Store) SaveCentroid(ctx context.Context, c domain.Centroid) error {
	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO centroids (id, dimensions, vector, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			dimensions = excluded.dimensions,
			vector = excluded.vector,
			updated_at = excluded.updated_at
	`, string(c.ID), len(c.Vector), float32SliceToBytes(c.Vector), updatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving centroid %s: %w", c.ID, err)
	}
	return nil
}

// GetCentroid retrieves a centroid by ID.
func (s *Store) GetCentroid(ctx context.Context, id domain.CentroidID) (*domain.Centroid, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, vector, updated_at FROM centroids WHERE id = ?", string(id))

	var (
		rawID     string
		blob      []byte
		updatedAt int64
	)
	if err := row.Scan(&rawID, &blob, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting centroid %s: %w", id, err)
	}

	return &domain.Centroid{
		ID:        domain.CentroidID(rawID),
		Vector:    bytesToFloat32Slice(blob),
		UpdatedAt: time.Unix(0, updatedAt),
	}, nil
}

// DeleteCentroid removes a centroid.
func (s *Store) DeleteCentroid(ctx context.Context, id domain.CentroidID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM centroids WHERE id = ?", string(id))
	if err != nil {
		return fmt.Errorf("deleting centroid %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListCentroids returns every centroid ID in ascending order.
func (s *Store) ListCentroids(ctx context.Context) ([]domain.CentroidID, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM centroids ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying centroids: %w", err)
	}
	defer rows.Close()

	var ids []domain.CentroidID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning centroid: %w", err)
		}
		ids = append(ids, domain.CentroidID(id))
	}
	return ids, rows.Err()
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
