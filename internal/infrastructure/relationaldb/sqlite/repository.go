// Package sqlite provides SQLite implementations of the archive catalog and
// the resolution log.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/climate-materials/internal/infrastructure/config"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.ArchiveCatalog and ports.ResolutionLog using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Every connection to :memory: is a separate database
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Archive catalog (where each resource ref can be loaded from)
	CREATE TABLE IF NOT EXISTS resources (
		archive INTEGER NOT NULL,
		record INTEGER NOT NULL,
		frame INTEGER NOT NULL,
		location TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (archive, record, frame)
	);

	-- Resolution history (one row per resolved target)
	CREATE TABLE IF NOT EXISTS resolutions (
		id TEXT PRIMARY KEY,
		target TEXT NOT NULL,
		profile TEXT NOT NULL,
		category TEXT NOT NULL,
		region TEXT,
		is_winter INTEGER NOT NULL DEFAULT 0,
		features TEXT,
		status TEXT NOT NULL,
		rule TEXT NOT NULL,
		source_category TEXT,
		source_season TEXT,
		refs TEXT NOT NULL,
		trail TEXT NOT NULL,
		loaded INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_resolutions_target ON resolutions(target);
	CREATE INDEX IF NOT EXISTS idx_resolutions_status ON resolutions(status);
	CREATE INDEX IF NOT EXISTS idx_resolutions_created ON resolutions(created_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
