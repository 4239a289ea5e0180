package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
)

// Lookup finds the location registered for a ref.
func (r *Repository) Lookup(ctx context.Context, ref entities.ResourceRef) (entities.Handle, error) {
	query := `
		SELECT location
		FROM resources
		WHERE archive = ? AND record = ? AND frame = ?
	`
	row := r.db.QueryRowContext(ctx, query, ref.Archive, ref.Record, ref.Frame)

	var location string
	err := row.Scan(&location)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Handle{}, fmt.Errorf("%s: %w", ref, ports.ErrNotFound)
	}
	if err != nil {
		return entities.Handle{}, fmt.Errorf("scanning resource: %w", err)
	}
	return entities.Handle{Ref: ref, Location: location}, nil
}

// Register saves or replaces handles in a single transaction.
func (r *Repository) Register(ctx context.Context, handles []entities.Handle) error {
	if len(handles) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	query := `
		INSERT INTO resources (archive, record, frame, location, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(archive, record, frame) DO UPDATE SET
			location = excluded.location,
			updated_at = excluded.updated_at
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := timeNow()
	for _, h := range handles {
		if _, err := stmt.ExecContext(ctx, h.Ref.Archive, h.Ref.Record, h.Ref.Frame, h.Location, now); err != nil {
			return fmt.Errorf("saving resource %s: %w", h.Ref, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing resources: %w", err)
	}
	return nil
}

// List returns handles ordered by ref. A negative archive lists every
// archive and a non-positive limit returns everything.
func (r *Repository) List(ctx context.Context, archive int, limit int) ([]entities.Handle, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `
		SELECT archive, record, frame, location
		FROM resources
		WHERE ? < 0 OR archive = ?
		ORDER BY archive, record, frame
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, archive, archive, limit)
	if err != nil {
		return nil, fmt.Errorf("querying resources: %w", err)
	}
	defer rows.Close()

	var handles []entities.Handle
	for rows.Next() {
		var h entities.Handle
		if err := rows.Scan(&h.Ref.Archive, &h.Ref.Record, &h.Ref.Frame, &h.Location); err != nil {
			return nil, fmt.Errorf("scanning resource: %w", err)
		}
		handles = append(handles, h)
	}
	return handles, rows.Err()
}

// CountResources returns the number of registered handles.
func (r *Repository) CountResources(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting resources: %w", err)
	}
	return count, nil
}
