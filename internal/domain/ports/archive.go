// Package ports defines interfaces for external service communication.
package ports

import (
	"context"
	"errors"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

// ErrNotFound is returned by an Archive that has no resource for a ref.
var ErrNotFound = errors.New("resource not found")

// Archive turns resource refs into concrete handles.
type Archive interface {
	// Lookup returns the handle for ref, or an error wrapping ErrNotFound.
	Lookup(ctx context.Context, ref entities.ResourceRef) (entities.Handle, error)
}

// ArchiveCatalog is an Archive that can also be populated and listed.
type ArchiveCatalog interface {
	Archive

	// Register stores or replaces the handles for their refs.
	Register(ctx context.Context, handles []entities.Handle) error

	// List returns registered handles, optionally restricted to one archive.
	// A negative archive lists everything.
	List(ctx context.Context, archive int, limit int) ([]entities.Handle, error)

	// Close releases the catalog's resources.
	Close() error
}
