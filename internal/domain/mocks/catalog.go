package mocks

import (
	"context"
	"fmt"
	"sort"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
)

// ArchiveCatalog is a mock implementation of ports.ArchiveCatalog.
type ArchiveCatalog struct {
	Handles     map[entities.ResourceRef]entities.Handle
	RegisterErr error
	LookupErr   error

	// Call tracking
	RegisterCallCount int
	LookupCallCount   int
	Closed            bool
}

// Lookup returns a registered handle.
func (m *ArchiveCatalog) Lookup(ctx context.Context, ref entities.ResourceRef) (entities.Handle, error) {
	m.LookupCallCount++
	if m.LookupErr != nil {
		return entities.Handle{}, m.LookupErr
	}
	if h, ok := m.Handles[ref]; ok {
		return h, nil
	}
	return entities.Handle{}, fmt.Errorf("%s: %w", ref, ports.ErrNotFound)
}

// Register stores handles unless RegisterErr is set.
func (m *ArchiveCatalog) Register(ctx context.Context, handles []entities.Handle) error {
	m.RegisterCallCount++
	if m.RegisterErr != nil {
		return m.RegisterErr
	}
	if m.Handles == nil {
		m.Handles = make(map[entities.ResourceRef]entities.Handle)
	}
	for _, h := range handles {
		m.Handles[h.Ref] = h
	}
	return nil
}

// List returns handles ordered by ref.
func (m *ArchiveCatalog) List(ctx context.Context, archive int, limit int) ([]entities.Handle, error) {
	var out []entities.Handle
	for _, h := range m.Handles {
		if archive >= 0 && h.Ref.Archive != archive {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Ref, out[j].Ref
		if a.Archive != b.Archive {
			return a.Archive < b.Archive
		}
		if a.Record != b.Record {
			return a.Record < b.Record
		}
		return a.Frame < b.Frame
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close marks the catalog closed.
func (m *ArchiveCatalog) Close() error {
	m.Closed = true
	return nil
}
