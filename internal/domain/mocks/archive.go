// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
)

// Archive is a mock implementation of ports.Archive.
// Refs present in Handles resolve; everything else is not found unless
// listed in Errs.
type Archive struct {
	Handles map[entities.ResourceRef]entities.Handle
	Errs    map[entities.ResourceRef]error

	mu sync.Mutex
	// Call tracking
	LookupCalls []entities.ResourceRef
}

// NewArchive returns an Archive resolving each ref to "archive/record/frame".
func NewArchive(refs ...entities.ResourceRef) *Archive {
	a := &Archive{Handles: make(map[entities.ResourceRef]entities.Handle, len(refs))}
	for _, ref := range refs {
		a.Handles[ref] = entities.Handle{Ref: ref, Location: ref.String()}
	}
	return a
}

// Lookup returns the configured handle or error.
func (m *Archive) Lookup(ctx context.Context, ref entities.ResourceRef) (entities.Handle, error) {
	m.mu.Lock()
	m.LookupCalls = append(m.LookupCalls, ref)
	m.mu.Unlock()

	if err, ok := m.Errs[ref]; ok {
		return entities.Handle{}, err
	}
	if h, ok := m.Handles[ref]; ok {
		return h, nil
	}
	return entities.Handle{}, fmt.Errorf("%s: %w", ref, ports.ErrNotFound)
}

// CallCount returns the number of Lookup calls.
func (m *Archive) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.LookupCalls)
}
