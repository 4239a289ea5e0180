package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
)

// Chain tries each archive in order and returns the first hit.
type Chain []ports.Archive

// NewChain drops nil archives.
func NewChain(archives ...ports.Archive) Chain {
	c := make(Chain, 0, len(archives))
	for _, a := range archives {
		if a != nil {
			c = append(c, a)
		}
	}
	return c
}

// Lookup returns the first successful lookup. When every archive misses the
// error wraps ports.ErrNotFound; other failures are joined.
func (c Chain) Lookup(ctx context.Context, ref entities.ResourceRef) (entities.Handle, error) {
	var errs []error
	for _, a := range c {
		h, err := a.Lookup(ctx, ref)
		if err == nil {
			return h, nil
		}
		if !errors.Is(err, ports.ErrNotFound) {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return entities.Handle{}, fmt.Errorf("looking up %s: %w", ref, errors.Join(errs...))
	}
	return entities.Handle{}, fmt.Errorf("%s: %w", ref, ports.ErrNotFound)
}
