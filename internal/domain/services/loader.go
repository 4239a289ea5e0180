package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
)

// PlaceholderPolicy decides what fills the slot of a ref that failed to load.
type PlaceholderPolicy string

const (
	// PolicyOmit drops failed slots, shortening the output.
	PolicyOmit PlaceholderPolicy = "omit"
	// PolicyPlaceholder keeps the slot with a placeholder handle.
	PolicyPlaceholder PlaceholderPolicy = "placeholder"
)

// ParsePlaceholderPolicy parses a policy name. The empty string means omit.
func ParsePlaceholderPolicy(s string) (PlaceholderPolicy, error) {
	switch PlaceholderPolicy(s) {
	case "", PolicyOmit:
		return PolicyOmit, nil
	case PolicyPlaceholder:
		return PolicyPlaceholder, nil
	default:
		return "", fmt.Errorf("unknown placeholder policy %q", s)
	}
}

// LoaderOptions configures LoaderService.
type LoaderOptions struct {
	Policy              PlaceholderPolicy
	PlaceholderLocation string
	// Concurrency bounds parallel lookups. Values below 2 load sequentially.
	Concurrency int
}

// LoadResult holds the loaded handles in ref order and every failure.
type LoadResult struct {
	Handles  []entities.Handle
	Failures []*entities.ResourceLoadError
}

// LoaderService turns resolved refs into archive handles, best effort.
type LoaderService struct {
	archive ports.Archive
	opts    LoaderOptions
	logger  *slog.Logger
}

// NewLoaderService creates a new loader service.
func NewLoaderService(archive ports.Archive, opts LoaderOptions, logger *slog.Logger) *LoaderService {
	if opts.Policy == "" {
		opts.Policy = PolicyOmit
	}
	return &LoaderService{
		archive: archive,
		opts:    opts,
		logger:  logger,
	}
}

// Load looks up each ref once. A failed lookup never aborts the batch.
func (s *LoaderService) Load(ctx context.Context, refs []entities.ResourceRef) LoadResult {
	handles := make([]entities.Handle, len(refs))
	errs := make([]error, len(refs))

	if s.opts.Concurrency > 1 && len(refs) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.opts.Concurrency)
		for i, ref := range refs {
			g.Go(func() error {
				handles[i], errs[i] = s.archive.Lookup(gctx, ref)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, ref := range refs {
			handles[i], errs[i] = s.archive.Lookup(ctx, ref)
		}
	}

	result := LoadResult{Handles: make([]entities.Handle, 0, len(refs))}
	for i, ref := range refs {
		if errs[i] == nil {
			result.Handles = append(result.Handles, handles[i])
			continue
		}

		loadErr := &entities.ResourceLoadError{Index: i, Ref: ref, Err: errs[i]}
		result.Failures = append(result.Failures, loadErr)
		s.logger.Warn("resource load failed", "ref", ref.String(), "slot", i, "error", errs[i])

		if s.opts.Policy == PolicyPlaceholder {
			result.Handles = append(result.Handles, entities.Handle{
				Ref:         ref,
				Location:    s.opts.PlaceholderLocation,
				Placeholder: true,
			})
		}
	}

	return result
}
