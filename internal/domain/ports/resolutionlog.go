package ports

import (
	"context"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

// ResolutionLog persists the diagnostic trail of resolutions.
type ResolutionLog interface {
	// LogResolution stores one entry.
	LogResolution(ctx context.Context, entry entities.ResolutionEntry) error

	// FindResolutions returns the newest entries for a target.
	FindResolutions(ctx context.Context, target string, limit int) ([]entities.ResolutionEntry, error)
}
