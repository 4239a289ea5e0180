package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
	"github.com/ersonp/climate-materials/internal/domain/services"
)

// DefaultHistoryLimit is used when no limit is given.
const DefaultHistoryLimit = 20

// HistoryHandler lists past resolutions of a target.
type HistoryHandler struct {
	log ports.ResolutionLog
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(log ports.ResolutionLog) *HistoryHandler {
	return &HistoryHandler{
		log: log,
	}
}

// Handle returns the newest entries for the cleaned target name.
func (h *HistoryHandler) Handle(ctx context.Context, target string, limit int) ([]entities.ResolutionEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	entries, err := h.log.FindResolutions(ctx, services.CleanTargetName(target), limit)
	if err != nil {
		return nil, fmt.Errorf("finding resolutions: %w", err)
	}
	return entries, nil
}
