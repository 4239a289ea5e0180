package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/services"
)

// ResolveRequest describes the world a target is resolved in. It satisfies
// ports.WorldState.
type ResolveRequest struct {
	Target   string
	Climate  int
	Region   string
	Calendar entities.CalendarSeason
}

// ClimateIndex returns the requested climate index.
func (r ResolveRequest) ClimateIndex() int { return r.Climate }

// RegionName returns the requested region.
func (r ResolveRequest) RegionName() string { return r.Region }

// Season returns the requested calendar season.
func (r ResolveRequest) Season() entities.CalendarSeason { return r.Calendar }

// ParseClimate accepts a category name or a numeric climate index.
func ParseClimate(s string) (int, error) {
	if c, ok := entities.ParseCategory(s); ok {
		if idx := c.ClimateIndex(); entities.CategoryFromClimateIndex(idx) == c {
			return idx, nil
		}
		return 0, fmt.Errorf("%s is a region variant, not a climate", c)
	}
	idx, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("unknown climate %q", s)
	}
	return idx, nil
}

// ParseCalendarSeason parses a calendar season name.
func ParseCalendarSeason(s string) (entities.CalendarSeason, error) {
	switch season := entities.CalendarSeason(s); season {
	case entities.CalendarSpring, entities.CalendarSummer, entities.CalendarFall, entities.CalendarWinter:
		return season, nil
	case "autumn":
		return entities.CalendarFall, nil
	default:
		return "", fmt.Errorf("unknown season %q (spring, summer, fall, winter)", s)
	}
}

// ResolveHandler runs the material pipeline for one target.
type ResolveHandler struct {
	service *services.MaterialService
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(service *services.MaterialService) *ResolveHandler {
	return &ResolveHandler{
		service: service,
	}
}

// Handle resolves and loads the target's materials.
func (h *ResolveHandler) Handle(ctx context.Context, req ResolveRequest) (*services.Outcome, error) {
	if req.Target == "" {
		return nil, fmt.Errorf("target is required")
	}
	return h.service.Apply(ctx, req.Target, req)
}
