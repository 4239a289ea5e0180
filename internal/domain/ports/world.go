package ports

import "github.com/ersonp/climate-materials/internal/domain/entities"

// WorldState is a point-in-time view of the live world.
type WorldState interface {
	// ClimateIndex returns the climate index at the player's position.
	ClimateIndex() int

	// RegionName returns the current region's name, or "".
	RegionName() string

	// Season returns the calendar season.
	Season() entities.CalendarSeason
}
