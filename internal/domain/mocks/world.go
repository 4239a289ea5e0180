package mocks

import "github.com/ersonp/climate-materials/internal/domain/entities"

// WorldState is a fixed ports.WorldState snapshot.
type WorldState struct {
	Climate  int
	Region   string
	Calendar entities.CalendarSeason
}

// ClimateIndex returns Climate.
func (w WorldState) ClimateIndex() int { return w.Climate }

// RegionName returns Region.
func (w WorldState) RegionName() string { return w.Region }

// Season returns Calendar.
func (w WorldState) Season() entities.CalendarSeason { return w.Calendar }
