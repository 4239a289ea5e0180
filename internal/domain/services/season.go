package services

import "github.com/ersonp/climate-materials/internal/domain/entities"

// IsWinterEffective reports whether winter materials apply. Desert-like
// climates never see winter and the snowless pack also exempts rainforest
// and swamp.
func IsWinterEffective(season entities.CalendarSeason, category entities.Category, snowless bool) bool {
	if season != entities.CalendarWinter {
		return false
	}
	switch category {
	case entities.CategoryDesert, entities.CategoryDesert2, entities.CategorySubtropical:
		return false
	case entities.CategoryRainforest, entities.CategorySwamp:
		return !snowless
	}
	return true
}

// VisibleInSeason reports whether a winter-only object should be shown.
func VisibleInSeason(season entities.CalendarSeason, category entities.Category, features entities.FeatureState) bool {
	return IsWinterEffective(season, category, features.Enabled(entities.FeatureSnowless))
}
