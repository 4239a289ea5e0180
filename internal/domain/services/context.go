package services

import (
	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
)

// BuildContext snapshots the world into a resolution context.
func BuildContext(world ports.WorldState, features entities.FeatureState) entities.ResolutionContext {
	category := entities.CategoryFromClimateIndex(world.ClimateIndex())
	return entities.ResolutionContext{
		Category:   category,
		RegionName: world.RegionName(),
		IsWinter:   IsWinterEffective(world.Season(), category, features.Enabled(entities.FeatureSnowless)),
		Features:   features,
	}
}
