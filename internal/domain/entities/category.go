package entities

import "strings"

// Category is the environmental classification driving resource selection.
// Values are the keys used in authored configuration documents.
type Category string

// Climate categories.
const (
	CategoryOcean            Category = "ocean"
	CategoryDesert           Category = "desert"
	CategoryDesert2          Category = "desert2"
	CategoryMountain         Category = "mountain"
	CategoryRainforest       Category = "rainforest"
	CategorySwamp            Category = "swamp"
	CategorySubtropical      Category = "subtropical"
	CategoryMountainWoods    Category = "mountainWoods"
	CategoryWoodlands        Category = "woodlands"
	CategoryHauntedWoodlands Category = "hauntedWoodlands"
)

// Region variants of the mountain category.
const (
	CategoryMountainBalfiera   Category = "mountainBalfiera"
	CategoryMountainHammerfell Category = "mountainHammerfell"
)

// ClimateCategories lists the climate categories in climate index order.
var ClimateCategories = []Category{
	CategoryOcean,
	CategoryDesert,
	CategoryDesert2,
	CategoryMountain,
	CategoryRainforest,
	CategorySwamp,
	CategorySubtropical,
	CategoryMountainWoods,
	CategoryWoodlands,
	CategoryHauntedWoodlands,
}

// RegionCategories lists the named per-region variants.
var RegionCategories = []Category{
	CategoryMountainBalfiera,
	CategoryMountainHammerfell,
}

// AllCategories returns every category a configuration table carries.
func AllCategories() []Category {
	all := make([]Category, 0, len(ClimateCategories)+len(RegionCategories))
	all = append(all, ClimateCategories...)
	all = append(all, RegionCategories...)
	return all
}

// IsKnown reports whether c is part of the closed category enumeration.
func (c Category) IsKnown() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range AllCategories() {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

// Climate indices as reported by the world's map data.
const (
	ClimateIndexOcean            = 223
	ClimateIndexDesert           = 224
	ClimateIndexDesert2          = 225
	ClimateIndexMountain         = 226
	ClimateIndexRainforest       = 227
	ClimateIndexSwamp            = 228
	ClimateIndexSubtropical      = 229
	ClimateIndexMountainWoods    = 230
	ClimateIndexWoodlands        = 231
	ClimateIndexHauntedWoodlands = 232
)

// CategoryFromClimateIndex maps a world climate index to its category.
// Unknown indices map to woodlands, the terminal category.
func CategoryFromClimateIndex(index int) Category {
	offset := index - ClimateIndexOcean
	if offset < 0 || offset >= len(ClimateCategories) {
		return CategoryWoodlands
	}
	return ClimateCategories[offset]
}

// ClimateIndex returns the world climate index for a climate category.
// Region variants report the index of the climate they refine.
func (c Category) ClimateIndex() int {
	switch c {
	case CategoryMountainBalfiera, CategoryMountainHammerfell:
		return ClimateIndexMountain
	}
	for i, cc := range ClimateCategories {
		if cc == c {
			return ClimateIndexOcean + i
		}
	}
	return ClimateIndexWoodlands
}
