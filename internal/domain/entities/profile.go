package entities

import (
	"fmt"
	"sort"
)

// Profile parameterizes the resolution engine for one family of targets.
type Profile struct {
	Name  string
	Graph FallbackGraph
	Rules []RegionRule
	// GatedDirect lists categories whose own entry is only consulted while
	// the mapped feature is enabled. Otherwise resolution starts at the
	// category's fallback.
	GatedDirect map[Category]FeatureFlag
}

// Built-in profile names.
const (
	ProfileClimate = "climate"
	ProfileRocks   = "rocks"
	ProfileTerrain = "terrain"
)

// DefaultProfileName is used when no profile is configured.
const DefaultProfileName = ProfileClimate

// ClimateProfile is the default engine: static climate fallbacks plus the
// mountain region override.
func ClimateProfile() Profile {
	return Profile{
		Name:  ProfileClimate,
		Graph: DefaultFallbackGraph(),
		Rules: []RegionRule{DefaultMountainRule()},
	}
}

// RocksProfile routes mountain woods through mountain and ocean through
// haunted woodlands.
func RocksProfile() Profile {
	return Profile{
		Name: ProfileRocks,
		Graph: DefaultFallbackGraph().With(map[Category]Category{
			CategoryMountainWoods: CategoryMountain,
			CategoryOcean:         CategoryHauntedWoodlands,
		}),
		Rules: []RegionRule{DefaultMountainRule()},
	}
}

// TerrainProfile only honours the minor climates' own entries while the
// biome pack is installed.
func TerrainProfile() Profile {
	gated := map[Category]FeatureFlag{}
	for _, c := range []Category{
		CategoryOcean,
		CategoryDesert2,
		CategorySubtropical,
		CategoryMountainWoods,
		CategoryHauntedWoodlands,
	} {
		gated[c] = FeatureBiomes
	}
	return Profile{
		Name: ProfileTerrain,
		Graph: DefaultFallbackGraph().With(map[Category]Category{
			CategoryOcean:         CategoryDesert,
			CategoryMountainWoods: CategoryMountain,
		}),
		GatedDirect: gated,
	}
}

var builtinProfiles = map[string]func() Profile{
	ProfileClimate: ClimateProfile,
	ProfileRocks:   RocksProfile,
	ProfileTerrain: TerrainProfile,
}

// ProfileByName returns a built-in profile.
func ProfileByName(name string) (Profile, error) {
	if name == "" {
		name = DefaultProfileName
	}
	build, ok := builtinProfiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (available: %v)", name, ProfileNames())
	}
	return build(), nil
}

// ProfileNames returns the built-in profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the graph and that every rule names known categories.
func (p Profile) Validate() error {
	if err := p.Graph.Validate(); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	for _, rule := range p.Rules {
		for _, c := range []Category{rule.Category, rule.Primary.Entry} {
			if !c.IsKnown() {
				return fmt.Errorf("profile %s: region rule references unknown category %q", p.Name, c)
			}
		}
		if rule.Secondary.Entry != "" && !rule.Secondary.Entry.IsKnown() {
			return fmt.Errorf("profile %s: region rule references unknown category %q", p.Name, rule.Secondary.Entry)
		}
	}
	return nil
}
