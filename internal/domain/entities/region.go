package entities

import (
	"sort"
	"strings"
)

// RegionSet is a set of named regions matched case-insensitively.
type RegionSet []string

// Contains reports whether name is in the set.
func (s RegionSet) Contains(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, r := range s {
		if strings.EqualFold(strings.TrimSpace(r), name) {
			return true
		}
	}
	return false
}

// RegionTier binds a set of regions to the table entry they select.
type RegionTier struct {
	Entry   Category  `yaml:"entry"`
	Regions RegionSet `yaml:"regions"`
}

// GatedRegionTier is a RegionTier only eligible while Feature is enabled.
// Without the feature its regions reuse the primary tier's entry.
type GatedRegionTier struct {
	RegionTier `yaml:",inline"`
	Feature    FeatureFlag `yaml:"feature"`
}

// RegionRule overrides category resolution for specific named regions.
type RegionRule struct {
	Category  Category        `yaml:"category"`
	Primary   RegionTier      `yaml:"primary"`
	Secondary GatedRegionTier `yaml:"secondary"`
}

// Named regions used by the default mountain rule.
var (
	BalfieraRegions   = RegionSet{"Isle of Balfiera"}
	HammerfellRegions = RegionSet{"Alik'r Desert", "Dragontail Mountains", "Dak'fron", "Lainlyn", "Tigonus", "Ephesus", "Santaki"}
)

// DefaultMountainRule returns the mountain region override: Balfiera always,
// Hammerfell only with the biome pack, otherwise Hammerfell reuses Balfiera.
func DefaultMountainRule() RegionRule {
	return RegionRule{
		Category: CategoryMountain,
		Primary: RegionTier{
			Entry:   CategoryMountainBalfiera,
			Regions: BalfieraRegions,
		},
		Secondary: GatedRegionTier{
			RegionTier: RegionTier{
				Entry:   CategoryMountainHammerfell,
				Regions: HammerfellRegions,
			},
			Feature: FeatureBiomes,
		},
	}
}

// RegionTable holds the entries of a region-keyed document. Keys are folded
// with RegionKey so lookups ignore case and surrounding space.
type RegionTable map[string]SeasonalSet

// RegionKey folds a region name for RegionTable lookups.
func RegionKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Entry returns the entry authored for a region.
func (t RegionTable) Entry(name string) (SeasonalSet, bool) {
	key := RegionKey(name)
	if key == "" {
		return SeasonalSet{}, false
	}
	set, ok := t[key]
	return set, ok
}

// Names returns the folded region names in sorted order.
func (t RegionTable) Names() []string {
	names := make([]string, 0, len(t))
	for k := range t {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
