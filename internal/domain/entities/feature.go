package entities

import (
	"sort"
	"strings"
)

// FeatureFlag names an optional companion content pack.
type FeatureFlag string

// Known feature flags.
const (
	// FeatureBiomes is set when the community biome pack is installed.
	FeatureBiomes FeatureFlag = "biomes"
	// FeatureSnowless is set when a snowless-winter pack is installed.
	FeatureSnowless FeatureFlag = "snowless"
)

// FeatureState is the immutable set of enabled feature flags.
type FeatureState struct {
	enabled map[FeatureFlag]struct{}
}

// NewFeatureState builds a state from the given enabled flags.
func NewFeatureState(flags ...FeatureFlag) FeatureState {
	enabled := make(map[FeatureFlag]struct{}, len(flags))
	for _, f := range flags {
		f = FeatureFlag(strings.ToLower(strings.TrimSpace(string(f))))
		if f == "" {
			continue
		}
		enabled[f] = struct{}{}
	}
	return FeatureState{enabled: enabled}
}

// Enabled reports whether a flag is on.
func (s FeatureState) Enabled(flag FeatureFlag) bool {
	_, ok := s.enabled[flag]
	return ok
}

// Flags returns the enabled flags sorted by name.
func (s FeatureState) Flags() []FeatureFlag {
	out := make([]FeatureFlag, 0, len(s.enabled))
	for f := range s.enabled {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
