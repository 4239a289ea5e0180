package entities

import "time"

// ResolutionEntry is the persisted diagnostic trail of one resolution.
type ResolutionEntry struct {
	ID             string        `json:"id"`
	Target         string        `json:"target"`
	Profile        string        `json:"profile"`
	Category       Category      `json:"category"`
	RegionName     string        `json:"region_name,omitempty"`
	IsWinter       bool          `json:"is_winter"`
	Features       []FeatureFlag `json:"features,omitempty"`
	Status         Status        `json:"status"`
	Rule           Rule          `json:"rule"`
	SourceCategory Category      `json:"source_category,omitempty"`
	SourceSeason   Season        `json:"source_season,omitempty"`
	Refs           []ResourceRef `json:"refs"`
	Trail          []TrailStep   `json:"trail"`
	Loaded         int           `json:"loaded"`
	Failed         int           `json:"failed"`
	CreatedAt      time.Time     `json:"created_at"`
}
