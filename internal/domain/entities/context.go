package entities

// ResolutionContext is the point-in-time input of one resolution.
type ResolutionContext struct {
	Category   Category
	RegionName string
	IsWinter   bool
	Features   FeatureState
}
