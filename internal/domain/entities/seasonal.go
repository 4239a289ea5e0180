package entities

// Season selects between the default and the winter variant of an entry.
type Season string

// Seasons.
const (
	SeasonDefault Season = "default"
	SeasonWinter  Season = "winter"
)

// CalendarSeason is the season reported by the world clock.
type CalendarSeason string

// Calendar seasons.
const (
	CalendarSpring CalendarSeason = "spring"
	CalendarSummer CalendarSeason = "summer"
	CalendarFall   CalendarSeason = "fall"
	CalendarWinter CalendarSeason = "winter"
)

// SeasonalSet holds the authored resource lists of one category.
// An empty list means "not authored"; nil and zero-length are equivalent.
type SeasonalSet struct {
	DefaultRefs []ResourceRef `json:"defaultMaterials" yaml:"defaultMaterials"`
	WinterRefs  []ResourceRef `json:"winterMaterials" yaml:"winterMaterials"`
}

// IsEmpty reports whether neither season has any refs.
func (s SeasonalSet) IsEmpty() bool {
	return len(s.DefaultRefs) == 0 && len(s.WinterRefs) == 0
}

// Refs returns the list authored for a season.
func (s SeasonalSet) Refs(season Season) []ResourceRef {
	if season == SeasonWinter {
		return s.WinterRefs
	}
	return s.DefaultRefs
}

// Pick applies season preference: the requested season's list when it is
// non-empty, otherwise the other one. The returned season is the one whose
// list was used.
func (s SeasonalSet) Pick(winter bool) ([]ResourceRef, Season) {
	if winter {
		if len(s.WinterRefs) > 0 {
			return s.WinterRefs, SeasonWinter
		}
		return s.DefaultRefs, SeasonDefault
	}
	if len(s.DefaultRefs) > 0 {
		return s.DefaultRefs, SeasonDefault
	}
	return s.WinterRefs, SeasonWinter
}
