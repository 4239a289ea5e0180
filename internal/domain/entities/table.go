package entities

// Table maps every known category to its authored seasonal set.
// A Table is built once and treated as read-only afterwards.
type Table map[Category]SeasonalSet

// NewEmptyTable returns a table where every category maps to an empty set.
func NewEmptyTable() Table {
	t := make(Table, len(AllCategories()))
	for _, c := range AllCategories() {
		t[c] = SeasonalSet{}
	}
	return t
}

// Entry returns the set for a category. Absent categories yield an empty set.
func (t Table) Entry(c Category) SeasonalSet {
	return t[c]
}

// IsEmpty reports whether no category carries any refs.
func (t Table) IsEmpty() bool {
	for _, set := range t {
		if !set.IsEmpty() {
			return false
		}
	}
	return true
}

// Populated returns the categories with at least one ref, in enumeration order.
func (t Table) Populated() []Category {
	var out []Category
	for _, c := range AllCategories() {
		if !t[c].IsEmpty() {
			out = append(out, c)
		}
	}
	return out
}
