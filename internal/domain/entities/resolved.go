package entities

// Status tells whether a resolution produced any refs.
type Status string

// Resolution statuses.
const (
	StatusResolved   Status = "resolved"
	StatusUnresolved Status = "unresolved"
)

// Rule names the precedence step that produced a record.
type Rule string

// Precedence steps.
const (
	RuleRegionPrimary   Rule = "region-primary"
	RuleRegionSecondary Rule = "region-secondary"
	RuleRegionReuse     Rule = "region-reuse-primary"
	RuleRegionDocument  Rule = "region-document"
	RuleDirect          Rule = "direct"
	RuleFallback        Rule = "fallback"
	RuleNone            Rule = "none"
)

// TrailStep records one candidate the resolver examined.
type TrailStep struct {
	Rule     Rule     `json:"rule"`
	Category Category `json:"category"`
	Matched  bool     `json:"matched"`
	Note     string   `json:"note,omitempty"`
}

// ResolvedRecord is the resolver's result. It is never mutated after creation.
type ResolvedRecord struct {
	Refs           []ResourceRef `json:"refs"`
	SourceCategory Category      `json:"source_category,omitempty"`
	SourceRegion   string        `json:"source_region,omitempty"`
	SourceSeason   Season        `json:"source_season,omitempty"`
	Status         Status        `json:"status"`
	Rule           Rule          `json:"rule"`
	Trail          []TrailStep   `json:"trail"`
}

// IsResolved reports whether the record carries refs to load.
func (r ResolvedRecord) IsResolved() bool {
	return r.Status == StatusResolved
}
