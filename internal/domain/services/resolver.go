package services

import (
	"fmt"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

// Resolver selects the seasonal resource list for a context. It holds no
// mutable state and is safe for concurrent use.
type Resolver struct {
	profile entities.Profile
}

// NewResolver creates a resolver for a profile after validating its graph.
func NewResolver(profile entities.Profile) (*Resolver, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("creating resolver: %w", err)
	}
	return &Resolver{profile: profile}, nil
}

// Profile returns the profile the resolver was built from.
func (r *Resolver) Profile() entities.Profile {
	return r.profile
}

// Resolve applies region overrides, the direct entry and then the fallback
// chain. The first non-empty entry wins and the season is picked inside it.
// An exhausted chain yields an unresolved record, not an error.
func (r *Resolver) Resolve(rc entities.ResolutionContext, table entities.Table) entities.ResolvedRecord {
	var trail []entities.TrailStep

	if entry, rule, ok := r.regionOverride(rc, table, &trail); ok {
		return r.finish(rc, table, entry, rule, trail)
	}

	current := rc.Category
	if !current.IsKnown() {
		trail = append(trail, entities.TrailStep{
			Rule:     entities.RuleDirect,
			Category: current,
			Note:     "unknown category, starting at terminal",
		})
		current = r.profile.Graph.Terminal
	}

	rule := entities.RuleDirect
	visited := make(map[entities.Category]bool, len(r.profile.Graph.Edges))
	for range len(r.profile.Graph.Edges) + 1 {
		visited[current] = true

		if flag, gated := r.profile.GatedDirect[current]; gated && !rc.Features.Enabled(flag) {
			trail = append(trail, entities.TrailStep{
				Rule:     rule,
				Category: current,
				Note:     fmt.Sprintf("requires feature %s", flag),
			})
		} else {
			matched := !table.Entry(current).IsEmpty()
			trail = append(trail, entities.TrailStep{Rule: rule, Category: current, Matched: matched})
			if matched {
				return r.finish(rc, table, current, rule, trail)
			}
		}

		next := r.profile.Graph.Next(current)
		if visited[next] {
			break
		}
		current = next
		rule = entities.RuleFallback
	}

	return unresolved(trail)
}

// ResolveRegion picks the entry a region-keyed document authors for the
// context's region. The climate plays no part. An unlisted region or an
// empty entry yields an unresolved record.
func (r *Resolver) ResolveRegion(rc entities.ResolutionContext, regions entities.RegionTable) entities.ResolvedRecord {
	entry, listed := regions.Entry(rc.RegionName)
	step := entities.TrailStep{
		Rule:     entities.RuleRegionDocument,
		Category: rc.Category,
		Matched:  listed && !entry.IsEmpty(),
		Note:     fmt.Sprintf("region %q", rc.RegionName),
	}
	if !listed {
		step.Note += " not listed"
	}
	trail := []entities.TrailStep{step}

	if !step.Matched {
		return unresolved(trail)
	}

	refs, season := entry.Pick(rc.IsWinter)
	out := make([]entities.ResourceRef, len(refs))
	copy(out, refs)
	return entities.ResolvedRecord{
		Refs:         out,
		SourceRegion: entities.RegionKey(rc.RegionName),
		SourceSeason: season,
		Status:       entities.StatusResolved,
		Rule:         entities.RuleRegionDocument,
		Trail:        trail,
	}
}

func unresolved(trail []entities.TrailStep) entities.ResolvedRecord {
	return entities.ResolvedRecord{
		Refs:   []entities.ResourceRef{},
		Status: entities.StatusUnresolved,
		Rule:   entities.RuleNone,
		Trail:  trail,
	}
}

func (r *Resolver) regionOverride(rc entities.ResolutionContext, table entities.Table, trail *[]entities.TrailStep) (entities.Category, entities.Rule, bool) {
	for _, rule := range r.profile.Rules {
		if rule.Category != rc.Category {
			continue
		}

		switch {
		case rule.Primary.Regions.Contains(rc.RegionName):
			if tryEntry(table, rule.Primary.Entry, entities.RuleRegionPrimary, "", trail) {
				return rule.Primary.Entry, entities.RuleRegionPrimary, true
			}

		case rule.Secondary.Regions.Contains(rc.RegionName):
			if rule.Secondary.Feature == "" || rc.Features.Enabled(rule.Secondary.Feature) {
				if tryEntry(table, rule.Secondary.Entry, entities.RuleRegionSecondary, "", trail) {
					return rule.Secondary.Entry, entities.RuleRegionSecondary, true
				}
				continue
			}
			note := fmt.Sprintf("feature %s disabled", rule.Secondary.Feature)
			if tryEntry(table, rule.Primary.Entry, entities.RuleRegionReuse, note, trail) {
				return rule.Primary.Entry, entities.RuleRegionReuse, true
			}
		}
	}
	return "", "", false
}

func tryEntry(table entities.Table, c entities.Category, rule entities.Rule, note string, trail *[]entities.TrailStep) bool {
	matched := !table.Entry(c).IsEmpty()
	*trail = append(*trail, entities.TrailStep{Rule: rule, Category: c, Matched: matched, Note: note})
	return matched
}

func (r *Resolver) finish(rc entities.ResolutionContext, table entities.Table, c entities.Category, rule entities.Rule, trail []entities.TrailStep) entities.ResolvedRecord {
	refs, season := table.Entry(c).Pick(rc.IsWinter)
	out := make([]entities.ResourceRef, len(refs))
	copy(out, refs)
	return entities.ResolvedRecord{
		Refs:           out,
		SourceCategory: c,
		SourceSeason:   season,
		Status:         entities.StatusResolved,
		Rule:           rule,
		Trail:          trail,
	}
}
