package entities

import (
	"errors"
	"fmt"
)

// MaxFallbackHops bounds the distance from any category to the terminal.
const MaxFallbackHops = 3

// ErrInvalidGraph is wrapped by every fallback graph validation failure.
var ErrInvalidGraph = errors.New("invalid fallback graph")

// FallbackGraph maps a category to the category consulted when its own entry
// is empty. Exactly one category, the terminal, is its own fallback.
type FallbackGraph struct {
	Terminal Category
	Edges    map[Category]Category
}

// DefaultFallbackGraph returns the hand-authored climate fallback edges.
func DefaultFallbackGraph() FallbackGraph {
	return FallbackGraph{
		Terminal: CategoryWoodlands,
		Edges: map[Category]Category{
			CategoryOcean:            CategoryWoodlands,
			CategoryDesert:           CategoryWoodlands,
			CategoryDesert2:          CategoryDesert,
			CategoryMountain:         CategoryWoodlands,
			CategoryRainforest:       CategoryWoodlands,
			CategorySwamp:            CategoryRainforest,
			CategorySubtropical:      CategoryDesert,
			CategoryMountainWoods:    CategoryWoodlands,
			CategoryWoodlands:        CategoryWoodlands,
			CategoryHauntedWoodlands: CategoryWoodlands,
		},
	}
}

// With returns a copy of the graph with the given edges replaced.
func (g FallbackGraph) With(overrides map[Category]Category) FallbackGraph {
	edges := make(map[Category]Category, len(g.Edges)+len(overrides))
	for from, to := range g.Edges {
		edges[from] = to
	}
	for from, to := range overrides {
		edges[from] = to
	}
	return FallbackGraph{Terminal: g.Terminal, Edges: edges}
}

// Next returns the fallback of c. Categories without an edge fall back to
// the terminal.
func (g FallbackGraph) Next(c Category) Category {
	if next, ok := g.Edges[c]; ok {
		return next
	}
	return g.Terminal
}

// Chain returns the categories visited from c up to and including the
// terminal. The walk is bounded so a malformed graph cannot loop.
func (g FallbackGraph) Chain(c Category) []Category {
	chain := []Category{c}
	current := c
	for hops := 0; current != g.Terminal && hops <= len(g.Edges); hops++ {
		current = g.Next(current)
		chain = append(chain, current)
	}
	return chain
}

// Validate checks the terminal is its own fallback and every chain reaches
// it within MaxFallbackHops without cycling.
func (g FallbackGraph) Validate() error {
	if g.Terminal == "" {
		return fmt.Errorf("%w: terminal category is required", ErrInvalidGraph)
	}
	if next, ok := g.Edges[g.Terminal]; ok && next != g.Terminal {
		return fmt.Errorf("%w: terminal %s falls back to %s", ErrInvalidGraph, g.Terminal, next)
	}

	for from := range g.Edges {
		seen := map[Category]bool{from: true}
		current := from
		hops := 0
		for current != g.Terminal {
			current = g.Next(current)
			hops++
			if current != g.Terminal && seen[current] {
				return fmt.Errorf("%w: cycle through %s", ErrInvalidGraph, current)
			}
			if hops > MaxFallbackHops {
				return fmt.Errorf("%w: %s needs more than %d hops to reach %s", ErrInvalidGraph, from, MaxFallbackHops, g.Terminal)
			}
			seen[current] = true
		}
	}
	return nil
}
