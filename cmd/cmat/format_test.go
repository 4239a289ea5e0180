package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/services"
)

func resolvedOutcome() *services.Outcome {
	ref := entities.Ref(420, 0, 2)
	missing := entities.Ref(420, 5, 0)
	return &services.Outcome{
		Target: "mountainHut",
		Context: entities.ResolutionContext{
			Category:   entities.CategoryMountain,
			RegionName: "Isle of Balfiera",
			Features:   entities.NewFeatureState(entities.FeatureBiomes),
		},
		Record: entities.ResolvedRecord{
			Refs:           []entities.ResourceRef{ref, missing},
			SourceCategory: entities.CategoryMountainBalfiera,
			SourceSeason:   entities.SeasonDefault,
			Status:         entities.StatusResolved,
			Rule:           entities.RuleRegionPrimary,
			Trail: []entities.TrailStep{
				{Rule: entities.RuleRegionPrimary, Category: entities.CategoryMountainBalfiera, Matched: true},
			},
		},
		Load: services.LoadResult{
			Handles: []entities.Handle{{Ref: ref, Location: "textures/420_0-2.png"}},
			Failures: []*entities.ResourceLoadError{
				{Index: 1, Ref: missing, Err: errors.New("not found")},
			},
		},
		EntryID: "entry-1",
	}
}

func TestFormatOutcomesJSON(t *testing.T) {
	var buf bytes.Buffer
	err := formatOutcomesJSON(&buf, []*services.Outcome{resolvedOutcome()})
	require.NoError(t, err)

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 1)

	out := parsed[0]
	assert.Equal(t, "mountainHut", out["target"])
	assert.Equal(t, "mountain", out["category"])
	assert.Equal(t, "Isle of Balfiera", out["region"])
	assert.Equal(t, []any{"biomes"}, out["features"])
	assert.Equal(t, "entry-1", out["entry_id"])

	record := out["record"].(map[string]any)
	assert.Equal(t, "resolved", record["status"])
	assert.Equal(t, "region-primary", record["rule"])
	assert.Equal(t, "mountainBalfiera", record["source_category"])
	assert.Len(t, record["refs"], 2)

	assert.Len(t, out["handles"], 1)
	assert.Len(t, out["failures"], 1)
	assert.NotContains(t, out, "diagnostics")
}

func TestFormatOutcomesJSON_UnresolvedHasEmptyLists(t *testing.T) {
	outcome := &services.Outcome{
		Target: "barrel",
		Record: entities.ResolvedRecord{Status: entities.StatusUnresolved, Rule: entities.RuleNone},
	}

	var buf bytes.Buffer
	require.NoError(t, formatOutcomesJSON(&buf, []*services.Outcome{outcome}))

	assert.Contains(t, buf.String(), `"refs": []`)
	assert.Contains(t, buf.String(), `"handles": []`)
	assert.Contains(t, buf.String(), `"features": []`)
}

func TestFormatOutcomeText(t *testing.T) {
	var buf bytes.Buffer
	formatOutcomeText(&buf, resolvedOutcome())

	out := buf.String()
	assert.Contains(t, out, "Target: mountainHut")
	assert.Contains(t, out, `climate=mountain region="Isle of Balfiera" winter=false features=biomes`)
	assert.Contains(t, out, "resolved via region-primary from mountainBalfiera/default (420/0/2, 420/5/0)")
	assert.Contains(t, out, "420/0/2 -> textures/420_0-2.png")
	assert.Contains(t, out, "Failures (1):")
	assert.Contains(t, out, "+ region-primary")
}

func TestFormatOutcomeText_Skipped(t *testing.T) {
	var buf bytes.Buffer
	formatOutcomeText(&buf, &services.Outcome{Target: "Resource Pack Target", Skipped: true})

	assert.Contains(t, buf.String(), "skipped")
	assert.NotContains(t, buf.String(), "Trail")
}

func TestFormatTrailStep(t *testing.T) {
	tests := []struct {
		name     string
		step     entities.TrailStep
		expected string
	}{
		{
			name:     "matched",
			step:     entities.TrailStep{Rule: entities.RuleDirect, Category: entities.CategorySwamp, Matched: true},
			expected: "+ direct                 swamp",
		},
		{
			name: "with note",
			step: entities.TrailStep{
				Rule:     entities.RuleFallback,
				Category: entities.CategoryRainforest,
				Note:     "requires feature biomes",
			},
			expected: "- fallback               rainforest (requires feature biomes)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatTrailStep(tt.step))
		})
	}
}

func TestFormatRecordSource(t *testing.T) {
	byCategory := entities.ResolvedRecord{
		Refs:           []entities.ResourceRef{entities.Ref(302, 1, 0)},
		SourceCategory: entities.CategoryDesert,
		SourceSeason:   entities.SeasonDefault,
		Status:         entities.StatusResolved,
		Rule:           entities.RuleFallback,
	}
	assert.Equal(t, "resolved via fallback from desert/default (302/1/0)", formatRecordSource(byCategory))

	byRegion := entities.ResolvedRecord{
		Refs:         []entities.ResourceRef{entities.Ref(141, 0, 0)},
		SourceRegion: "daggerfall",
		SourceSeason: entities.SeasonWinter,
		Status:       entities.StatusResolved,
		Rule:         entities.RuleRegionDocument,
	}
	assert.Equal(t, `resolved via region-document from region "daggerfall"/winter (141/0/0)`, formatRecordSource(byRegion))

	assert.Equal(t, "unresolved", formatRecordSource(entities.ResolvedRecord{Status: entities.StatusUnresolved}))
}

func TestFormatRefs(t *testing.T) {
	assert.Equal(t, "none", formatRefs(nil))
	assert.Equal(t, "504/19/0, 504/21/0", formatRefs([]entities.ResourceRef{
		entities.Ref(504, 19, 0),
		entities.Ref(504, 21, 0),
	}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a long...", truncate("a long location", 9))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestFormatEntriesJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatEntriesJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestDisplayEntries(t *testing.T) {
	entries := []entities.ResolutionEntry{
		{
			Profile:        entities.ProfileClimate,
			Category:       entities.CategorySwamp,
			Status:         entities.StatusResolved,
			Rule:           entities.RuleFallback,
			SourceCategory: entities.CategoryRainforest,
			SourceSeason:   entities.SeasonDefault,
			Loaded:         2,
			Failed:         1,
			CreatedAt:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	displayEntries(&buf, entries)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "rainforest/default")
	assert.Contains(t, lines[1], "2/3")
	assert.Contains(t, lines[1], "swamp")
}

func TestDisplayStatusCounts(t *testing.T) {
	var buf bytes.Buffer
	displayStatusCounts(&buf, map[entities.Status]int{
		entities.StatusUnresolved: 1,
		entities.StatusResolved:   4,
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "resolved"))
	assert.True(t, strings.HasPrefix(lines[2], "unresolved"))

	buf.Reset()
	displayStatusCounts(&buf, nil)
	assert.Equal(t, "No resolutions recorded.\n", buf.String())
}
