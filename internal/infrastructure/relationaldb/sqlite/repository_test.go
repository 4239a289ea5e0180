package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
	"github.com/ersonp/climate-materials/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
		assert.Equal(t, ":memory:", repo.Path())
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.SQLiteConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	// Verify tables exist
	tables := []string{"resources", "resolutions"}
	for _, table := range tables {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}
}

func TestRepository_EnsureSchema_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)

	// Should not error when called again
	err := repo.EnsureSchema(context.Background())
	require.NoError(t, err)
}

func TestRepository_Resources(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	handles := []entities.Handle{
		{Ref: entities.Ref(302, 1, 0), Location: "textures/302_1-0.png"},
		{Ref: entities.Ref(302, 1, 1), Location: "textures/302_1-1.png"},
		{Ref: entities.Ref(112, 3, 0), Location: "textures/112_3-0.png"},
	}
	require.NoError(t, repo.Register(ctx, handles))

	t.Run("lookup registered", func(t *testing.T) {
		h, err := repo.Lookup(ctx, entities.Ref(302, 1, 1))
		require.NoError(t, err)
		assert.Equal(t, handles[1], h)
	})

	t.Run("lookup missing", func(t *testing.T) {
		_, err := repo.Lookup(ctx, entities.Ref(999, 0, 0))
		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrNotFound)
	})

	t.Run("register replaces location", func(t *testing.T) {
		err := repo.Register(ctx, []entities.Handle{{Ref: entities.Ref(112, 3, 0), Location: "override.png"}})
		require.NoError(t, err)

		h, err := repo.Lookup(ctx, entities.Ref(112, 3, 0))
		require.NoError(t, err)
		assert.Equal(t, "override.png", h.Location)

		count, err := repo.CountResources(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("list all ordered", func(t *testing.T) {
		all, err := repo.List(ctx, -1, 0)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, entities.Ref(112, 3, 0), all[0].Ref)
		assert.Equal(t, entities.Ref(302, 1, 0), all[1].Ref)
	})

	t.Run("list one archive with limit", func(t *testing.T) {
		some, err := repo.List(ctx, 302, 1)
		require.NoError(t, err)
		require.Len(t, some, 1)
		assert.Equal(t, entities.Ref(302, 1, 0), some[0].Ref)
	})

	t.Run("register nothing", func(t *testing.T) {
		require.NoError(t, repo.Register(ctx, nil))
	})
}

func TestRepository_Resolutions(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	first := entities.ResolutionEntry{
		ID:             "11111111-1111-1111-1111-111111111111",
		Target:         "Farmhouse",
		Profile:        entities.ProfileClimate,
		Category:       entities.CategoryMountain,
		RegionName:     "Lainlyn",
		IsWinter:       true,
		Features:       []entities.FeatureFlag{entities.FeatureBiomes, entities.FeatureSnowless},
		Status:         entities.StatusResolved,
		Rule:           entities.RuleRegionSecondary,
		SourceCategory: entities.CategoryMountainHammerfell,
		SourceSeason:   entities.SeasonWinter,
		Refs:           []entities.ResourceRef{entities.Ref(420, 5, 0)},
		Trail: []entities.TrailStep{
			{Rule: entities.RuleRegionSecondary, Category: entities.CategoryMountainHammerfell, Matched: true},
		},
		Loaded:    1,
		CreatedAt: base,
	}
	second := entities.ResolutionEntry{
		ID:        "22222222-2222-2222-2222-222222222222",
		Target:    "Farmhouse",
		Profile:   entities.ProfileClimate,
		Category:  entities.CategoryDesert,
		Status:    entities.StatusUnresolved,
		Rule:      entities.RuleNone,
		Refs:      []entities.ResourceRef{},
		Trail:     []entities.TrailStep{{Rule: entities.RuleDirect, Category: entities.CategoryDesert}},
		CreatedAt: base.Add(time.Minute),
	}
	other := entities.ResolutionEntry{
		ID:        "33333333-3333-3333-3333-333333333333",
		Target:    "Barn",
		Profile:   entities.ProfileRocks,
		Category:  entities.CategoryWoodlands,
		Status:    entities.StatusResolved,
		Rule:      entities.RuleDirect,
		Refs:      []entities.ResourceRef{entities.Ref(302, 1, 0)},
		Trail:     []entities.TrailStep{},
		CreatedAt: base.Add(2 * time.Minute),
	}

	for _, e := range []entities.ResolutionEntry{first, second, other} {
		require.NoError(t, repo.LogResolution(ctx, e))
	}

	t.Run("newest first", func(t *testing.T) {
		found, err := repo.FindResolutions(ctx, "Farmhouse", 0)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, second.ID, found[0].ID)
		assert.Equal(t, first.ID, found[1].ID)
	})

	t.Run("round trip fields", func(t *testing.T) {
		found, err := repo.FindResolutions(ctx, "Farmhouse", 2)
		require.NoError(t, err)
		got := found[1]

		assert.Equal(t, first.RegionName, got.RegionName)
		assert.True(t, got.IsWinter)
		assert.Equal(t, first.Features, got.Features)
		assert.Equal(t, first.Rule, got.Rule)
		assert.Equal(t, first.SourceCategory, got.SourceCategory)
		assert.Equal(t, first.SourceSeason, got.SourceSeason)
		assert.Equal(t, first.Refs, got.Refs)
		assert.Equal(t, first.Trail, got.Trail)
		assert.Equal(t, 1, got.Loaded)
		assert.True(t, first.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("unresolved has no source", func(t *testing.T) {
		found, err := repo.FindResolutions(ctx, "Farmhouse", 1)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Empty(t, found[0].SourceCategory)
		assert.Empty(t, found[0].Features)
		assert.Empty(t, found[0].Refs)
	})

	t.Run("unknown target", func(t *testing.T) {
		found, err := repo.FindResolutions(ctx, "Tower", 10)
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := repo.LogResolution(ctx, first)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logging resolution")
	})

	t.Run("counts by status", func(t *testing.T) {
		counts, err := repo.CountResolutionsByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, counts[entities.StatusResolved])
		assert.Equal(t, 1, counts[entities.StatusUnresolved])
	})
}

func TestRepository_LogResolution_DefaultsCreatedAt(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	original := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = original })

	err := repo.LogResolution(ctx, entities.ResolutionEntry{
		ID:     "44444444-4444-4444-4444-444444444444",
		Target: "Well",
		Status: entities.StatusResolved,
		Rule:   entities.RuleDirect,
	})
	require.NoError(t, err)

	found, err := repo.FindResolutions(ctx, "Well", 1)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, fixed.Equal(found[0].CreatedAt))
}

var (
	_ ports.ArchiveCatalog = (*Repository)(nil)
	_ ports.ResolutionLog  = (*Repository)(nil)
)
