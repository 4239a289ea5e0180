package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
	"github.com/ersonp/climate-materials/internal/domain/services"
	"github.com/ersonp/climate-materials/internal/infrastructure/parsers"
)

func TestCollectionLifecycle(t *testing.T) {
	ctx := context.Background()

	// Collection should already exist from TestMain
	count, err := testRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	// Ensure idempotent - calling EnsureCollection again should not fail
	require.NoError(t, testRepo.EnsureCollection(ctx))
}

func TestRegisterAndLookup(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() { cleanupHandles(t) })

	ref := entities.Ref(302, 1, 0)
	require.NoError(t, testRepo.Register(ctx, []entities.Handle{
		{Ref: ref, Location: "textures/302_1-0.png"},
	}))

	got, err := testRepo.Lookup(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, ref, got.Ref)
	assert.Equal(t, "textures/302_1-0.png", got.Location)

	// Re-registering replaces the location
	require.NoError(t, testRepo.Register(ctx, []entities.Handle{
		{Ref: ref, Location: "textures/302_1-0.tga"},
	}))
	got, err = testRepo.Lookup(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "textures/302_1-0.tga", got.Location)

	count, err := testRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestLookup_NotFound(t *testing.T) {
	_, err := testRepo.Lookup(context.Background(), entities.Ref(999, 0, 0))
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestList_FilterAndLimit(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() { cleanupHandles(t) })

	handles := []entities.Handle{
		{Ref: entities.Ref(420, 5, 0), Location: "c"},
		{Ref: entities.Ref(302, 1, 1), Location: "b"},
		{Ref: entities.Ref(302, 1, 0), Location: "a"},
	}
	require.NoError(t, testRepo.Register(ctx, handles))

	all, err := testRepo.List(ctx, -1, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, entities.Ref(302, 1, 0), all[0].Ref)
	assert.Equal(t, entities.Ref(420, 5, 0), all[2].Ref)

	only302, err := testRepo.List(ctx, 302, 0)
	require.NoError(t, err)
	assert.Len(t, only302, 2)

	limited, err := testRepo.List(ctx, -1, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, entities.Ref(302, 1, 0), limited[0].Ref)
	assert.Equal(t, entities.Ref(302, 1, 1), limited[1].Ref)
}

func TestCatalogService_ImportIntoQdrant(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() { cleanupHandles(t) })

	service := services.NewCatalogService(testRepo)
	rows := []parsers.RawHandle{
		{Archive: 112, Record: 3, Frame: 0, Location: "textures/112_3-0.png", LineNum: 2},
		{Archive: -1, Record: 0, Frame: 0, Location: "bad.png", LineNum: 3},
	}

	result, err := service.Import(ctx, rows, services.ImportOptions{OnConflict: services.ConflictSkip})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Len(t, result.Errors, 1)

	// Second import skips the existing ref
	result, err = service.Import(ctx, rows[:1], services.ImportOptions{OnConflict: services.ConflictSkip})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
}
