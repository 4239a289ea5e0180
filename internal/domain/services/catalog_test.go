package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/mocks"
	"github.com/ersonp/climate-materials/internal/infrastructure/parsers"
)

func TestCatalogService_Import_ValidRows(t *testing.T) {
	catalog := &mocks.ArchiveCatalog{}
	service := NewCatalogService(catalog)
	rows := []parsers.RawHandle{
		{Archive: 302, Record: 1, Frame: 0, Location: "textures/302_1-0.png"},
		{Archive: 302, Record: 1, Frame: 1, Location: " textures/302_1-1.png "},
	}

	result, err := service.Import(t.Context(), rows, ImportOptions{OnConflict: ConflictOverwrite})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, catalog.RegisterCallCount)
	assert.Equal(t, "textures/302_1-1.png", catalog.Handles[ref3].Location)
}

func TestCatalogService_Import_ValidationErrors(t *testing.T) {
	catalog := &mocks.ArchiveCatalog{}
	service := NewCatalogService(catalog)
	rows := []parsers.RawHandle{
		{Archive: -1, Record: 1, Frame: 0, Location: "a.png", LineNum: 2},
		{Archive: 302, Record: 1, Frame: -3, Location: "b.png", LineNum: 3},
		{Archive: 302, Record: 1, Frame: 0, Location: "  ", LineNum: 4},
	}

	result, err := service.Import(t.Context(), rows, ImportOptions{OnConflict: ConflictOverwrite})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, "archive", result.Errors[0].Field)
	assert.Equal(t, "-1", result.Errors[0].Value)
	assert.Equal(t, "frame", result.Errors[1].Field)
	assert.Equal(t, "location", result.Errors[2].Field)
	assert.Equal(t, "line 4: missing required field: location", result.Errors[2].Error())
	assert.Equal(t, 0, catalog.RegisterCallCount)
}

func TestCatalogService_Import_SkipExisting(t *testing.T) {
	catalog := &mocks.ArchiveCatalog{Handles: map[entities.ResourceRef]entities.Handle{
		ref2: {Ref: ref2, Location: "old.png"},
	}}
	service := NewCatalogService(catalog)
	rows := []parsers.RawHandle{
		{Archive: 302, Record: 1, Frame: 0, Location: "new.png"},
		{Archive: 302, Record: 1, Frame: 1, Location: "winter.png"},
	}

	result, err := service.Import(t.Context(), rows, ImportOptions{OnConflict: ConflictSkip})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "old.png", catalog.Handles[ref2].Location)
	assert.Equal(t, "winter.png", catalog.Handles[ref3].Location)
}

func TestCatalogService_Import_DuplicateRowsLastWins(t *testing.T) {
	catalog := &mocks.ArchiveCatalog{}
	service := NewCatalogService(catalog)
	rows := []parsers.RawHandle{
		{Archive: 302, Record: 1, Frame: 0, Location: "first.png"},
		{Archive: 302, Record: 1, Frame: 0, Location: "second.png"},
	}

	result, err := service.Import(t.Context(), rows, ImportOptions{OnConflict: ConflictOverwrite})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, "second.png", catalog.Handles[ref2].Location)
}

func TestCatalogService_Import_DryRun(t *testing.T) {
	catalog := &mocks.ArchiveCatalog{}
	service := NewCatalogService(catalog)
	rows := []parsers.RawHandle{{Archive: 302, Record: 1, Frame: 0, Location: "a.png"}}

	result, err := service.Import(t.Context(), rows, ImportOptions{DryRun: true, OnConflict: ConflictSkip})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 0, catalog.RegisterCallCount)
	assert.Empty(t, catalog.Handles)
}

func TestCatalogService_Import_Errors(t *testing.T) {
	rows := []parsers.RawHandle{{Archive: 302, Record: 1, Frame: 0, Location: "a.png"}}

	t.Run("register", func(t *testing.T) {
		service := NewCatalogService(&mocks.ArchiveCatalog{RegisterErr: errors.New("locked")})
		_, err := service.Import(t.Context(), rows, ImportOptions{OnConflict: ConflictOverwrite})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "registering handles")
	})

	t.Run("lookup", func(t *testing.T) {
		service := NewCatalogService(&mocks.ArchiveCatalog{LookupErr: errors.New("locked")})
		_, err := service.Import(t.Context(), rows, ImportOptions{OnConflict: ConflictSkip})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "checking existing handle")
	})
}

func TestCatalogService_List(t *testing.T) {
	catalog := &mocks.ArchiveCatalog{Handles: map[entities.ResourceRef]entities.Handle{
		ref1: {Ref: ref1, Location: "a"},
		ref2: {Ref: ref2, Location: "b"},
		ref3: {Ref: ref3, Location: "c"},
	}}
	service := NewCatalogService(catalog)

	all, err := service.List(t.Context(), -1, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	only, err := service.List(t.Context(), 302, 1)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, ref2, only[0].Ref)
}
