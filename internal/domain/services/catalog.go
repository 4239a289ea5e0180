package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
	"github.com/ersonp/climate-materials/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle refs already in the catalog.
type ConflictStrategy string

const (
	// ConflictSkip keeps the existing handle.
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite replaces the existing handle.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle existing refs
}

// ImportError represents an error for a specific row during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// CatalogService imports archive handles into a catalog.
type CatalogService struct {
	catalog ports.ArchiveCatalog
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalog ports.ArchiveCatalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Import validates and registers raw handles.
func (s *CatalogService) Import(ctx context.Context, rows []parsers.RawHandle, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	handles, validationErrors := validateRows(rows)
	result.Errors = validationErrors

	if len(handles) == 0 {
		return result, nil
	}

	if opts.OnConflict == ConflictSkip {
		fresh, err := s.filterExisting(ctx, handles)
		if err != nil {
			return nil, err
		}
		result.Skipped = len(handles) - len(fresh)
		handles = fresh
	}

	if opts.DryRun || len(handles) == 0 {
		result.Imported = len(handles)
		return result, nil
	}

	if err := s.catalog.Register(ctx, handles); err != nil {
		return nil, fmt.Errorf("registering handles: %w", err)
	}
	result.Imported = len(handles)

	return result, nil
}

// List returns catalog handles, optionally for one archive (negative lists all).
func (s *CatalogService) List(ctx context.Context, archive, limit int) ([]entities.Handle, error) {
	handles, err := s.catalog.List(ctx, archive, limit)
	if err != nil {
		return nil, fmt.Errorf("listing handles: %w", err)
	}
	return handles, nil
}

// validateRows converts valid rows to handles. Later duplicates of a ref win.
func validateRows(rows []parsers.RawHandle) ([]entities.Handle, []ImportError) {
	handles := make([]entities.Handle, 0, len(rows))
	index := make(map[entities.ResourceRef]int, len(rows))
	var errs []ImportError

	for i := range rows {
		row := &rows[i]
		lineNum := row.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		if err := validateRow(row, lineNum); err != nil {
			errs = append(errs, *err)
			continue
		}

		h := entities.Handle{
			Ref:      entities.Ref(row.Archive, row.Record, row.Frame),
			Location: strings.TrimSpace(row.Location),
		}
		if at, dup := index[h.Ref]; dup {
			handles[at] = h
			continue
		}
		index[h.Ref] = len(handles)
		handles = append(handles, h)
	}

	return handles, errs
}

func validateRow(row *parsers.RawHandle, lineNum int) *ImportError {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"archive", row.Archive},
		{"record", row.Record},
		{"frame", row.Frame},
	} {
		if f.value < 0 {
			return &ImportError{
				Line:    lineNum,
				Field:   f.name,
				Value:   fmt.Sprintf("%d", f.value),
				Message: fmt.Sprintf("%s must not be negative", f.name),
			}
		}
	}
	if strings.TrimSpace(row.Location) == "" {
		return &ImportError{Line: lineNum, Field: "location", Message: "missing required field: location"}
	}
	return nil
}

func (s *CatalogService) filterExisting(ctx context.Context, handles []entities.Handle) ([]entities.Handle, error) {
	fresh := make([]entities.Handle, 0, len(handles))
	for _, h := range handles {
		_, err := s.catalog.Lookup(ctx, h.Ref)
		switch {
		case err == nil:
			continue
		case errors.Is(err, ports.ErrNotFound):
			fresh = append(fresh, h)
		default:
			return nil, fmt.Errorf("checking existing handle %s: %w", h.Ref, err)
		}
	}
	return fresh, nil
}
