package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/climate-materials/internal/domain/services"
	"github.com/ersonp/climate-materials/internal/infrastructure/parsers"
)

// ImportHandler handles importing archive catalogs from files.
type ImportHandler struct {
	service *services.CatalogService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.CatalogService) *ImportHandler {
	return &ImportHandler{
		service: service,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool                      // Validate without saving
	OnConflict services.ConflictStrategy // How to handle existing refs
}

// Handle imports catalog rows from a JSON or CSV file.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*services.ImportResult, error) {
	parser := parsers.CatalogForFile(filePath)
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	rows, err := parser.ParseCatalog(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	if len(rows) == 0 {
		return &services.ImportResult{}, nil
	}

	return h.service.Import(ctx, rows, services.ImportOptions{
		DryRun:     opts.DryRun,
		OnConflict: opts.OnConflict,
	})
}
