package handlers

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/services"
	"github.com/ersonp/climate-materials/internal/infrastructure/parsers"
)

// ValidateHandler checks a material document without loading resources.
type ValidateHandler struct {
	resolver *services.Resolver
}

// NewValidateHandler creates a new validate handler.
func NewValidateHandler(resolver *services.Resolver) *ValidateHandler {
	return &ValidateHandler{
		resolver: resolver,
	}
}

// Coverage is how one climate resolves in both seasons.
type Coverage struct {
	Category entities.Category
	Summer   entities.ResolvedRecord
	Winter   entities.ResolvedRecord
}

// ValidateResult contains the outcome of a validation.
type ValidateResult struct {
	Populated []entities.Category
	Warnings  []error
	Coverage  []Coverage
	// Regions lists the folded region names of a region-keyed document.
	// Coverage is empty for such documents.
	Regions []string
}

// IsRegionDocument reports whether the document was region-keyed.
func (r *ValidateResult) IsRegionDocument() bool {
	return r.Regions != nil
}

// Unresolved returns the climates that resolve to nothing in some season.
func (r *ValidateResult) Unresolved() []entities.Category {
	var out []entities.Category
	for _, c := range r.Coverage {
		if !c.Summer.IsResolved() || !c.Winter.IsResolved() {
			out = append(out, c.Category)
		}
	}
	return out
}

// Handle parses the document and resolves every climate against it with the
// given features.
func (h *ValidateHandler) Handle(ctx context.Context, filePath string, features entities.FeatureState) (*ValidateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := parsers.ForFile(filePath)
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	if rp, ok := parser.(parsers.RegionParser); ok && rp.IsRegionDocument(data) {
		rows, err := rp.ParseRegions(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing file: %w", err)
		}
		regions, warnings := services.BuildRegionTable(rows)
		return &ValidateResult{Warnings: warnings, Regions: regions.Names()}, nil
	}

	doc, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	table, keyWarnings := services.BuildTable(doc)
	table, refWarnings := services.ValidateTable(table)

	result := &ValidateResult{
		Populated: table.Populated(),
		Warnings:  append(keyWarnings, refWarnings...),
	}

	for _, c := range entities.ClimateCategories {
		rc := entities.ResolutionContext{Category: c, Features: features}
		summer := h.resolver.Resolve(rc, table)
		rc.IsWinter = services.IsWinterEffective(entities.CalendarWinter, c, features.Enabled(entities.FeatureSnowless))
		winter := h.resolver.Resolve(rc, table)
		result.Coverage = append(result.Coverage, Coverage{Category: c, Summer: summer, Winter: winter})
	}

	return result, nil
}
