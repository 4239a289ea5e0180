package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
	"github.com/ersonp/climate-materials/internal/infrastructure/parsers"
)

// TableResult is a loaded table plus the soft failures met on the way.
type TableResult struct {
	Table entities.Table
	// Regions is set when the document is keyed by region name. Table is then
	// all-empty and resolution goes through Resolver.ResolveRegion.
	Regions entities.RegionTable
	// Diagnostics holds *entities.ConfigLoadError, *entities.InvalidRefError
	// and unknown-key warnings. None of them are fatal.
	Diagnostics []error
}

// LoadFailed reports whether the document could not be used at all.
func (r TableResult) LoadFailed() bool {
	for _, d := range r.Diagnostics {
		if errors.Is(d, entities.ErrConfigLoad) {
			return true
		}
	}
	return false
}

// IsRegionDocument reports whether the document was region-keyed.
func (r TableResult) IsRegionDocument() bool {
	return r.Regions != nil
}

// TableService builds configuration tables from authored documents.
type TableService struct {
	source ports.DocumentSource
	logger *slog.Logger
}

// NewTableService creates a new table service.
func NewTableService(source ports.DocumentSource, logger *slog.Logger) *TableService {
	return &TableService{
		source: source,
		logger: logger,
	}
}

// Load reads, decodes and validates the document for a target. It never
// fails: a missing or malformed document yields the all-empty table.
func (s *TableService) Load(ctx context.Context, name string) TableResult {
	data, filename, err := s.source.Open(ctx, name)
	if err != nil {
		return s.emptyResult(name, err)
	}

	s.logger.Debug("material document loaded", "target", name, "file", filename, "bytes", len(data))

	parser := parsers.ForFile(filename)
	if parser == nil {
		return s.emptyResult(name, fmt.Errorf("unsupported document format: %s", filename))
	}

	if rp, ok := parser.(parsers.RegionParser); ok && rp.IsRegionDocument(data) {
		return s.loadRegions(name, rp, data)
	}

	doc, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return s.emptyResult(name, err)
	}

	table, keyWarnings := BuildTable(doc)
	table, refWarnings := ValidateTable(table)

	diagnostics := append(keyWarnings, refWarnings...)
	for _, d := range diagnostics {
		s.logger.Warn("material document warning", "target", name, "error", d)
	}

	return TableResult{Table: table, Diagnostics: diagnostics}
}

func (s *TableService) loadRegions(name string, rp parsers.RegionParser, data []byte) TableResult {
	rows, err := rp.ParseRegions(bytes.NewReader(data))
	if err != nil {
		return s.emptyResult(name, err)
	}

	regions, diagnostics := BuildRegionTable(rows)
	for _, d := range diagnostics {
		s.logger.Warn("region document warning", "target", name, "error", d)
	}

	return TableResult{
		Table:       entities.NewEmptyTable(),
		Regions:     regions,
		Diagnostics: diagnostics,
	}
}

func (s *TableService) emptyResult(name string, err error) TableResult {
	loadErr := &entities.ConfigLoadError{Name: name, Err: err}
	s.logger.Error("material document unusable, using empty table", "target", name, "error", err)
	return TableResult{
		Table:       entities.NewEmptyTable(),
		Diagnostics: []error{loadErr},
	}
}

// BuildTable converts a decoded document into a complete table. Keys outside
// the category enumeration are reported and ignored.
func BuildTable(doc parsers.RawDocument) (entities.Table, []error) {
	table := entities.NewEmptyTable()
	var warnings []error

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		c := entities.Category(key)
		if !c.IsKnown() {
			warnings = append(warnings, fmt.Errorf("%w: %q", entities.ErrUnknownKey, key))
			continue
		}
		table[c] = doc[key]
	}

	return table, warnings
}

// BuildRegionTable converts region entries into a table, dropping refs with
// negative fields. Entries without a name are skipped; when a region is
// listed twice the first entry wins.
func BuildRegionTable(rows []parsers.RawRegion) (entities.RegionTable, []error) {
	table := make(entities.RegionTable, len(rows))
	var warnings []error

	for i, row := range rows {
		key := entities.RegionKey(row.RegionName)
		if key == "" {
			warnings = append(warnings, fmt.Errorf("%w: entry %d has no regionName", entities.ErrRegionEntry, i))
			continue
		}
		if _, dup := table[key]; dup {
			warnings = append(warnings, fmt.Errorf("%w: region %q listed more than once", entities.ErrRegionEntry, row.RegionName))
			continue
		}

		defaults, w1 := validRegionRefs(row.RegionName, entities.SeasonDefault, row.DefaultRefs)
		winters, w2 := validRegionRefs(row.RegionName, entities.SeasonWinter, row.WinterRefs)
		warnings = append(warnings, w1...)
		warnings = append(warnings, w2...)
		table[key] = entities.SeasonalSet{DefaultRefs: defaults, WinterRefs: winters}
	}

	return table, warnings
}

func validRegionRefs(region string, season entities.Season, refs []entities.ResourceRef) ([]entities.ResourceRef, []error) {
	valid, warnings := validRefs("", season, refs)
	for _, w := range warnings {
		var refErr *entities.InvalidRefError
		if errors.As(w, &refErr) {
			refErr.Region = region
		}
	}
	return valid, warnings
}

// ValidateTable drops refs with negative fields. The input is not modified.
func ValidateTable(table entities.Table) (entities.Table, []error) {
	out := make(entities.Table, len(table))
	var warnings []error

	for _, c := range sortedCategories(table) {
		set := table[c]
		defaults, w1 := validRefs(c, entities.SeasonDefault, set.DefaultRefs)
		winters, w2 := validRefs(c, entities.SeasonWinter, set.WinterRefs)
		warnings = append(warnings, w1...)
		warnings = append(warnings, w2...)
		out[c] = entities.SeasonalSet{DefaultRefs: defaults, WinterRefs: winters}
	}

	return out, warnings
}

func validRefs(c entities.Category, season entities.Season, refs []entities.ResourceRef) ([]entities.ResourceRef, []error) {
	if len(refs) == 0 {
		return nil, nil
	}
	valid := make([]entities.ResourceRef, 0, len(refs))
	var warnings []error
	for i, ref := range refs {
		if !ref.IsValid() {
			warnings = append(warnings, &entities.InvalidRefError{Category: c, Season: season, Index: i, Ref: ref})
			continue
		}
		valid = append(valid, ref)
	}
	return valid, warnings
}

func sortedCategories(table entities.Table) []entities.Category {
	cats := make([]entities.Category, 0, len(table))
	for c := range table {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}
