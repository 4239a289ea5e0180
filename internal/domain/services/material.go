package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
)

// Outcome is everything produced for one target.
type Outcome struct {
	Target      string
	Skipped     bool
	Context     entities.ResolutionContext
	Record      entities.ResolvedRecord
	Load        LoadResult
	Diagnostics []error
	EntryID     string
}

// MaterialServiceOptions configures MaterialService.
type MaterialServiceOptions struct {
	// StrictAudit returns audit log failures instead of only logging them.
	StrictAudit bool
}

// MaterialService runs the full pipeline for a target: document, context,
// resolution, loading and the audit entry.
type MaterialService struct {
	tables   *TableService
	resolver *Resolver
	loader   *LoaderService
	history  ports.ResolutionLog
	features entities.FeatureState
	opts     MaterialServiceOptions
	logger   *slog.Logger
}

// NewMaterialService creates a new material service. history may be nil.
func NewMaterialService(
	tables *TableService,
	resolver *Resolver,
	loader *LoaderService,
	history ports.ResolutionLog,
	features entities.FeatureState,
	opts MaterialServiceOptions,
	logger *slog.Logger,
) *MaterialService {
	return &MaterialService{
		tables:   tables,
		resolver: resolver,
		loader:   loader,
		history:  history,
		features: features,
		opts:     opts,
		logger:   logger,
	}
}

// Apply resolves and loads the materials for target in the given world.
// Soft failures end up in the outcome; only a strict audit failure is
// returned as an error.
func (s *MaterialService) Apply(ctx context.Context, target string, world ports.WorldState) (*Outcome, error) {
	name := CleanTargetName(target)
	if IsResourcePackTarget(name) {
		s.logger.Debug("skipping resource pack target", "target", target)
		return &Outcome{Target: name, Skipped: true}, nil
	}

	tableResult := s.tables.Load(ctx, name)
	rc := BuildContext(world, s.features)

	var record entities.ResolvedRecord
	if tableResult.IsRegionDocument() {
		record = s.resolver.ResolveRegion(rc, tableResult.Regions)
	} else {
		record = s.resolver.Resolve(rc, tableResult.Table)
	}

	diagnostics := append([]error(nil), tableResult.Diagnostics...)
	if !record.IsResolved() {
		diagnostics = append(diagnostics, fmt.Errorf("%s: %w", name, entities.ErrUnresolved))
		s.logger.Warn("no materials resolved",
			"target", name,
			"category", rc.Category,
			"region", rc.RegionName,
			"winter", rc.IsWinter,
		)
	} else {
		s.logger.Debug("materials resolved",
			"target", name,
			"rule", record.Rule,
			"source", record.SourceCategory,
			"source_region", record.SourceRegion,
			"season", record.SourceSeason,
			"refs", len(record.Refs),
		)
	}

	load := s.loader.Load(ctx, record.Refs)

	outcome := &Outcome{
		Target:      name,
		Context:     rc,
		Record:      record,
		Load:        load,
		Diagnostics: diagnostics,
	}

	if s.history == nil {
		return outcome, nil
	}

	entry := newResolutionEntry(s.resolver.Profile().Name, outcome)
	if err := s.history.LogResolution(ctx, entry); err != nil {
		if s.opts.StrictAudit {
			return outcome, fmt.Errorf("logging resolution: %w", err)
		}
		s.logger.Error("failed to log resolution", "target", name, "error", err)
		return outcome, nil
	}
	outcome.EntryID = entry.ID

	return outcome, nil
}

func newResolutionEntry(profile string, o *Outcome) entities.ResolutionEntry {
	return entities.ResolutionEntry{
		ID:             uuid.New().String(),
		Target:         o.Target,
		Profile:        profile,
		Category:       o.Context.Category,
		RegionName:     o.Context.RegionName,
		IsWinter:       o.Context.IsWinter,
		Features:       o.Context.Features.Flags(),
		Status:         o.Record.Status,
		Rule:           o.Record.Rule,
		SourceCategory: o.Record.SourceCategory,
		SourceSeason:   o.Record.SourceSeason,
		Refs:           o.Record.Refs,
		Trail:          o.Record.Trail,
		Loaded:         len(o.Load.Handles),
		Failed:         len(o.Load.Failures),
		CreatedAt:      time.Now().UTC(),
	}
}
