package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ersonp/climate-materials/internal/application/handlers"
	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
	"github.com/ersonp/climate-materials/internal/domain/services"
	"github.com/ersonp/climate-materials/internal/infrastructure/archive"
	"github.com/ersonp/climate-materials/internal/infrastructure/config"
	"github.com/ersonp/climate-materials/internal/infrastructure/documents"
	"github.com/ersonp/climate-materials/internal/infrastructure/logging"
	"github.com/ersonp/climate-materials/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/climate-materials/internal/infrastructure/vectordb/qdrant"
)

// projectDeps holds what every command needs without touching storage.
type projectDeps struct {
	root     string
	config   *config.Config
	profile  entities.Profile
	features entities.FeatureState
	logger   *slog.Logger
	resolver *services.Resolver
}

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config          *config.Config
	Profile         entities.Profile
	Features        entities.FeatureState
	ResolveHandler  *handlers.ResolveHandler
	ValidateHandler *handlers.ValidateHandler
	HistoryHandler  *handlers.HistoryHandler
	ImportHandler   *handlers.ImportHandler
}

// internalDeps holds all dependencies including low-level components.
// Used internally by helper functions.
type internalDeps struct {
	Deps
	relationalDB   *sqlite.Repository
	catalogService *services.CatalogService
}

// withProject loads config and the active profile, then calls the provided
// function. No storage is opened.
func withProject(fn func(*projectDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	p, err := loadProject(cwd)
	if err != nil {
		return err
	}
	return fn(p)
}

func loadProject(root string) (*projectDeps, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if globalLogLevel != "" {
		cfg.Log.Level = globalLogLevel
	}
	if globalProfile != "" {
		cfg.Profile = globalProfile
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	profiles, err := config.LoadProfiles(root)
	if err != nil {
		return nil, fmt.Errorf("loading profiles: %w", err)
	}

	profile, err := profiles.Resolve(cfg.Profile)
	if err != nil {
		return nil, fmt.Errorf("resolving profile: %w", err)
	}

	resolver, err := services.NewResolver(profile)
	if err != nil {
		return nil, err
	}

	return &projectDeps{
		root:     root,
		config:   cfg,
		profile:  profile,
		features: cfg.FeatureState(),
		logger:   logger,
		resolver: resolver,
	}, nil
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withInternalDeps(ctx, func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
// Used by commands that need direct repository or service access.
func withInternalDeps(ctx context.Context, fn func(*internalDeps) error) error {
	return withProject(func(p *projectDeps) error {
		cfg := p.config

		// Initialize RelationalDB (SQLite)
		sqlitePath := config.ResolvePath(p.root, cfg.SQLite.Path)
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
		relationalDB, err := sqlite.NewRepository(config.SQLiteConfig{Path: sqlitePath})
		if err != nil {
			return fmt.Errorf("creating sqlite repository: %w", err)
		}
		defer relationalDB.Close()

		// Ensure schema exists
		if err := relationalDB.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensuring sqlite schema: %w", err)
		}

		catalog, closeCatalog, err := openCatalog(ctx, cfg, relationalDB)
		if err != nil {
			return err
		}
		defer closeCatalog()

		arch, err := buildArchive(p.root, cfg.Archive, catalog)
		if err != nil {
			return err
		}

		policy, err := services.ParsePlaceholderPolicy(cfg.Archive.Policy)
		if err != nil {
			return err
		}

		var history ports.ResolutionLog
		if cfg.Audit.Enabled {
			history = relationalDB
		}

		docs := documents.NewFS(config.ResolvePath(p.root, cfg.Documents.Dir))
		tableService := services.NewTableService(docs, p.logger)
		loaderService := services.NewLoaderService(arch, services.LoaderOptions{
			Policy:              policy,
			PlaceholderLocation: cfg.Archive.Placeholder,
			Concurrency:         cfg.Archive.Concurrency,
		}, p.logger)
		materialService := services.NewMaterialService(
			tableService,
			p.resolver,
			loaderService,
			history,
			p.features,
			services.MaterialServiceOptions{StrictAudit: cfg.Audit.Strict},
			p.logger,
		)
		catalogService := services.NewCatalogService(catalog)

		deps := &internalDeps{
			Deps: Deps{
				Config:          cfg,
				Profile:         p.profile,
				Features:        p.features,
				ResolveHandler:  handlers.NewResolveHandler(materialService),
				ValidateHandler: handlers.NewValidateHandler(p.resolver),
				HistoryHandler:  handlers.NewHistoryHandler(relationalDB),
				ImportHandler:   handlers.NewImportHandler(catalogService),
			},
			relationalDB:   relationalDB,
			catalogService: catalogService,
		}

		return fn(deps)
	})
}

// openCatalog returns the archive catalog selected by the backend. The
// SQLite database doubles as the catalog unless Qdrant is configured.
func openCatalog(ctx context.Context, cfg *config.Config, relationalDB *sqlite.Repository) (ports.ArchiveCatalog, func(), error) {
	if cfg.Archive.Backend != config.BackendQdrant {
		// Closed by the caller's deferred relationalDB.Close.
		return relationalDB, func() {}, nil
	}

	repo, err := qdrant.NewRepository(cfg.Qdrant)
	if err != nil {
		return nil, nil, fmt.Errorf("creating qdrant repository: %w", err)
	}
	if err := repo.EnsureCollection(ctx); err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("ensuring qdrant collection: %w", err)
	}
	return repo, func() { repo.Close() }, nil
}

// buildArchive chains the texture directory, when configured, in front of
// the catalog. The dir backend uses the directory alone.
func buildArchive(root string, cfg config.ArchiveConfig, catalog ports.Archive) (ports.Archive, error) {
	switch cfg.Backend {
	case config.BackendDir, config.BackendSQLite, config.BackendQdrant:
	default:
		return nil, fmt.Errorf("unknown archive backend %q (valid: %s, %s, %s)",
			cfg.Backend, config.BackendDir, config.BackendSQLite, config.BackendQdrant)
	}

	if cfg.Dir == "" {
		if cfg.Backend == config.BackendDir {
			return nil, fmt.Errorf("archive.dir is required for the %s backend", config.BackendDir)
		}
		return catalog, nil
	}

	dir, err := archive.NewDir(config.ResolvePath(root, cfg.Dir))
	if err != nil {
		return nil, err
	}
	if cfg.Backend == config.BackendDir {
		return dir, nil
	}
	return archive.NewChain(dir, catalog), nil
}
