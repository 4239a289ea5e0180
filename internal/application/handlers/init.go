// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ersonp/climate-materials/internal/infrastructure/config"
)

// SchemaInitializer prepares persistent storage.
type SchemaInitializer interface {
	EnsureSchema(ctx context.Context) error
}

// InitHandler handles project initialization.
type InitHandler struct {
	store SchemaInitializer
}

// NewInitHandler creates a new init handler. store may be nil.
func NewInitHandler(store SchemaInitializer) *InitHandler {
	return &InitHandler{
		store: store,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath    string
	DocumentsDir  string
	ExamplePath   string
	SchemaCreated bool
}

// ExampleDocument is written to the documents directory on init.
const ExampleDocument = `{
  "woodlands": {
    "defaultMaterials": [{"archive": 302, "record": 1, "frame": 0}],
    "winterMaterials": [{"archive": 302, "record": 1, "frame": 1}]
  },
  "desert": {
    "defaultMaterials": [{"archive": 112, "record": 3, "frame": 0}],
    "winterMaterials": []
  },
  "mountainBalfiera": {
    "defaultMaterials": [{"archive": 420, "record": 0, "frame": 2}]
  }
}
`

// Handle writes the default configuration and an example document.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("cmat already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	docsDir := config.ResolvePath(basePath, cfg.Documents.Dir)
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating documents directory: %w", err)
	}

	result := &InitResult{
		ConfigPath:   config.ConfigFilePath(basePath),
		DocumentsDir: docsDir,
	}

	example := filepath.Join(docsDir, "example.json")
	if _, err := os.Stat(example); os.IsNotExist(err) {
		if err := os.WriteFile(example, []byte(ExampleDocument), 0644); err != nil {
			return nil, fmt.Errorf("writing example document: %w", err)
		}
		result.ExamplePath = example
	}

	if h.store != nil {
		if err := h.store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("creating schema: %w", err)
		}
		result.SchemaCreated = true
	}

	return result, nil
}
