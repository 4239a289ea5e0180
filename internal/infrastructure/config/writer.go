package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# cmat configuration

# climate, rocks, terrain or a name from profiles.yaml
profile: climate

log:
  level: info   # debug, info, warn, error
  format: text  # text, json

documents:
  dir: materials

archive:
  backend: sqlite   # dir, sqlite, qdrant
  # dir: textures   # texture replacement folder, tried before the backend
  policy: omit      # omit, placeholder
  # placeholder: textures/missing.png
  concurrency: 4

audit:
  enabled: true
  strict: false

features:
  # enabled: [biomes, snowless]
  # installed: [3b4319ac-34bb-411d-aa2c-d52b7b9eb69d]

sqlite:
  path: .cmat/cmat.db

qdrant:
  host: localhost
  port: 6334
  collection: cmat_archive
  # api_key: your-api-key (or set QDRANT_API_KEY env var)
`

// WriteDefault creates the .cmat directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := ConfigFilePath(basePath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Write writes the given config to the config file.
func Write(basePath string, cfg *Config) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ConfigFilePath(basePath), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
