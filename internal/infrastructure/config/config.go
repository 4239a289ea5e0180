// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

const (
	// DefaultConfigDir is the directory name for cmat configuration.
	DefaultConfigDir = ".cmat"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultProfilesFile is the default custom profiles file name.
	DefaultProfilesFile = "profiles.yaml"
)

// Archive backends.
const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
	BackendQdrant = "qdrant"
)

// Content pack GUIDs that enable feature flags when installed.
const (
	BiomesPackGUID      = "3b4319ac-34bb-411d-aa2c-d52b7b9eb69d"
	SnowlessPackGUID    = "4f7f8aa1-7bd8-4f33-bd02-bbb5ac758a5d"
	SnowlessAltPackGUID = "510e24c8-8fc4-44c0-8927-8786b5bd0fe4"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config holds static configuration (read-only after init).
type Config struct {
	Profile   string          `yaml:"profile,omitempty" env:"CMAT_PROFILE"`
	Log       LogConfig       `yaml:"log,omitempty"`
	Documents DocumentsConfig `yaml:"documents,omitempty"`
	Archive   ArchiveConfig   `yaml:"archive,omitempty"`
	Audit     AuditConfig     `yaml:"audit,omitempty"`
	Features  FeaturesConfig  `yaml:"features,omitempty"`
	Qdrant    QdrantConfig    `yaml:"qdrant,omitempty"`
	SQLite    SQLiteConfig    `yaml:"sqlite,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" env:"CMAT_LOG_LEVEL"`
	Format string `yaml:"format,omitempty" env:"CMAT_LOG_FORMAT"`
}

// DocumentsConfig locates the per-target material documents.
type DocumentsConfig struct {
	// Dir is relative to the project root unless absolute.
	Dir string `yaml:"dir,omitempty" env:"CMAT_DOCUMENTS_DIR"`
}

// ArchiveConfig selects where resource handles come from.
type ArchiveConfig struct {
	Backend string `yaml:"backend,omitempty" env:"CMAT_ARCHIVE_BACKEND"`
	// Dir is the texture replacement directory used by the dir backend and
	// tried first by the others.
	Dir         string `yaml:"dir,omitempty" env:"CMAT_ARCHIVE_DIR"`
	Policy      string `yaml:"policy,omitempty" env:"CMAT_ARCHIVE_POLICY"`
	Placeholder string `yaml:"placeholder,omitempty" env:"CMAT_ARCHIVE_PLACEHOLDER"`
	Concurrency int    `yaml:"concurrency,omitempty" env:"CMAT_ARCHIVE_CONCURRENCY"`
}

// AuditConfig controls the resolution history.
type AuditConfig struct {
	Enabled bool `yaml:"enabled" env:"CMAT_AUDIT_ENABLED"`
	Strict  bool `yaml:"strict,omitempty" env:"CMAT_AUDIT_STRICT"`
}

// FeaturesConfig lists enabled feature flags directly or through installed
// content packs.
type FeaturesConfig struct {
	Enabled   []string          `yaml:"enabled,omitempty" env:"CMAT_FEATURES" envSeparator:","`
	Installed []string          `yaml:"installed,omitempty" env:"CMAT_INSTALLED_PACKS" envSeparator:","`
	Packs     map[string]string `yaml:"packs,omitempty"`
}

// QdrantConfig holds configuration for the Qdrant archive catalog.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty" env:"CMAT_QDRANT_HOST"`
	Port       int    `yaml:"port,omitempty" env:"CMAT_QDRANT_PORT"`
	Collection string `yaml:"collection,omitempty" env:"CMAT_QDRANT_COLLECTION"`
	APIKey     string `yaml:"api_key,omitempty" env:"QDRANT_API_KEY"`
}

// SQLiteConfig holds configuration for the SQLite database.
type SQLiteConfig struct {
	// Path is relative to the project root unless absolute.
	Path string `yaml:"path,omitempty" env:"CMAT_SQLITE_PATH"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Profile: entities.DefaultProfileName,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Documents: DocumentsConfig{
			Dir: "materials",
		},
		Archive: ArchiveConfig{
			Backend:     BackendSQLite,
			Policy:      "omit",
			Concurrency: 4,
		},
		Audit: AuditConfig{
			Enabled: true,
		},
		Features: FeaturesConfig{
			Packs: DefaultPacks(),
		},
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "cmat_archive",
		},
		SQLite: SQLiteConfig{
			Path: filepath.Join(DefaultConfigDir, "cmat.db"),
		},
	}
}

// DefaultPacks maps known content pack GUIDs to the flags they enable.
func DefaultPacks() map[string]string {
	return map[string]string{
		BiomesPackGUID:      string(entities.FeatureBiomes),
		SnowlessPackGUID:    string(entities.FeatureSnowless),
		SnowlessAltPackGUID: string(entities.FeatureSnowless),
	}
}

// Load loads configuration from the .cmat directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'cmat init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FeatureState derives the enabled flags from the explicit list and the
// installed content packs.
func (c *Config) FeatureState() entities.FeatureState {
	flags := make([]entities.FeatureFlag, 0, len(c.Features.Enabled)+len(c.Features.Installed))
	for _, f := range c.Features.Enabled {
		flags = append(flags, entities.FeatureFlag(f))
	}
	packs := c.Features.Packs
	if packs == nil {
		packs = DefaultPacks()
	}
	for _, guid := range c.Features.Installed {
		if flag, ok := packs[strings.ToLower(strings.TrimSpace(guid))]; ok {
			flags = append(flags, entities.FeatureFlag(flag))
		}
	}
	return entities.NewFeatureState(flags...)
}

// ResolvePath makes p absolute against basePath.
func ResolvePath(basePath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(basePath, p)
}

// ConfigDir returns the path to the .cmat config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// ProfilesFilePath returns the path to the custom profiles file.
func ProfilesFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultProfilesFile)
}

// Exists checks if a cmat config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}

// SanitizeName converts a profile name to a lowercase identifier.
func SanitizeName(name string) string {
	// Convert to lowercase
	name = strings.ToLower(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	// Remove any characters that aren't alphanumeric or underscore
	name = reNonAlphanumeric.ReplaceAllString(name, "")

	// Remove consecutive underscores
	name = reMultipleUnderscores.ReplaceAllString(name, "_")

	// Trim leading/trailing underscores
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}
