package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple lowercase",
			input:    "rocks",
			expected: "rocks",
		},
		{
			name:     "uppercase converted",
			input:    "WinterRocks",
			expected: "winterrocks",
		},
		{
			name:     "spaces and hyphens to underscores",
			input:    "north - coast",
			expected: "north_coast",
		},
		{
			name:     "special characters removed",
			input:    "dak'fron!",
			expected: "dakfron",
		},
		{
			name:     "empty string returns default",
			input:    "",
			expected: "default",
		},
		{
			name:     "only special chars returns default",
			input:    "!!!",
			expected: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeName(tt.input))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cmat init")
}

func TestWriteDefault_ThenLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestWriteDefault_AlreadyExists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))

	err := WriteDefault(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
	yml := `profile: terrain
archive:
  backend: qdrant
  policy: placeholder
features:
  enabled: [biomes]
`
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(yml), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "terrain", cfg.Profile)
	assert.Equal(t, BackendQdrant, cfg.Archive.Backend)
	assert.Equal(t, "placeholder", cfg.Archive.Policy)
	assert.Equal(t, 4, cfg.Archive.Concurrency)
	assert.Equal(t, "localhost", cfg.Qdrant.Host)
	assert.True(t, cfg.FeatureState().Enabled(entities.FeatureBiomes))
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))
	t.Setenv("CMAT_PROFILE", "rocks")
	t.Setenv("CMAT_ARCHIVE_CONCURRENCY", "16")
	t.Setenv("CMAT_FEATURES", "snowless,biomes")
	t.Setenv("QDRANT_API_KEY", "secret")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "rocks", cfg.Profile)
	assert.Equal(t, 16, cfg.Archive.Concurrency)
	assert.Equal(t, []string{"snowless", "biomes"}, cfg.Features.Enabled)
	assert.Equal(t, "secret", cfg.Qdrant.APIKey)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_InvalidEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))
	t.Setenv("CMAT_ARCHIVE_CONCURRENCY", "many")

	_, err := Load(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestConfig_FeatureState(t *testing.T) {
	tests := []struct {
		name     string
		features FeaturesConfig
		biomes   bool
		snowless bool
	}{
		{
			name:     "none",
			features: FeaturesConfig{Packs: DefaultPacks()},
		},
		{
			name:     "explicit flags",
			features: FeaturesConfig{Enabled: []string{" Biomes "}},
			biomes:   true,
		},
		{
			name:     "installed biomes pack",
			features: FeaturesConfig{Installed: []string{BiomesPackGUID}, Packs: DefaultPacks()},
			biomes:   true,
		},
		{
			name:     "installed alternate snowless pack without pack map",
			features: FeaturesConfig{Installed: []string{"510E24C8-8FC4-44C0-8927-8786B5BD0FE4"}},
			snowless: true,
		},
		{
			name:     "unknown pack ignored",
			features: FeaturesConfig{Installed: []string{"00000000-0000-0000-0000-000000000000"}, Packs: DefaultPacks()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Features: tt.features}
			state := cfg.FeatureState()
			assert.Equal(t, tt.biomes, state.Enabled(entities.FeatureBiomes))
			assert.Equal(t, tt.snowless, state.Enabled(entities.FeatureSnowless))
		})
	}
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/project", "materials"), ResolvePath("/project", "materials"))
	assert.Equal(t, "/abs/materials", ResolvePath("/project", "/abs/materials"))
	assert.Equal(t, "", ResolvePath("/project", ""))
}

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Profile = "terrain"
	cfg.Features.Enabled = []string{"biomes"}

	require.NoError(t, Write(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
