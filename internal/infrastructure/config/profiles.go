package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

// ProfilesConfig holds user-defined resolution profiles (read/write).
type ProfilesConfig struct {
	Profiles map[string]ProfileEntry `yaml:"profiles,omitempty"`
}

// ProfileEntry derives a profile from a built-in one.
type ProfileEntry struct {
	Base        string            `yaml:"base,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Edges       map[string]string `yaml:"edges,omitempty"`
	// Gated maps a category to the feature that must be enabled for its
	// entry to be used.
	Gated   map[string]string `yaml:"gated,omitempty"`
	NoRules bool              `yaml:"no_rules,omitempty"`
}

// LoadProfiles loads custom profiles from the .cmat directory.
func LoadProfiles(basePath string) (*ProfilesConfig, error) {
	data, err := os.ReadFile(ProfilesFilePath(basePath))
	if os.IsNotExist(err) {
		// Return empty config if file doesn't exist
		return &ProfilesConfig{
			Profiles: make(map[string]ProfileEntry),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}

	var cfg ProfilesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing profiles file: %w", err)
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]ProfileEntry)
	}

	return &cfg, nil
}

// Save writes the profiles to the profiles file.
func (p *ProfilesConfig) Save(basePath string) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profiles config: %w", err)
	}

	if err := os.WriteFile(ProfilesFilePath(basePath), data, 0644); err != nil {
		return fmt.Errorf("writing profiles file: %w", err)
	}

	return nil
}

// Add adds a profile under its sanitized name and returns that name.
func (p *ProfilesConfig) Add(name string, entry ProfileEntry) string {
	if p.Profiles == nil {
		p.Profiles = make(map[string]ProfileEntry)
	}
	name = SanitizeName(name)
	p.Profiles[name] = entry
	return name
}

// Remove removes a profile from the configuration.
func (p *ProfilesConfig) Remove(name string) {
	if p.Profiles != nil {
		delete(p.Profiles, name)
	}
}

// Names returns the custom profile names, sorted.
func (p *ProfilesConfig) Names() []string {
	names := make([]string, 0, len(p.Profiles))
	for name := range p.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the configuration for a specific custom profile.
func (p *ProfilesConfig) Get(name string) (*ProfileEntry, error) {
	if len(p.Profiles) == 0 {
		return nil, errors.New("no custom profiles configured")
	}

	entry, ok := p.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found (available: %s)", name, strings.Join(p.Names(), ", "))
	}

	return &entry, nil
}

// Resolve returns a built-in profile or builds a custom one. Built-in names
// take precedence.
func (p *ProfilesConfig) Resolve(name string) (entities.Profile, error) {
	if profile, err := entities.ProfileByName(name); err == nil {
		return profile, nil
	}

	entry, err := p.Get(name)
	if err != nil {
		return entities.Profile{}, err
	}

	profile, err := entry.Build(name)
	if err != nil {
		return entities.Profile{}, err
	}
	return profile, nil
}

// Build turns the entry into a validated profile.
func (e *ProfileEntry) Build(name string) (entities.Profile, error) {
	base, err := entities.ProfileByName(e.Base)
	if err != nil {
		return entities.Profile{}, fmt.Errorf("profile %s: %w", name, err)
	}

	edges := make(map[entities.Category]entities.Category, len(e.Edges))
	for from, to := range e.Edges {
		fromCat, ok := entities.ParseCategory(from)
		if !ok {
			return entities.Profile{}, fmt.Errorf("profile %s: unknown category %q", name, from)
		}
		toCat, ok := entities.ParseCategory(to)
		if !ok {
			return entities.Profile{}, fmt.Errorf("profile %s: unknown category %q", name, to)
		}
		edges[fromCat] = toCat
	}

	gated := make(map[entities.Category]entities.FeatureFlag, len(base.GatedDirect)+len(e.Gated))
	for c, f := range base.GatedDirect {
		gated[c] = f
	}
	for c, f := range e.Gated {
		cat, ok := entities.ParseCategory(c)
		if !ok {
			return entities.Profile{}, fmt.Errorf("profile %s: unknown category %q", name, c)
		}
		if f == "" {
			delete(gated, cat)
			continue
		}
		gated[cat] = entities.FeatureFlag(strings.ToLower(f))
	}

	profile := entities.Profile{
		Name:        name,
		Graph:       base.Graph.With(edges),
		Rules:       base.Rules,
		GatedDirect: gated,
	}
	if e.NoRules {
		profile.Rules = nil
	}

	if err := profile.Validate(); err != nil {
		return entities.Profile{}, err
	}
	return profile, nil
}

// ProfilesExists checks if a profiles file exists in the given path.
func ProfilesExists(basePath string) bool {
	_, err := os.Stat(ProfilesFilePath(basePath))
	return err == nil
}
