package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// LoadGeneration reads a JSON profile from path. Fields missing from the file
// keep their DefaultGeneration values.
func LoadGeneration(path string) (Generation, error) {
	cfg := DefaultGeneration()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read generation profile")
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse generation profile %s", filepath.Base(path))
	}

	// Unnamed profiles are named after their file
	if cfg.Name == "" || cfg.Name == DefaultGeneration().Name {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "profile %s", filepath.Base(path))
	}
	return cfg, nil
}

// ProfileManager handles loading and looking up generation profiles from JSON files
type ProfileManager struct {
	profiles map[string]*Generation
}

// NewProfileManager creates an empty profile manager
func NewProfileManager() *ProfileManager {
	return &ProfileManager{
		profiles: make(map[string]*Generation),
	}
}

// LoadProfilesFromDirectory loads every *.json profile in a directory
func (m *ProfileManager) LoadProfilesFromDirectory(directory string) error {
	files, err := filepath.Glob(filepath.Join(directory, "*.json"))
	if err != nil {
		return errors.Wrap(err, "failed to read profile directory")
	}

	for _, file := range files {
		if err := m.LoadProfileFromFile(file); err != nil {
			return errors.Wrapf(err, "failed to load profile from %s", filepath.Base(file))
		}
	}

	return nil
}

// LoadProfileFromFile loads a single profile and registers it under its name
func (m *ProfileManager) LoadProfileFromFile(path string) error {
	cfg, err := LoadGeneration(path)
	if err != nil {
		return err
	}

	if _, exists := m.profiles[cfg.Name]; exists {
		return errors.Errorf("duplicate profile name %q", cfg.Name)
	}
	m.profiles[cfg.Name] = &cfg
	return nil
}

// GetProfile returns a profile by name, or nil
func (m *ProfileManager) GetProfile(name string) *Generation {
	return m.profiles[name]
}

// GetAllProfiles returns all loaded profiles ordered by name
func (m *ProfileManager) GetAllProfiles() []*Generation {
	result := make([]*Generation, 0, len(m.profiles))
	for _, p := range m.profiles {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// SelectProfile resolves the command line profile choice: a single file when
// path is set, otherwise the named profile from dir, otherwise the defaults.
// An empty name selects the profile called "default".
func SelectProfile(path, dir, name string) (Generation, error) {
	if path != "" {
		return LoadGeneration(path)
	}
	if dir == "" {
		return DefaultGeneration(), nil
	}

	m := NewProfileManager()
	if err := m.LoadProfilesFromDirectory(dir); err != nil {
		return Generation{}, err
	}
	if name == "" {
		name = DefaultGeneration().Name
	}
	if p := m.GetProfile(name); p != nil {
		return *p, nil
	}

	names := make([]string, 0, len(m.profiles))
	for _, p := range m.GetAllProfiles() {
		names = append(names, p.Name)
	}
	return Generation{}, errors.Errorf("no profile %q in %s (have %s)", name, dir, strings.Join(names, ", "))
}
