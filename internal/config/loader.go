package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/drupkit/drupkit/pkg/models"
)

// Load reads settings.yaml from the drupkit home and returns the merged
// settings with defaults applied for missing fields. A missing file yields
// the defaults; a malformed file is skipped with a warning rather than
// failing the command that asked for settings. The merged settings are
// validated before being returned.
func Load() (*models.Settings, error) {
	home, err := KitHome()
	if err != nil {
		return nil, err
	}
	return LoadFrom(home)
}

// LoadFrom is Load rooted at an explicit drupkit home directory.
func LoadFrom(home string) (*models.Settings, error) {
	settings := NewDefaultSettings()

	loaded, err := loadYAMLFile(home, SettingsFilename, settings)
	if err != nil {
		slog.Warn("failed to load settings, using defaults", "error", err)
		settings = NewDefaultSettings()
	}
	if loaded {
		applyDefaults(settings)
	}

	if err := Validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save persists the settings to settings.yaml under the drupkit home,
// creating the directory if needed. The write is atomic.
func Save(settings *models.Settings) error {
	home, err := KitHome()
	if err != nil {
		return err
	}
	return SaveTo(home, settings)
}

// SaveTo is Save rooted at an explicit drupkit home directory.
func SaveTo(home string, settings *models.Settings) error {
	if err := os.MkdirAll(home, 0o755); err != nil {
		return fmt.Errorf("create drupkit home: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return atomicWrite(filepath.Join(home, SettingsFilename), data)
}

// applyDefaults fills fields the settings file left at their zero value so
// downstream code never needs a fallback of its own.
func applyDefaults(settings *models.Settings) {
	if settings.Sync.Concurrency == 0 {
		settings.Sync.Concurrency = DefaultSyncConcurrency
	}
	if settings.Drush.Bin == "" {
		settings.Drush.Bin = DefaultDrushBin
	}
}

// loadYAMLFile reads a YAML file from the given directory and unmarshals it
// into the target struct. Returns (true, nil) if the file was found and parsed,
// (false, nil) if the file does not exist, or (false, error) on failure.
func loadYAMLFile(dir, filename string, target any) (bool, error) {
	path := filepath.Join(dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w", filename, ErrInvalidYAML)
	}

	return true, nil
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".drupkit-settings-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
