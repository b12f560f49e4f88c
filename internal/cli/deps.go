// Package cli provides the Cobra command tree and dependency wiring for
// the drupkit CLI. This file defines the Dependencies struct (Composition
// Root) that wires the settings, project store and terminal UI together.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/drupkit/drupkit/internal/config"
	"github.com/drupkit/drupkit/internal/drupal"
	"github.com/drupkit/drupkit/internal/drush"
	"github.com/drupkit/drupkit/internal/project"
	"github.com/drupkit/drupkit/internal/ui"
	"github.com/drupkit/drupkit/pkg/models"
)

// Dependencies holds the services used by CLI commands. It is the only
// place where concrete types are instantiated and wired together.
type Dependencies struct {
	Home     string
	Settings *models.Settings
	Store    *project.Store
	Headless *ui.HeadlessManager
	Logger   *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
// CLI commands access this through the package-level variable.
var deps *Dependencies

// InitDependencies creates the dependency container. The settings file and
// project store are loaded lazily by EnsureSettings because they need the
// kit home directory, which can fail.
func InitDependencies() {
	deps = &Dependencies{
		Headless: ui.NewHeadlessManager(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// EnsureSettings lazily loads the kit home, the settings file and the
// project store. Subsequent calls are no-ops.
func (d *Dependencies) EnsureSettings() error {
	if d.Settings != nil {
		return nil
	}
	home, err := config.KitHome()
	if err != nil {
		return fmt.Errorf("locate drupkit home: %w", err)
	}
	settings, err := config.LoadFrom(home)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	d.Home = home
	d.Settings = settings
	d.Store = project.NewStore(home, project.WithLogger(d.Logger))
	return nil
}

// SaveSettings persists the current settings to the kit home.
func (d *Dependencies) SaveSettings() error {
	return config.SaveTo(d.Home, d.Settings)
}

// NewProgress builds terminal progress indicators honoring the color
// settings.
func (d *Dependencies) NewProgress() ui.Progress {
	theme := ui.DefaultTheme()
	if d.Settings != nil {
		theme.NoColor = d.Settings.UI.NoColor
	}
	return ui.NewProgress(theme, d.Headless)
}

// NewSynchronizer builds the configuration synchronizer with the settings'
// concurrency bound.
func (d *Dependencies) NewSynchronizer() *drupal.Synchronizer {
	opts := []drupal.SyncOption{drupal.WithLogger(d.Logger)}
	if d.Settings != nil && d.Settings.Sync.Concurrency > 0 {
		opts = append(opts, drupal.WithConcurrency(d.Settings.Sync.Concurrency))
	}
	return drupal.NewSynchronizer(opts...)
}

// NewDrushRunner builds a drush runner working in dir.
func (d *Dependencies) NewDrushRunner(dir string) drush.Runner {
	opts := []drush.RunnerOption{
		drush.WithDir(dir),
		drush.WithLogger(d.Logger),
	}
	if d.Settings != nil {
		if d.Settings.Drush.Bin != "" {
			opts = append(opts, drush.WithBin(d.Settings.Drush.Bin))
		}
		if len(d.Settings.Drush.Args) > 0 {
			opts = append(opts, drush.WithBaseArgs(d.Settings.Drush.Args))
		}
	}
	return drush.NewExecRunner(opts...)
}
