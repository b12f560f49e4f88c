package config

import "github.com/drupkit/drupkit/pkg/models"

const (
	// SettingsFilename is the settings file name under the drupkit home.
	SettingsFilename = "settings.yaml"

	// DefaultDrushBin is the drush executable looked up on PATH when the
	// settings do not name one.
	DefaultDrushBin = "drush"

	// DefaultSyncConcurrency bounds concurrent configuration file parses
	// during a synchronization pass.
	DefaultSyncConcurrency = 8
)

// NewDefaultSettings returns the compiled-in settings used when no settings
// file exists or a section is missing from it.
func NewDefaultSettings() *models.Settings {
	return &models.Settings{
		Sync: models.SyncSettings{
			Concurrency: DefaultSyncConcurrency,
		},
		Drush: models.DrushSettings{
			Bin: DefaultDrushBin,
		},
		UI: models.UISettings{
			NoColor: false,
		},
	}
}
