package models

// Settings represents the drupkit user settings file
// (~/.drupkit/settings.yaml).
type Settings struct {
	ActiveProject string        `yaml:"active_project"`
	Sync          SyncSettings  `yaml:"sync"`
	Drush         DrushSettings `yaml:"drush"`
	UI            UISettings    `yaml:"ui"`
}

// SyncSettings represents the synchronizer configuration section.
type SyncSettings struct {
	// Concurrency bounds how many configuration files are parsed at once.
	Concurrency int `yaml:"concurrency"`
}

// DrushSettings represents the external drush invocation section.
type DrushSettings struct {
	Bin  string   `yaml:"bin"`
	Args []string `yaml:"args"`
}

// UISettings represents the terminal output section.
type UISettings struct {
	NoColor bool `yaml:"no_color"`
}
