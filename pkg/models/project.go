package models

import "time"

// Project is one tracked Drupal site: a named pointer to a configuration
// export directory plus the schema picture from the last synchronization.
// Records are stored as JSON files under the drupkit home directory.
type Project struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	ConfigDir   string       `json:"config_dir"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	SyncedAt    time.Time    `json:"synced_at,omitzero"`
	Schema      *EntityIndex `json:"schema,omitempty"`
}

// Synced reports whether the project has been synchronized at least once.
func (p *Project) Synced() bool {
	return p.Schema != nil && !p.SyncedAt.IsZero()
}
