// Package project stores drupkit project records: named pointers to Drupal
// configuration export directories plus the schema index from the last
// synchronization. Records are JSON files under <drupkit home>/projects.
package project

import "errors"

// Sentinel errors for project store operations.
var (
	// ErrProjectNotFound indicates no record exists for the requested name.
	ErrProjectNotFound = errors.New("project: project not found")

	// ErrProjectExists indicates a record with the same name already exists.
	ErrProjectExists = errors.New("project: project already exists")

	// ErrInvalidName indicates a project name that cannot become a record
	// filename.
	ErrInvalidName = errors.New("project: invalid project name")

	// ErrConfigDirNotDetected indicates no configuration export directory
	// was found walking up from the starting point.
	ErrConfigDirNotDetected = errors.New("project: no configuration directory detected")
)
