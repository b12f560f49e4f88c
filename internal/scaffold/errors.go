// Package scaffold generates new Drupal configuration documents (bundle
// definitions and field storage/instance pairs) from embedded templates.
// It writes files the synchronization engine can read back verbatim and
// never overwrites configuration that already exists.
package scaffold

import "errors"

// Sentinel errors for scaffold operations.
var (
	// ErrTemplateNotFound indicates the named template does not exist in
	// the embedded filesystem.
	ErrTemplateNotFound = errors.New("scaffold: template not found")

	// ErrMissingTemplateKey indicates the template referenced a key absent
	// from its data (strict mode).
	ErrMissingTemplateKey = errors.New("scaffold: missing template key")

	// ErrInvalidMachineName indicates a bundle or field identifier outside
	// ^[a-z][a-z0-9_]*$.
	ErrInvalidMachineName = errors.New("scaffold: invalid machine name")

	// ErrUnknownFieldType indicates a field type outside the supported set.
	ErrUnknownFieldType = errors.New("scaffold: unknown field type")

	// ErrFileExists indicates the target configuration file already exists;
	// scaffolding never overwrites.
	ErrFileExists = errors.New("scaffold: configuration file already exists")
)
