package drupal

import "errors"

// Sentinel errors for engine operations.
var (
	// ErrConfigDirNotFound indicates the configuration export directory is
	// missing or is not a directory.
	ErrConfigDirNotFound = errors.New("drupal: configuration directory not found")

	// ErrUnknownEntityType indicates a caller passed an entity type outside
	// the supported set. This is a caller bug, not a data problem.
	ErrUnknownEntityType = errors.New("drupal: unknown entity type")

	// ErrEmptyFieldName indicates a field document without a usable
	// field_name value.
	ErrEmptyFieldName = errors.New("drupal: field document has no field name")

	// ErrInvalidYAML indicates invalid YAML syntax in an explicitly named
	// document such as core.extension.yml or a role file.
	ErrInvalidYAML = errors.New("drupal: invalid YAML syntax")

	// ErrRoleNotFound indicates the requested role document does not exist.
	ErrRoleNotFound = errors.New("drupal: role not found")
)
