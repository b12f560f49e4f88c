// Package drupal implements the configuration synchronization engine: a
// bidirectional bridge between a Drupal configuration export directory and
// drupkit's in-memory schema model.
//
// The engine is built from small, separately testable parts:
//
//   - a pattern registry describing the filename conventions and document
//     keys of each supported entity type
//   - a filename classifier that selects and decodes convention-named files
//     without touching the filesystem
//   - a tolerant YAML fragment parser with per-kind projections
//   - a field merge that joins storage definitions with per-bundle instances
//   - a directory synchronizer assembling the [models.EntityIndex]
//   - a reconciler for the enabled-extensions document (core.extension.yml)
//   - a permission key codec translating between short permission names and
//     Drupal's full permission strings
//   - role document handling (user.role.*.yml)
//
// Reading is tolerant: a malformed document costs that one file, never the
// pass. Writing is conservative: reconciliation only ever adds entries and
// leaves everything already present untouched.
package drupal
