// Package models provides shared data models and types for drupkit.
//
// This package contains the schema model produced by the configuration
// synchronizer, the project bookkeeping record, and the kit settings
// structure that are used across multiple packages in the drupkit codebase.
//
// # Entity Types
//
// Drupal content entities are modeled as a closed enumeration:
//   - node: standard content pages
//   - media: managed media items
//   - paragraph: nested composite components
//   - taxonomy_term: vocabulary terms
//   - block_content: custom block content
//
// Use [EntityType] and its constants:
//
//	et := models.EntityNode
//	if et.IsValid() {
//	    fmt.Println("Valid entity type:", et)
//	}
//
// # Schema Model
//
// A synchronization pass over a configuration export directory produces an
// [EntityIndex]: a mapping from entity type to bundles, each bundle carrying
// its merged [FieldDescriptor] set. The index is serializable and is
// persisted inside a [Project] record between runs.
package models
