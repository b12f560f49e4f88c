package drupal

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/drupkit/drupkit/pkg/models"
)

// yamlExt is the extension every configuration document carries.
const yamlExt = ".yml"

// patternSet holds the filename conventions and document keys of one entity
// type. The registry below is the single source of truth; there is no
// runtime registration.
type patternSet struct {
	bundlePrefix   string
	storagePrefix  string
	instancePrefix string
	overridePrefix string

	// idKey and labelKey name the bundle document keys that carry the
	// machine name and the human label. They differ per entity type.
	idKey    string
	labelKey string

	// modules lists what a freshly scaffolded bundle of this type needs
	// enabled in core.extension.yml. Empty when every standard profile
	// already ships the type.
	modules []string
}

var patterns = map[models.EntityType]patternSet{
	models.EntityNode: {
		bundlePrefix:   "node.type.",
		storagePrefix:  "field.storage.node.",
		instancePrefix: "field.field.node.",
		overridePrefix: "core.base_field_override.node.",
		idKey:          "type",
		labelKey:       "name",
	},
	models.EntityMedia: {
		bundlePrefix:   "media.type.",
		storagePrefix:  "field.storage.media.",
		instancePrefix: "field.field.media.",
		overridePrefix: "core.base_field_override.media.",
		idKey:          "id",
		labelKey:       "label",
		modules:        []string{"media"},
	},
	models.EntityParagraph: {
		bundlePrefix:   "paragraphs.paragraphs_type.",
		storagePrefix:  "field.storage.paragraph.",
		instancePrefix: "field.field.paragraph.",
		overridePrefix: "core.base_field_override.paragraph.",
		idKey:          "id",
		labelKey:       "label",
		modules:        []string{"paragraphs", "entity_reference_revisions"},
	},
	models.EntityTaxonomyTerm: {
		bundlePrefix:   "taxonomy.vocabulary.",
		storagePrefix:  "field.storage.taxonomy_term.",
		instancePrefix: "field.field.taxonomy_term.",
		overridePrefix: "core.base_field_override.taxonomy_term.",
		idKey:          "vid",
		labelKey:       "name",
	},
	models.EntityBlockContent: {
		bundlePrefix:   "block_content.type.",
		storagePrefix:  "field.storage.block_content.",
		instancePrefix: "field.field.block_content.",
		overridePrefix: "core.base_field_override.block_content.",
		idKey:          "id",
		labelKey:       "label",
		modules:        []string{"block_content"},
	},
}

var machineName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// IsMachineName reports whether s is a valid Drupal machine name.
func IsMachineName(s string) bool {
	return machineName.MatchString(s)
}

// RequiredModules returns the modules a scaffolded bundle of the given
// entity type depends on.
func RequiredModules(et models.EntityType) []string {
	return slices.Clone(patterns[et].modules)
}

// BundleFilename returns the configuration filename declaring a bundle of
// the given entity type.
func BundleFilename(et models.EntityType, bundle string) (string, error) {
	ps, ok := patterns[et]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, et)
	}
	return ps.bundlePrefix + bundle + yamlExt, nil
}

// StorageFilename returns the configuration filename declaring a field
// storage of the given entity type.
func StorageFilename(et models.EntityType, field string) (string, error) {
	ps, ok := patterns[et]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, et)
	}
	return ps.storagePrefix + field + yamlExt, nil
}

// InstanceFilename returns the configuration filename attaching a field to
// a bundle of the given entity type.
func InstanceFilename(et models.EntityType, bundle, field string) (string, error) {
	ps, ok := patterns[et]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, et)
	}
	return ps.instancePrefix + bundle + "." + field + yamlExt, nil
}
