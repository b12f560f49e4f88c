package drupal

import (
	"strings"

	"github.com/drupkit/drupkit/pkg/models"
)

// The classifier works on bare filenames only and never touches the
// filesystem. Every function is total: an unknown entity type yields an
// empty selection or an absent identifier, never an error.

// BundleFiles selects the filenames declaring bundles of the given entity
// type.
func BundleFiles(names []string, et models.EntityType) []string {
	ps, ok := patterns[et]
	if !ok {
		return nil
	}
	var out []string
	for _, name := range names {
		if _, ok := cutIdentifier(name, ps.bundlePrefix); ok {
			out = append(out, name)
		}
	}
	return out
}

// BundleID extracts the bundle machine name from a bundle filename.
func BundleID(name string, et models.EntityType) (string, bool) {
	ps, ok := patterns[et]
	if !ok {
		return "", false
	}
	return cutIdentifier(name, ps.bundlePrefix)
}

// StorageFiles selects the filenames declaring field storages of the given
// entity type.
func StorageFiles(names []string, et models.EntityType) []string {
	ps, ok := patterns[et]
	if !ok {
		return nil
	}
	var out []string
	for _, name := range names {
		if _, ok := cutIdentifier(name, ps.storagePrefix); ok {
			out = append(out, name)
		}
	}
	return out
}

// StorageFieldName extracts the field machine name from a storage filename.
func StorageFieldName(name string, et models.EntityType) (string, bool) {
	ps, ok := patterns[et]
	if !ok {
		return "", false
	}
	return cutIdentifier(name, ps.storagePrefix)
}

// InstanceFiles selects the filenames attaching fields to exactly the given
// bundle. A bundle id that is a prefix of another ("page" vs "page2") never
// matches the longer one.
func InstanceFiles(names []string, et models.EntityType, bundle string) []string {
	ps, ok := patterns[et]
	if !ok {
		return nil
	}
	var out []string
	for _, name := range names {
		if _, ok := cutBundleField(name, ps.instancePrefix, bundle); ok {
			out = append(out, name)
		}
	}
	return out
}

// InstanceFieldName extracts the field machine name from an instance
// filename scoped to the given bundle.
func InstanceFieldName(name string, et models.EntityType, bundle string) (string, bool) {
	ps, ok := patterns[et]
	if !ok {
		return "", false
	}
	return cutBundleField(name, ps.instancePrefix, bundle)
}

// OverrideFiles selects the base-field override filenames scoped to exactly
// the given bundle.
func OverrideFiles(names []string, et models.EntityType, bundle string) []string {
	ps, ok := patterns[et]
	if !ok {
		return nil
	}
	var out []string
	for _, name := range names {
		if _, ok := cutBundleField(name, ps.overridePrefix, bundle); ok {
			out = append(out, name)
		}
	}
	return out
}

// OverrideFieldName extracts the field machine name from a base-field
// override filename scoped to the given bundle.
func OverrideFieldName(name string, et models.EntityType, bundle string) (string, bool) {
	ps, ok := patterns[et]
	if !ok {
		return "", false
	}
	return cutBundleField(name, ps.overridePrefix, bundle)
}

// cutIdentifier strips the prefix and the .yml extension and validates the
// remainder as a single machine name. "node.type.foo.bar.yml" fails because
// the remainder contains a dot.
func cutIdentifier(name, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, yamlExt)
	if !ok || !IsMachineName(id) {
		return "", false
	}
	return id, true
}

// cutBundleField strips the prefix and the .yml extension and requires the
// remainder to be the exact bundle segment followed by a field machine name.
func cutBundleField(name, prefix, bundle string) (string, bool) {
	if !IsMachineName(bundle) {
		return "", false
	}
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return "", false
	}
	rest, ok = strings.CutSuffix(rest, yamlExt)
	if !ok {
		return "", false
	}
	field, ok := strings.CutPrefix(rest, bundle+".")
	if !ok || !IsMachineName(field) {
		return "", false
	}
	return field, true
}
