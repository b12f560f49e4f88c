package drupal

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// rolePrefix is the filename convention for role documents.
const rolePrefix = "user.role."

// RoleDocument mirrors user.role.*.yml: a named role and the full
// permission keys granted to it. Unmodeled top-level keys survive a
// load/save round trip.
type RoleDocument struct {
	ID          string         `yaml:"id"`
	Label       string         `yaml:"label"`
	Permissions []string       `yaml:"permissions"`
	Rest        map[string]any `yaml:",inline"`
}

// RoleFilename returns the configuration filename declaring a role.
func RoleFilename(id string) string {
	return rolePrefix + id + yamlExt
}

// RoleFiles selects the role filenames from a directory listing.
func RoleFiles(names []string) []string {
	var out []string
	for _, name := range names {
		if _, ok := cutIdentifier(name, rolePrefix); ok {
			out = append(out, name)
		}
	}
	return out
}

// RoleID extracts the role machine name from a role filename.
func RoleID(name string) (string, bool) {
	return cutIdentifier(name, rolePrefix)
}

// LoadRole reads the role document at path. Unlike bulk synchronization,
// the caller named this file explicitly, so both absence and bad syntax are
// reported.
func LoadRole(path string) (*RoleDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc RoleDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, ErrInvalidYAML)
	}
	return &doc, nil
}

// SaveRole writes the role document to path with its permissions sorted,
// matching how Drupal exports them.
func SaveRole(path string, doc *RoleDocument) error {
	slices.Sort(doc.Permissions)
	data, err := marshalYAML(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// HasPermission reports whether the role carries the full permission key.
func (d *RoleDocument) HasPermission(key string) bool {
	return slices.Contains(d.Permissions, key)
}

// Grant adds the given full permission keys, ignoring ones already present,
// and keeps the list sorted. It returns how many keys were actually added.
func (d *RoleDocument) Grant(keys ...string) int {
	added := 0
	for _, key := range keys {
		if key == "" || d.HasPermission(key) {
			continue
		}
		d.Permissions = append(d.Permissions, key)
		added++
	}
	slices.Sort(d.Permissions)
	return added
}

// Revoke removes the given full permission keys. Revoking an absent key is
// a no-op. It returns how many keys were actually removed.
func (d *RoleDocument) Revoke(keys ...string) int {
	removed := 0
	for _, key := range keys {
		i := slices.Index(d.Permissions, key)
		if i < 0 {
			continue
		}
		d.Permissions = slices.Delete(d.Permissions, i, i+1)
		removed++
	}
	return removed
}

// BundleGrants returns the role's permission keys that decode to the given
// entity type and bundle.
func (d *RoleDocument) BundleGrants(p Permission) []string {
	var out []string
	for _, key := range d.Permissions {
		decoded, ok := DecodePermission(key)
		if !ok {
			continue
		}
		if decoded.EntityType == p.EntityType && decoded.Bundle == p.Bundle {
			out = append(out, key)
		}
	}
	return out
}

// DisplayName renders the role for terminal listings.
func (d *RoleDocument) DisplayName() string {
	if d.Label == "" || strings.EqualFold(d.Label, d.ID) {
		return d.ID
	}
	return fmt.Sprintf("%s (%s)", d.Label, d.ID)
}
