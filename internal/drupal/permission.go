package drupal

import (
	"strings"

	"github.com/drupkit/drupkit/pkg/models"
)

// Permission is the decoded form of one Drupal permission string: which
// entity type and bundle it applies to and the short operation name drupkit
// exposes to users.
type Permission struct {
	EntityType models.EntityType
	Bundle     string
	ShortName  string
}

// permissionTemplate is one entry of an entity type's permission vocabulary.
// The full key is prefix + bundle + suffix with exactly one bundle slot.
type permissionTemplate struct {
	short  string
	prefix string
	suffix string
}

// permissionTemplates holds each entity type's ordered permission
// vocabulary. Paragraphs are composite entities and carry no standalone
// grants, so their list is empty: encoding always reports absent and
// decoding never yields a paragraph permission.
var permissionTemplates = map[models.EntityType][]permissionTemplate{
	models.EntityNode: {
		{"create", "create ", " content"},
		{"edit-own", "edit own ", " content"},
		{"edit-any", "edit any ", " content"},
		{"delete-own", "delete own ", " content"},
		{"delete-any", "delete any ", " content"},
		{"view-revisions", "view ", " revisions"},
		{"revert-revisions", "revert ", " revisions"},
		{"delete-revisions", "delete ", " revisions"},
	},
	models.EntityMedia: {
		{"create", "create ", " media"},
		{"edit-own", "edit own ", " media"},
		{"edit-any", "edit any ", " media"},
		{"delete-own", "delete own ", " media"},
		{"delete-any", "delete any ", " media"},
	},
	models.EntityParagraph: {},
	models.EntityTaxonomyTerm: {
		{"create", "create terms in ", ""},
		{"edit", "edit terms in ", ""},
		{"delete", "delete terms in ", ""},
		{"view", "view terms in ", ""},
	},
	models.EntityBlockContent: {
		{"create", "create ", " block content"},
		{"edit-own", "edit own ", " block content"},
		{"edit-any", "edit any ", " block content"},
		{"delete-own", "delete own ", " block content"},
		{"delete-any", "delete any ", " block content"},
		{"view", "view ", " block content"},
	},
}

// PermissionShortNames returns the short names of one entity type's
// vocabulary in template order.
func PermissionShortNames(et models.EntityType) []string {
	templates := permissionTemplates[et]
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.short
	}
	return names
}

// EncodePermission renders the full permission key for an entity type,
// bundle and short name. ok is false when the entity type has no template
// with that short name; the function never fails any harder than that.
func EncodePermission(et models.EntityType, bundle, short string) (string, bool) {
	if !IsMachineName(bundle) {
		return "", false
	}
	for _, t := range permissionTemplates[et] {
		if t.short == short {
			return t.prefix + bundle + t.suffix, true
		}
	}
	return "", false
}

// ExpandAll encodes every permission of the entity type's vocabulary for
// one bundle, in template order.
func ExpandAll(et models.EntityType, bundle string) []string {
	templates := permissionTemplates[et]
	keys := make([]string, 0, len(templates))
	for _, t := range templates {
		if key, ok := EncodePermission(et, bundle, t.short); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// DecodePermission parses a full permission key back into its parts. Entity
// types are tried in canonical order and the extracted bundle must be a
// machine name, which keeps the vocabulary collision free: in a key like
// "create foo block content" the node template would extract "foo block",
// which no machine name can be, so only block_content matches. Decoding is
// total; unknown keys report ok=false.
func DecodePermission(key string) (Permission, bool) {
	for _, et := range models.AllEntityTypes() {
		for _, t := range permissionTemplates[et] {
			bundle, ok := matchTemplate(key, t)
			if !ok {
				continue
			}
			return Permission{EntityType: et, Bundle: bundle, ShortName: t.short}, true
		}
	}
	return Permission{}, false
}

// GroupPermissionsByBundle decodes the given keys and groups them by entity
// type and bundle, preserving input order within a group. Keys that decode
// to nothing are dropped entirely.
func GroupPermissionsByBundle(keys []string) map[models.EntityType]map[string][]string {
	grouped := make(map[models.EntityType]map[string][]string)
	for _, key := range keys {
		p, ok := DecodePermission(key)
		if !ok {
			continue
		}
		if grouped[p.EntityType] == nil {
			grouped[p.EntityType] = make(map[string][]string)
		}
		grouped[p.EntityType][p.Bundle] = append(grouped[p.EntityType][p.Bundle], key)
	}
	return grouped
}

// matchTemplate extracts the bundle slot of key against one template.
func matchTemplate(key string, t permissionTemplate) (string, bool) {
	rest, ok := strings.CutPrefix(key, t.prefix)
	if !ok {
		return "", false
	}
	bundle, ok := strings.CutSuffix(rest, t.suffix)
	if !ok || !IsMachineName(bundle) {
		return "", false
	}
	return bundle, true
}
