package drupal

import (
	"gopkg.in/yaml.v3"

	"github.com/drupkit/drupkit/pkg/models"
)

// parseDocument decodes one configuration document into a generic mapping.
// Malformed YAML, empty documents, and non-mapping roots all yield ok=false;
// the caller decides whether that costs the file or the whole operation.
func parseDocument(data []byte) (map[string]any, bool) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, false
	}
	if len(doc) == 0 {
		return nil, false
	}
	return doc, true
}

// docString returns the string under key, or "" when absent or another type.
func docString(doc map[string]any, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

// docBool returns the boolean under key, defaulting to false.
func docBool(doc map[string]any, key string) bool {
	if v, ok := doc[key].(bool); ok {
		return v
	}
	return false
}

// docInt returns the integer under key, tolerating the numeric types the
// YAML decoder may produce. Anything else falls back to def.
func docInt(doc map[string]any, key string, def int) int {
	switch v := doc[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// docMap returns the nested mapping under key, or an empty map so callers
// never see nil.
func docMap(doc map[string]any, key string) map[string]any {
	if v, ok := doc[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

// fieldStorageFragment is the projection of a field.storage.* document: the
// definition shared by every bundle attaching the field.
type fieldStorageFragment struct {
	Name        string
	Type        string
	Cardinality int
	Settings    map[string]any
}

// fieldInstanceFragment is the projection of a field.field.* document: one
// bundle's attachment of a field.
type fieldInstanceFragment struct {
	Name        string
	Label       string
	Type        string
	Required    bool
	Description string
	Settings    map[string]any
}

// baseFieldOverrideFragment is the projection of a core.base_field_override
// document: a per-bundle adjustment of a field built into the entity type.
type baseFieldOverrideFragment struct {
	Name        string
	Label       string
	Type        string
	Required    bool
	Description string
}

// projectBundle shapes a parsed bundle document. The id and label keys vary
// by entity type; a missing or empty id makes the document unusable.
func projectBundle(et models.EntityType, doc map[string]any) (*models.Bundle, bool) {
	ps, ok := patterns[et]
	if !ok {
		return nil, false
	}
	id := docString(doc, ps.idKey)
	if id == "" {
		return nil, false
	}
	b := &models.Bundle{
		ID:          id,
		Label:       docString(doc, ps.labelKey),
		Description: docString(doc, "description"),
		Fields:      make(map[string]models.FieldDescriptor),
	}
	if et == models.EntityMedia {
		b.Source = docString(doc, "source")
	}
	return b, true
}

// projectFieldStorage shapes a parsed field storage document. A missing
// cardinality means single-valued.
func projectFieldStorage(doc map[string]any) fieldStorageFragment {
	return fieldStorageFragment{
		Name:        docString(doc, "field_name"),
		Type:        docString(doc, "type"),
		Cardinality: docInt(doc, "cardinality", 1),
		Settings:    docMap(doc, "settings"),
	}
}

// projectFieldInstance shapes a parsed field instance document.
func projectFieldInstance(doc map[string]any) fieldInstanceFragment {
	return fieldInstanceFragment{
		Name:        docString(doc, "field_name"),
		Label:       docString(doc, "label"),
		Type:        docString(doc, "field_type"),
		Required:    docBool(doc, "required"),
		Description: docString(doc, "description"),
		Settings:    docMap(doc, "settings"),
	}
}

// projectBaseFieldOverride shapes a parsed base-field override document.
func projectBaseFieldOverride(doc map[string]any) baseFieldOverrideFragment {
	return baseFieldOverrideFragment{
		Name:        docString(doc, "field_name"),
		Label:       docString(doc, "label"),
		Type:        docString(doc, "field_type"),
		Required:    docBool(doc, "required"),
		Description: docString(doc, "description"),
	}
}
