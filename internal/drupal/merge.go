package drupal

import (
	"maps"

	"github.com/drupkit/drupkit/pkg/models"
)

// mergeField joins a field instance with its storage definition into the
// merged descriptor. Precedence: type comes from the instance, then the
// storage; cardinality only ever comes from the storage; label, required
// and description only ever come from the instance. A nil storage models an
// instance whose storage file is absent: the field still surfaces, single
// valued. Neither input map is mutated.
func mergeField(storage *fieldStorageFragment, instance fieldInstanceFragment) (models.FieldDescriptor, error) {
	if instance.Name == "" {
		return models.FieldDescriptor{}, ErrEmptyFieldName
	}

	d := models.FieldDescriptor{
		Name:        instance.Name,
		Label:       instance.Label,
		Type:        instance.Type,
		Required:    instance.Required,
		Description: instance.Description,
		Cardinality: 1,
	}

	var storageSettings map[string]any
	if storage != nil {
		if d.Type == "" {
			d.Type = storage.Type
		}
		d.Cardinality = storage.Cardinality
		storageSettings = storage.Settings
	}
	d.Settings = mergeSettings(storageSettings, instance.Settings)
	return d, nil
}

// mergeSettings overlays instance settings on storage settings, instance
// keys winning, without touching either input.
func mergeSettings(storage, instance map[string]any) map[string]any {
	merged := make(map[string]any, len(storage)+len(instance))
	maps.Copy(merged, storage)
	maps.Copy(merged, instance)
	return merged
}

// overrideDescriptor shapes a base-field override into a standalone
// descriptor. Overrides carry no storage, so the field stays single valued.
func overrideDescriptor(o baseFieldOverrideFragment) (models.FieldDescriptor, error) {
	if o.Name == "" {
		return models.FieldDescriptor{}, ErrEmptyFieldName
	}
	return models.FieldDescriptor{
		Name:        o.Name,
		Label:       o.Label,
		Type:        o.Type,
		Required:    o.Required,
		Description: o.Description,
		Cardinality: 1,
		Settings:    make(map[string]any),
	}, nil
}
