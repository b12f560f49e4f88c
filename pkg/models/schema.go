package models

import "sort"

// CardinalityUnlimited marks a field that stores any number of values.
const CardinalityUnlimited = -1

// FieldDescriptor is the merged view of one field on one bundle, combining
// the shared storage definition with the per-bundle instance attachment.
type FieldDescriptor struct {
	Name        string         `json:"name" yaml:"name"`
	Label       string         `json:"label" yaml:"label"`
	Type        string         `json:"type" yaml:"type"`
	Required    bool           `json:"required" yaml:"required"`
	Cardinality int            `json:"cardinality" yaml:"cardinality"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Settings    map[string]any `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// Multiple reports whether the field stores more than one value.
func (f FieldDescriptor) Multiple() bool {
	return f.Cardinality == CardinalityUnlimited || f.Cardinality > 1
}

// Bundle is one named variant of an entity type, such as a node type or a
// vocabulary, together with the fields attached to it.
type Bundle struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Source is the media source plugin; empty for other entity types.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	Fields map[string]FieldDescriptor `json:"fields" yaml:"fields"`
}

// SortedFields returns the bundle's fields ordered by field name.
func (b *Bundle) SortedFields() []FieldDescriptor {
	fields := make([]FieldDescriptor, 0, len(b.Fields))
	for _, f := range b.Fields {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

// EntityIndex is the complete schema picture assembled from one
// synchronization pass: entity type to bundle id to bundle record.
type EntityIndex struct {
	Entities map[EntityType]map[string]*Bundle `json:"entities" yaml:"entities"`
}

// NewEntityIndex returns an empty index with every entity type present.
func NewEntityIndex() *EntityIndex {
	idx := &EntityIndex{Entities: make(map[EntityType]map[string]*Bundle)}
	for _, et := range AllEntityTypes() {
		idx.Entities[et] = make(map[string]*Bundle)
	}
	return idx
}

// Add stores a bundle under the given entity type, replacing any bundle
// already indexed with the same id.
func (x *EntityIndex) Add(et EntityType, b *Bundle) {
	if x.Entities == nil {
		x.Entities = make(map[EntityType]map[string]*Bundle)
	}
	if x.Entities[et] == nil {
		x.Entities[et] = make(map[string]*Bundle)
	}
	x.Entities[et][b.ID] = b
}

// Bundle looks up one bundle by entity type and id.
func (x *EntityIndex) Bundle(et EntityType, id string) (*Bundle, bool) {
	if x == nil || x.Entities == nil {
		return nil, false
	}
	b, ok := x.Entities[et][id]
	return b, ok
}

// Bundles returns the bundles of one entity type ordered by bundle id.
func (x *EntityIndex) Bundles(et EntityType) []*Bundle {
	if x == nil || x.Entities == nil {
		return nil
	}
	bundles := make([]*Bundle, 0, len(x.Entities[et]))
	for _, b := range x.Entities[et] {
		bundles = append(bundles, b)
	}
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].ID < bundles[j].ID })
	return bundles
}

// BundleCount returns the total number of bundles across all entity types.
func (x *EntityIndex) BundleCount() int {
	if x == nil {
		return 0
	}
	n := 0
	for _, bundles := range x.Entities {
		n += len(bundles)
	}
	return n
}

// FieldCount returns the total number of merged fields across all bundles.
func (x *EntityIndex) FieldCount() int {
	if x == nil {
		return 0
	}
	n := 0
	for _, bundles := range x.Entities {
		for _, b := range bundles {
			n += len(b.Fields)
		}
	}
	return n
}
