package models

// EntityType identifies one of the content entity types drupkit understands.
type EntityType string

const (
	EntityNode         EntityType = "node"
	EntityMedia        EntityType = "media"
	EntityParagraph    EntityType = "paragraph"
	EntityTaxonomyTerm EntityType = "taxonomy_term"
	EntityBlockContent EntityType = "block_content"
)

// AllEntityTypes returns every supported entity type in canonical order.
// The order is fixed; callers rely on it for deterministic iteration.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityNode,
		EntityMedia,
		EntityParagraph,
		EntityTaxonomyTerm,
		EntityBlockContent,
	}
}

// IsValid checks if the entity type is a known value.
func (t EntityType) IsValid() bool {
	switch t {
	case EntityNode, EntityMedia, EntityParagraph, EntityTaxonomyTerm, EntityBlockContent:
		return true
	}
	return false
}
