package drupal

import (
	"slices"
	"testing"

	"github.com/drupkit/drupkit/pkg/models"
)

// listing mixes every file kind across entity types, plus noise that must
// never classify.
var listing = []string{
	"node.type.article.yml",
	"node.type.landing_page.yml",
	"node.type.bad.name.yml",
	"media.type.gallery_image.yml",
	"paragraphs.paragraphs_type.hero.yml",
	"taxonomy.vocabulary.topics.yml",
	"block_content.type.promo.yml",
	"field.storage.node.field_body.yml",
	"field.storage.node.field_tags.yml",
	"field.storage.media.field_credit.yml",
	"field.field.node.article.field_body.yml",
	"field.field.node.article.field_tags.yml",
	"field.field.node.page.field_body.yml",
	"field.field.node.page_2.field_body.yml",
	"field.field.media.gallery_image.field_credit.yml",
	"core.base_field_override.node.article.title.yml",
	"core.extension.yml",
	"user.role.editor.yml",
	"system.site.yml",
	"README.txt",
}

func TestBundleFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		et   models.EntityType
		want []string
	}{
		{"node", models.EntityNode, []string{"node.type.article.yml", "node.type.landing_page.yml"}},
		{"media", models.EntityMedia, []string{"media.type.gallery_image.yml"}},
		{"paragraph", models.EntityParagraph, []string{"paragraphs.paragraphs_type.hero.yml"}},
		{"taxonomy", models.EntityTaxonomyTerm, []string{"taxonomy.vocabulary.topics.yml"}},
		{"block content", models.EntityBlockContent, []string{"block_content.type.promo.yml"}},
		{"unknown type", "comment", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := BundleFiles(listing, tt.et)
			if !slices.Equal(got, tt.want) {
				t.Errorf("BundleFiles(%s) = %v, want %v", tt.et, got, tt.want)
			}
		})
	}
}

func TestBundleID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		file   string
		et     models.EntityType
		want   string
		wantOK bool
	}{
		{"node", "node.type.article.yml", models.EntityNode, "article", true},
		{"underscored", "node.type.landing_page.yml", models.EntityNode, "landing_page", true},
		{"dotted remainder", "node.type.bad.name.yml", models.EntityNode, "", false},
		{"wrong type", "node.type.article.yml", models.EntityMedia, "", false},
		{"wrong extension", "node.type.article.yaml", models.EntityNode, "", false},
		{"no id", "node.type..yml", models.EntityNode, "", false},
		{"unknown type", "node.type.article.yml", "comment", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := BundleID(tt.file, tt.et)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("BundleID(%q, %s) = (%q, %v), want (%q, %v)", tt.file, tt.et, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStorageFiles(t *testing.T) {
	t.Parallel()

	got := StorageFiles(listing, models.EntityNode)
	want := []string{"field.storage.node.field_body.yml", "field.storage.node.field_tags.yml"}
	if !slices.Equal(got, want) {
		t.Errorf("StorageFiles(node) = %v, want %v", got, want)
	}

	if got := StorageFiles(listing, "comment"); got != nil {
		t.Errorf("StorageFiles(unknown) = %v, want nil", got)
	}
}

func TestStorageFieldName(t *testing.T) {
	t.Parallel()

	name, ok := StorageFieldName("field.storage.media.field_credit.yml", models.EntityMedia)
	if !ok || name != "field_credit" {
		t.Errorf("got (%q, %v), want (field_credit, true)", name, ok)
	}
	if _, ok := StorageFieldName("field.storage.media.field_credit.yml", models.EntityNode); ok {
		t.Error("media storage classified under node")
	}
}

// A bundle id that is a prefix of another bundle's id must not capture the
// longer bundle's files.
func TestInstanceFilesExactBundleMatch(t *testing.T) {
	t.Parallel()

	got := InstanceFiles(listing, models.EntityNode, "page")
	want := []string{"field.field.node.page.field_body.yml"}
	if !slices.Equal(got, want) {
		t.Errorf("InstanceFiles(node, page) = %v, want %v", got, want)
	}

	got = InstanceFiles(listing, models.EntityNode, "page_2")
	want = []string{"field.field.node.page_2.field_body.yml"}
	if !slices.Equal(got, want) {
		t.Errorf("InstanceFiles(node, page_2) = %v, want %v", got, want)
	}
}

func TestInstanceFieldName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		file   string
		et     models.EntityType
		bundle string
		want   string
		wantOK bool
	}{
		{"match", "field.field.node.article.field_body.yml", models.EntityNode, "article", "field_body", true},
		{"other bundle", "field.field.node.article.field_body.yml", models.EntityNode, "page", "", false},
		{"bundle prefix", "field.field.node.page_2.field_body.yml", models.EntityNode, "page", "", false},
		{"invalid bundle arg", "field.field.node.article.field_body.yml", models.EntityNode, "bad-bundle", "", false},
		{"storage file", "field.storage.node.field_body.yml", models.EntityNode, "article", "", false},
		{"unknown type", "field.field.node.article.field_body.yml", "comment", "article", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := InstanceFieldName(tt.file, tt.et, tt.bundle)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("InstanceFieldName(%q, %s, %q) = (%q, %v), want (%q, %v)",
					tt.file, tt.et, tt.bundle, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestOverrideFiles(t *testing.T) {
	t.Parallel()

	got := OverrideFiles(listing, models.EntityNode, "article")
	want := []string{"core.base_field_override.node.article.title.yml"}
	if !slices.Equal(got, want) {
		t.Errorf("OverrideFiles(node, article) = %v, want %v", got, want)
	}

	if got := OverrideFiles(listing, models.EntityNode, "page"); got != nil {
		t.Errorf("OverrideFiles(node, page) = %v, want nil", got)
	}

	name, ok := OverrideFieldName("core.base_field_override.node.article.title.yml", models.EntityNode, "article")
	if !ok || name != "title" {
		t.Errorf("OverrideFieldName = (%q, %v), want (title, true)", name, ok)
	}
}
