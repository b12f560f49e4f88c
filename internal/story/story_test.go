package story

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/drupkit/drupkit/internal/drupal"
	"github.com/drupkit/drupkit/pkg/models"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func articleBundle() *models.Bundle {
	return &models.Bundle{
		ID:          "article",
		Label:       "Article",
		Description: "Editorial long-form content.",
		Fields: map[string]models.FieldDescriptor{
			"field_tags": {
				Name:        "field_tags",
				Label:       "Tags",
				Type:        "entity_reference",
				Cardinality: models.CardinalityUnlimited,
			},
			"field_body": {
				Name:        "field_body",
				Label:       "Body",
				Type:        "text_with_summary",
				Required:    true,
				Cardinality: 1,
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	g := NewGenerator(WithNow(fixedNow))

	out, err := g.Generate(models.EntityNode, articleBundle())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	md := string(out)

	for _, want := range []string{
		"# Story: Article (node)",
		"- Bundle: `article`",
		"- Generated: 2026-03-14",
		"Editorial long-form content.",
		"| `field_body` | Body | text_with_summary | yes | 1 |",
		"| `field_tags` | Tags | entity_reference | no | unlimited |",
		"- [ ] `field_body` stores text_with_summary values and is required on save.",
		"- `create article content`",
		"- `delete article revisions`",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("story missing %q:\n%s", want, md)
		}
	}

	// Field rows come out sorted by name regardless of map order.
	if strings.Index(md, "field_body") > strings.Index(md, "field_tags") {
		t.Error("story fields not sorted by name")
	}
}

func TestGenerateWithoutPermissions(t *testing.T) {
	t.Parallel()
	g := NewGenerator(WithNow(fixedNow))

	b := &models.Bundle{ID: "hero", Label: "Hero", Fields: map[string]models.FieldDescriptor{}}
	out, err := g.Generate(models.EntityParagraph, b)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	md := string(out)

	if strings.Contains(md, "permissions it needs") {
		t.Errorf("paragraph story should have no permission criteria:\n%s", md)
	}
	if !strings.Contains(md, "No fields are attached to this bundle yet.") {
		t.Errorf("empty bundle story missing placeholder:\n%s", md)
	}
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()
	g := NewGenerator()

	if _, err := g.Generate(models.EntityNode, nil); !errors.Is(err, ErrNilBundle) {
		t.Errorf("Generate(nil) error = %v, want ErrNilBundle", err)
	}
	if _, err := g.Generate("comment", articleBundle()); !errors.Is(err, drupal.ErrUnknownEntityType) {
		t.Errorf("Generate(comment) error = %v, want ErrUnknownEntityType", err)
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()
	g := NewGenerator(WithNow(fixedNow))
	dir := filepath.Join(t.TempDir(), "stories")

	path, err := g.WriteFile(dir, models.EntityNode, articleBundle())
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if want := filepath.Join(dir, "node-article.md"); path != want {
		t.Errorf("WriteFile() path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read story: %v", err)
	}
	if !strings.Contains(string(data), "# Story: Article (node)") {
		t.Errorf("written story missing header:\n%s", data)
	}

	// Regeneration overwrites.
	if _, err := g.WriteFile(dir, models.EntityNode, articleBundle()); err != nil {
		t.Fatalf("second WriteFile() error = %v", err)
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	if got := Filename(models.EntityTaxonomyTerm, "topics"); got != "taxonomy_term-topics.md" {
		t.Errorf("Filename() = %q, want taxonomy_term-topics.md", got)
	}
}
