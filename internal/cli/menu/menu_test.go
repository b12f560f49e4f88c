package menu

import (
	"testing"

	"github.com/drupkit/drupkit/pkg/models"
)

func TestActionChoices(t *testing.T) {
	t.Parallel()

	choices := ActionChoices()
	if len(choices) == 0 {
		t.Fatal("ActionChoices() returned nothing")
	}

	values := make(map[string]bool, len(choices))
	for _, c := range choices {
		if c.Label == "" || c.Value == "" {
			t.Errorf("choice %+v has empty label or value", c)
		}
		if values[c.Value] {
			t.Errorf("duplicate choice value %q", c.Value)
		}
		values[c.Value] = true
	}

	for _, action := range []Action{ActionSync, ActionGenerateBundle, ActionGenerateField, ActionRoles, ActionStory, ActionReport, ActionProject, ActionQuit} {
		if !values[string(action)] {
			t.Errorf("ActionChoices() missing %q", action)
		}
	}
}

func TestEntityTypeChoices(t *testing.T) {
	t.Parallel()

	choices := EntityTypeChoices()
	if got, want := len(choices), len(models.AllEntityTypes()); got != want {
		t.Fatalf("EntityTypeChoices() returned %d choices, want %d", got, want)
	}
	if choices[0].Value != string(models.EntityNode) || choices[0].Label != "Content type" {
		t.Errorf("first choice = %+v, want node/Content type", choices[0])
	}
}

func TestBundleChoices(t *testing.T) {
	t.Parallel()

	bundles := []*models.Bundle{
		{ID: "article", Label: "Article"},
		{ID: "page"},
	}
	choices := BundleChoices(bundles)

	if choices[0].Label != "Article" || choices[0].Value != "article" {
		t.Errorf("labeled bundle choice = %+v", choices[0])
	}
	// A bundle without a label falls back to its id.
	if choices[1].Label != "page" || choices[1].Value != "page" {
		t.Errorf("unlabeled bundle choice = %+v", choices[1])
	}
}

func TestFieldTypeChoices(t *testing.T) {
	t.Parallel()

	choices := FieldTypeChoices()
	if len(choices) == 0 {
		t.Fatal("FieldTypeChoices() returned nothing")
	}
	seen := false
	for _, c := range choices {
		if c.Value == "text_long" {
			seen = true
		}
	}
	if !seen {
		t.Error("FieldTypeChoices() missing text_long")
	}
}

func TestPermissionChoices(t *testing.T) {
	t.Parallel()

	if got := len(PermissionChoices(models.EntityNode)); got != 8 {
		t.Errorf("node permission choices = %d, want 8", got)
	}
	if got := len(PermissionChoices(models.EntityParagraph)); got != 0 {
		t.Errorf("paragraph permission choices = %d, want 0", got)
	}
}

func TestSelectRequiresChoices(t *testing.T) {
	t.Parallel()

	p := NewPrompter()
	if _, err := p.Select("pick", "", nil); err != ErrNoChoices {
		t.Errorf("Select(no choices) error = %v, want ErrNoChoices", err)
	}
}

func TestNewPrompterTheme(t *testing.T) {
	t.Parallel()

	if NewPrompter().theme == nil {
		t.Error("NewPrompter() theme is nil")
	}
}
