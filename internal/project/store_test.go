package project

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/drupkit/drupkit/pkg/models"
)

func TestStoreCreateAndGet(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())

	created, err := s.Create("umami", "Demo site", "/var/www/umami/config/sync")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.ID == "" {
		t.Error("Create() left ID empty, want a generated uuid")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("Create() left timestamps zero")
	}

	got, err := s.Get("umami")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("Get().ID = %q, want %q", got.ID, created.ID)
	}
	if got.ConfigDir != "/var/www/umami/config/sync" {
		t.Errorf("Get().ConfigDir = %q", got.ConfigDir)
	}
	if got.Synced() {
		t.Error("Synced() = true for a project that was never synchronized")
	}
}

func TestStoreCreateDuplicateName(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())
	if _, err := s.Create("site", "", "/tmp/a"); err != nil {
		t.Fatal(err)
	}

	_, err := s.Create("site", "", "/tmp/b")
	if !errors.Is(err, ErrProjectExists) {
		t.Errorf("Create() duplicate error = %v, want ErrProjectExists", err)
	}
}

func TestStoreRejectsInvalidNames(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())

	for _, name := range []string{"", ".", "..", ".hidden", "a/b", `a\b`, "a:b", "a?b"} {
		if _, err := s.Create(name, "", "/tmp"); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Create(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestStoreGetMissing(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())
	_, err := s.Get("nope")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Get() error = %v, want ErrProjectNotFound", err)
	}
}

func TestStoreListSortedByName(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())
	for _, name := range []string{"zulu", "alpha", "mike"} {
		if _, err := s.Create(name, "", "/tmp"); err != nil {
			t.Fatal(err)
		}
	}

	projects, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	got := make([]string, len(projects))
	for i, p := range projects {
		got[i] = p.Name
	}
	want := []string{"alpha", "mike", "zulu"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List() names = %v, want %v", got, want)
		}
	}
}

func TestStoreListEmptyHome(t *testing.T) {
	t.Parallel()

	s := NewStore(filepath.Join(t.TempDir(), "never-created"))
	projects, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("List() = %d records, want 0", len(projects))
	}
}

func TestStoreSavePersistsSchema(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())
	p, err := s.Create("intranet", "", "/srv/config")
	if err != nil {
		t.Fatal(err)
	}

	idx := models.NewEntityIndex()
	idx.Add(models.EntityNode, &models.Bundle{
		ID:    "article",
		Label: "Article",
		Fields: map[string]models.FieldDescriptor{
			"field_body": {Name: "field_body", Type: "text_long", Cardinality: 1},
		},
	})
	p.Schema = idx
	p.SyncedAt = p.CreatedAt

	if err := s.Save(p); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := s.Get("intranet")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Synced() {
		t.Error("Synced() = false after saving a schema")
	}
	b, ok := got.Schema.Bundle(models.EntityNode, "article")
	if !ok {
		t.Fatal("reloaded schema lost the article bundle")
	}
	if b.Fields["field_body"].Type != "text_long" {
		t.Errorf("reloaded field type = %q, want text_long", b.Fields["field_body"].Type)
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Error("Save() did not advance UpdatedAt")
	}
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	s := NewStore(t.TempDir())
	if _, err := s.Create("gone", "", "/tmp"); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete("gone"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get("gone"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Get() after delete = %v, want ErrProjectNotFound", err)
	}
	if err := s.Delete("gone"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Delete() twice = %v, want ErrProjectNotFound", err)
	}
}
