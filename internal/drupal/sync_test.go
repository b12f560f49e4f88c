package drupal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/drupkit/drupkit/pkg/models"
)

func mapFile(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}

// exportFS is a small but complete export: two node bundles, a media
// bundle, an empty vocabulary, a shared storage, a storage nobody uses and
// a base field override.
func exportFS() fstest.MapFS {
	return fstest.MapFS{
		"node.type.article.yml": mapFile("type: article\nname: Article\ndescription: Long form content\n"),
		"node.type.page.yml":    mapFile("type: page\nname: Basic page\n"),
		"node.type.page_2.yml":  mapFile("type: page_2\nname: Second page\n"),

		"field.storage.node.field_body.yml":    mapFile("field_name: field_body\ntype: text_with_summary\ncardinality: 1\n"),
		"field.storage.node.field_tags.yml":    mapFile("field_name: field_tags\ntype: entity_reference\ncardinality: -1\n"),
		"field.storage.node.field_unused.yml":  mapFile("field_name: field_unused\ntype: string\n"),
		"field.field.node.article.field_body.yml": mapFile(
			"field_name: field_body\nlabel: Body\nrequired: true\n"),
		"field.field.node.article.field_tags.yml": mapFile(
			"field_name: field_tags\nlabel: Tags\n"),
		"field.field.node.page.field_body.yml": mapFile(
			"field_name: field_body\nlabel: Page body\n"),
		"field.field.node.page_2.field_body.yml": mapFile(
			"field_name: field_body\nlabel: Second page body\n"),

		"core.base_field_override.node.article.title.yml": mapFile(
			"field_name: title\nlabel: Headline\nfield_type: string\nrequired: true\n"),

		"media.type.gallery_image.yml": mapFile("id: gallery_image\nlabel: Gallery image\nsource: image\n"),
		"field.storage.media.field_credit.yml": mapFile(
			"field_name: field_credit\ntype: string\n"),
		"field.field.media.gallery_image.field_credit.yml": mapFile(
			"field_name: field_credit\nlabel: Credit\n"),

		"taxonomy.vocabulary.topics.yml": mapFile("vid: topics\nname: Topics\n"),

		"core.extension.yml":  mapFile("module:\n  node: 0\nprofile: standard\n"),
		"user.role.editor.yml": mapFile("id: editor\nlabel: Editor\npermissions: []\n"),
	}
}

func TestSyncFS(t *testing.T) {
	t.Parallel()

	idx, stats, err := NewSynchronizer().SyncFS(context.Background(), exportFS())
	if err != nil {
		t.Fatalf("SyncFS: %v", err)
	}

	if stats.Bundles != 5 {
		t.Errorf("stats.Bundles = %d, want 5", stats.Bundles)
	}
	if stats.Fields != 6 {
		t.Errorf("stats.Fields = %d, want 6", stats.Fields)
	}
	if stats.Skipped != 0 {
		t.Errorf("stats.Skipped = %d, want 0", stats.Skipped)
	}

	article, ok := idx.Bundle(models.EntityNode, "article")
	if !ok {
		t.Fatal("article bundle missing")
	}
	if article.Label != "Article" || article.Description != "Long form content" {
		t.Errorf("article = %+v", article)
	}

	body, ok := article.Fields["field_body"]
	if !ok {
		t.Fatal("field_body missing from article")
	}
	if body.Type != "text_with_summary" || body.Label != "Body" || !body.Required || body.Cardinality != 1 {
		t.Errorf("field_body = %+v", body)
	}

	tags := article.Fields["field_tags"]
	if tags.Cardinality != models.CardinalityUnlimited {
		t.Errorf("field_tags cardinality = %d, want unlimited", tags.Cardinality)
	}

	// The override surfaces the built-in title field.
	title, ok := article.Fields["title"]
	if !ok {
		t.Fatal("title override missing from article")
	}
	if title.Label != "Headline" || !title.Required {
		t.Errorf("title = %+v", title)
	}

	// A storage no instance references never surfaces.
	if _, ok := article.Fields["field_unused"]; ok {
		t.Error("storage-only field surfaced in article")
	}

	// Exact bundle matching keeps page and page_2 apart.
	page, _ := idx.Bundle(models.EntityNode, "page")
	if got := page.Fields["field_body"].Label; got != "Page body" {
		t.Errorf("page field_body label = %q", got)
	}
	page2, _ := idx.Bundle(models.EntityNode, "page_2")
	if got := page2.Fields["field_body"].Label; got != "Second page body" {
		t.Errorf("page_2 field_body label = %q", got)
	}

	media, ok := idx.Bundle(models.EntityMedia, "gallery_image")
	if !ok {
		t.Fatal("media bundle missing")
	}
	if media.Source != "image" {
		t.Errorf("media source = %q", media.Source)
	}

	topics, ok := idx.Bundle(models.EntityTaxonomyTerm, "topics")
	if !ok {
		t.Fatal("vocabulary missing")
	}
	if len(topics.Fields) != 0 {
		t.Errorf("topics has %d fields, want none", len(topics.Fields))
	}
}

func TestSyncFSSkipsMalformedBundle(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"node.type.article.yml": mapFile("type: article\nname: Article\n"),
		"node.type.broken.yml":  mapFile("type: [unclosed\n"),
	}

	idx, stats, err := NewSynchronizer().SyncFS(context.Background(), fsys)
	if err != nil {
		t.Fatalf("SyncFS: %v", err)
	}
	if stats.Bundles != 1 {
		t.Errorf("stats.Bundles = %d, want 1", stats.Bundles)
	}
	if stats.Skipped != 1 {
		t.Errorf("stats.Skipped = %d, want 1", stats.Skipped)
	}
	if _, ok := idx.Bundle(models.EntityNode, "article"); !ok {
		t.Error("valid bundle missing")
	}
}

func TestSyncFSSkipsBundleWithoutID(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"node.type.unnamed.yml": mapFile("name: No machine name here\n"),
	}

	idx, stats, err := NewSynchronizer().SyncFS(context.Background(), fsys)
	if err != nil {
		t.Fatalf("SyncFS: %v", err)
	}
	if stats.Bundles != 0 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 0 bundles 1 skipped", stats)
	}
	if got := idx.BundleCount(); got != 0 {
		t.Errorf("BundleCount = %d, want 0", got)
	}
}

func TestSyncFSInstanceOutranksOverride(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"node.type.article.yml": mapFile("type: article\nname: Article\n"),
		"field.field.node.article.field_body.yml": mapFile(
			"field_name: field_body\nlabel: From instance\n"),
		"core.base_field_override.node.article.field_body.yml": mapFile(
			"field_name: field_body\nlabel: From override\n"),
	}

	idx, _, err := NewSynchronizer().SyncFS(context.Background(), fsys)
	if err != nil {
		t.Fatalf("SyncFS: %v", err)
	}
	article, _ := idx.Bundle(models.EntityNode, "article")
	if got := article.Fields["field_body"].Label; got != "From instance" {
		t.Errorf("label = %q, instance must outrank override", got)
	}
}

func TestSyncFSIdempotent(t *testing.T) {
	t.Parallel()

	fsys := exportFS()
	s := NewSynchronizer()

	first, firstStats, err := s.SyncFS(context.Background(), fsys)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, secondStats, err := s.SyncFS(context.Background(), fsys)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}

	if firstStats != secondStats {
		t.Errorf("stats differ: %+v vs %+v", firstStats, secondStats)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two passes over unchanged files produced different indexes")
	}
}

func TestSyncMissingDirectory(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	idx, _, err := NewSynchronizer().Sync(context.Background(), missing)
	if !errors.Is(err, ErrConfigDirNotFound) {
		t.Fatalf("got %v, want ErrConfigDirNotFound", err)
	}
	if idx != nil {
		t.Error("partial index returned alongside the error")
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q does not identify the directory", err)
	}
}

func TestSyncPathIsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file.yml")
	if err := os.WriteFile(path, []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := NewSynchronizer().Sync(context.Background(), path)
	if !errors.Is(err, ErrConfigDirNotFound) {
		t.Fatalf("got %v, want ErrConfigDirNotFound", err)
	}
}

func TestSyncFSCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewSynchronizer().SyncFS(ctx, exportFS())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestSyncReadsRealDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{
		"node.type.article.yml":                   "type: article\nname: Article\n",
		"field.storage.node.field_body.yml":       "field_name: field_body\ntype: text_long\n",
		"field.field.node.article.field_body.yml": "field_name: field_body\nlabel: Body\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	idx, stats, err := NewSynchronizer(WithConcurrency(2)).Sync(context.Background(), dir)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if stats.Bundles != 1 || stats.Fields != 1 {
		t.Errorf("stats = %+v, want 1 bundle 1 field", stats)
	}
	article, _ := idx.Bundle(models.EntityNode, "article")
	if article.Fields["field_body"].Type != "text_long" {
		t.Errorf("field_body = %+v", article.Fields["field_body"])
	}
}
